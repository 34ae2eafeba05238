package fetcher

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL   = errors.New("fetcher.invalid_url")
	ErrUnsafeURL    = errors.New("fetcher.unsafe_url")
	ErrRequest      = errors.New("fetcher.request_failed")
	ErrBodyTooLarge = errors.New("fetcher.body_too_large")
	ErrStatus       = errors.New("fetcher.unexpected_status")
)

// StatusError reports a non-2xx response. It matches ErrStatus with errors.Is.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrStatus, e.URL, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
