package api

import (
	"errors"
	"net/http"

	"github.com/aluminumlabs/incognito/pkg/fetcher"
	"github.com/aluminumlabs/incognito/pkg/incognito"
)

var (
	ErrMissingContentType   = errors.New("api.missing_content_type")
	ErrUnsupportedMediaType = errors.New("api.unsupported_media_type")
	ErrInvalidJSON          = errors.New("api.invalid_json")
	ErrEmptyField           = errors.New("api.empty_field")
	ErrCookieNotFound       = errors.New("api.cookie_not_found")
	ErrDataNotFound         = errors.New("api.data_not_found")
)

// HTTPError pairs a status code with a machine readable key.
type HTTPError struct {
	Status int
	Key    string
	// Expose the underlying error text to the client.
	Expose bool
}

func (e HTTPError) Error() string { return e.Key }

func (e HTTPError) message(err error) string {
	if e.Expose && err != nil {
		return err.Error()
	}
	return http.StatusText(e.Status)
}

var (
	errBadRequest       = HTTPError{Status: http.StatusBadRequest, Key: "bad_request", Expose: true}
	errUnsupportedMedia = HTTPError{Status: http.StatusUnsupportedMediaType, Key: "unsupported_media_type", Expose: true}
	errInvalidURL       = HTTPError{Status: http.StatusBadRequest, Key: "invalid_url", Expose: true}
	errSessionNotFound  = HTTPError{Status: http.StatusNotFound, Key: "session_not_found"}
	errCookieNotFound   = HTTPError{Status: http.StatusNotFound, Key: "cookie_not_found"}
	errDataNotFound     = HTTPError{Status: http.StatusNotFound, Key: "data_not_found"}
	errUnsafeURL        = HTTPError{Status: http.StatusForbidden, Key: "unsafe_url", Expose: true}
	errNotFound         = HTTPError{Status: http.StatusNotFound, Key: "not_found"}
	errMethodNotAllowed = HTTPError{Status: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	errRateLimited      = HTTPError{Status: http.StatusTooManyRequests, Key: "rate_limited"}
	errFetchFailed      = HTTPError{Status: http.StatusBadGateway, Key: "fetch_failed", Expose: true}
	errUnavailable      = HTTPError{Status: http.StatusServiceUnavailable, Key: "service_unavailable"}
	errInternal         = HTTPError{Status: http.StatusInternalServerError, Key: "internal_error"}
)

// fetchError marks an error returned by the fetcher.
type fetchError struct{ err error }

func (e fetchError) Error() string { return e.err.Error() }
func (e fetchError) Unwrap() error { return e.err }

func toHTTPError(err error) HTTPError {
	var he HTTPError
	var fe fetchError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, incognito.ErrSessionNotFound):
		return errSessionNotFound
	case errors.Is(err, ErrCookieNotFound):
		return errCookieNotFound
	case errors.Is(err, ErrDataNotFound):
		return errDataNotFound
	case errors.Is(err, incognito.ErrManagerClosed):
		return errUnavailable
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrUnsupportedMediaType):
		return errUnsupportedMedia
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrEmptyField):
		return errBadRequest
	case errors.Is(err, fetcher.ErrInvalidURL):
		return errInvalidURL
	case errors.Is(err, fetcher.ErrUnsafeURL):
		return errUnsafeURL
	case errors.As(err, &fe):
		return errFetchFailed
	default:
		return errInternal
	}
}
