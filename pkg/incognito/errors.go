package incognito

import (
	"errors"

	"github.com/aluminumlabs/incognito/pkg/cache"
)

var (
	// ErrSessionNotFound indicates the id was never issued or the session has ended.
	ErrSessionNotFound = errors.New("incognito.session_not_found")

	// ErrCapacityExceeded indicates a fetched body is larger than the whole
	// session cache. The body is still returned alongside this error.
	ErrCapacityExceeded = cache.ErrCapacityExceeded

	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("incognito.invalid_config")

	// ErrManagerClosed indicates the manager has been shut down.
	ErrManagerClosed = errors.New("incognito.manager_closed")

	// ErrIDGeneration indicates a session id could not be generated.
	ErrIDGeneration = errors.New("incognito.id_generation_failed")

	// ErrSessionKey indicates the per-session sealing key could not be created.
	ErrSessionKey = errors.New("incognito.session_key_failed")
)
