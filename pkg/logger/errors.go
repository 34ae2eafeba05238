package logger

import "errors"

// ErrInvalidConfig is returned by FromConfig and ParseLevel for unknown values.
var ErrInvalidConfig = errors.New("logger.invalid_config")
