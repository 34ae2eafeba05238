package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("config.parse_env_failed")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be loaded.
	ErrLoadingEnvFile = errors.New("config.load_env_file_failed")

	// ErrReadingFile is returned when the YAML file cannot be read.
	ErrReadingFile = errors.New("config.read_file_failed")

	// ErrParsingFile is returned for malformed YAML or unknown keys.
	ErrParsingFile = errors.New("config.parse_file_failed")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("config.nil_pointer")
)
