package secrets

import "errors"

var (
	// Key validation errors
	ErrInvalidProcessKey = errors.New("secrets.invalid_process_key")
	ErrInvalidSessionKey = errors.New("secrets.invalid_session_key")

	// Sealing errors
	ErrSealFailed        = errors.New("secrets.seal_failed")
	ErrOpenFailed        = errors.New("secrets.open_failed")
	ErrInvalidCiphertext = errors.New("secrets.invalid_ciphertext")
	ErrSealerDestroyed   = errors.New("secrets.sealer_destroyed")

	ErrKeyDerivationFailed = errors.New("secrets.key_derivation_failed")
)
