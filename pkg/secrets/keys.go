package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size for both the process key and session keys.
	KeySize = 32 // 256 bits for AES-256

	// saltInfo provides domain separation for HKDF key derivation.
	saltInfo = "aluminum-incognito-seal-v1"
)

// ValidateKeys checks that both keys are KeySize bytes.
func ValidateKeys(processKey, sessionKey []byte) error {
	if len(processKey) != KeySize {
		return ErrInvalidProcessKey
	}
	if len(sessionKey) != KeySize {
		return ErrInvalidSessionKey
	}
	return nil
}

// deriveKey creates the sealing key from the process and session keys using HKDF.
// The caller owns the returned slice and must clear it when done.
func deriveKey(processKey, sessionKey []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, processKey, sessionKey, []byte(saltInfo))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// GenerateKey creates a new random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
