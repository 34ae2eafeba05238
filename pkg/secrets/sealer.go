package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Sealer encrypts and decrypts values with one AES-256-GCM key derived from a
// process key and a session key. Output format: nonce + ciphertext + tag.
//
// A Sealer is not safe for concurrent use; the owning session serializes it.
type Sealer struct {
	key  []byte
	aead cipher.AEAD
}

// NewSealer derives the sealing key and prepares the AEAD.
func NewSealer(processKey, sessionKey []byte) (*Sealer, error) {
	if err := ValidateKeys(processKey, sessionKey); err != nil {
		return nil, err
	}

	key, err := deriveKey(processKey, sessionKey)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		clear(key)
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		clear(key)
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return &Sealer{key: key, aead: aead}, nil
}

// NewSessionSealer generates a fresh random session key and derives a Sealer
// from it. The session key itself is cleared before returning.
func NewSessionSealer(processKey []byte) (*Sealer, error) {
	sessionKey, err := GenerateKey()
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	defer clear(sessionKey)
	return NewSealer(processKey, sessionKey)
}

// Seal encrypts plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	if s.aead == nil {
		return nil, ErrSealerDestroyed
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if s.aead == nil {
		return nil, ErrSealerDestroyed
	}

	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}
	return plaintext, nil
}

func (s *Sealer) SealString(plaintext string) ([]byte, error) {
	return s.Seal([]byte(plaintext))
}

func (s *Sealer) OpenString(sealed []byte) (string, error) {
	b, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Destroy zeroes the key material. Every later Seal or Open fails with
// ErrSealerDestroyed. Safe to call more than once.
func (s *Sealer) Destroy() {
	clear(s.key)
	s.key = nil
	s.aead = nil
}
