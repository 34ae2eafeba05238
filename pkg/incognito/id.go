package incognito

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 32
)

// NewID returns a 32-character alphanumeric session id from crypto/rand.
func NewID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return id, nil
}
