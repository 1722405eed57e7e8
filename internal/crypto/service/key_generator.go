package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	apperrors "github.com/allisson/tokenshare/internal/errors"
)

// RandomKeyGenerator implements KeyGenerator by reading KeySize bytes from a
// cryptographically secure source.
type RandomKeyGenerator struct {
	source io.Reader
}

// NewKeyGenerator returns a generator backed by crypto/rand.
func NewKeyGenerator() *RandomKeyGenerator {
	return &RandomKeyGenerator{source: rand.Reader}
}

// NewKeyGeneratorFromReader returns a generator reading from source. Only tests should
// pass anything other than crypto/rand.Reader.
func NewKeyGeneratorFromReader(source io.Reader) *RandomKeyGenerator {
	return &RandomKeyGenerator{source: source}
}

// GenerateKey returns a fresh 32-byte key. The caller owns the slice and should wipe it
// with cryptoDomain.Zero once done.
func (g *RandomKeyGenerator) GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(g.source, key); err != nil {
		return nil, apperrors.Mark(cryptoDomain.ErrCryptoFailure, err)
	}
	return key, nil
}
