package service

import (
	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

var cipherConstructors = map[cryptoDomain.Algorithm]func(key []byte) (*AEADCipher, error){
	cryptoDomain.ChaCha20: NewChaCha20Poly1305,
	cryptoDomain.AESGCM:   NewAESGCM,
}

// AEADManagerService implements AEADManager.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns a cipher for alg keyed with key. The algorithm is checked first
// so a record naming an unknown algorithm never reaches key handling.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	newCipher, ok := cipherConstructors[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	cipher, err := newCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher, nil
}
