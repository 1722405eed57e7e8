package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

// AEADCipher adapts a crypto/cipher.AEAD to the AEAD interface. Every Encrypt draws its
// own nonce from crypto/rand, so an instance is safe for concurrent use.
type AEADCipher struct {
	algorithm cryptoDomain.Algorithm
	aead      cipher.AEAD
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 (RFC 8439) cipher. The key must be
// exactly 32 bytes.
func NewChaCha20Poly1305(key []byte) (*AEADCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}
	return &AEADCipher{algorithm: cryptoDomain.ChaCha20, aead: aead}, nil
}

// NewAESGCM creates an AES-256-GCM cipher. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AEADCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &AEADCipher{algorithm: cryptoDomain.AESGCM, aead: aead}, nil
}

// Algorithm reports which construction backs the cipher.
func (a *AEADCipher) Algorithm() cryptoDomain.Algorithm {
	return a.algorithm
}

// Encrypt seals plaintext under a fresh random nonce. The tag is appended to the
// returned ciphertext.
func (a *AEADCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt verifies the tag and returns the plaintext. Nothing is returned on failure.
func (a *AEADCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// NonceSize returns the nonce width of the underlying construction (12 bytes for both).
func (a *AEADCipher) NonceSize() int {
	return a.aead.NonceSize()
}
