// Package service implements the AEAD envelope used by the vault: cipher construction,
// one-shot key generation and seal/open of secret payloads.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and a fresh nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce width the cipher requires.
	NonceSize() int
}

// AEADManager creates AEAD cipher instances.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyGenerator mints one-time symmetric keys.
type KeyGenerator interface {
	GenerateKey() ([]byte, error)
}

// Envelope seals and opens payloads under a one-time key.
type Envelope interface {
	// Seal encrypts plaintext under key with a freshly drawn nonce and no associated data.
	Seal(key, plaintext []byte) (cryptoDomain.SealedBox, error)

	// Open authenticates and decrypts a sealed box. Any verification failure yields
	// cryptoDomain.ErrDecryptionFailed.
	Open(key []byte, box cryptoDomain.SealedBox) ([]byte, error)
}

// Keeper encrypts and decrypts opaque blobs with a key held by an external KMS.
// *secrets.Keeper from gocloud.dev satisfies it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
