package service

import (
	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	apperrors "github.com/allisson/tokenshare/internal/errors"
)

// EnvelopeService implements Envelope on top of an AEADManager.
//
// Each key is expected to seal exactly one payload, so random 96-bit nonces never
// repeat under the same key.
type EnvelopeService struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewEnvelope creates an envelope that seals with alg. Open honours the algorithm
// recorded in each box, so boxes sealed under a previous default still open.
func NewEnvelope(aeadManager AEADManager, alg cryptoDomain.Algorithm) *EnvelopeService {
	return &EnvelopeService{
		aeadManager: aeadManager,
		algorithm:   alg,
	}
}

// Seal encrypts plaintext under key. Only a faulty random source or cipher
// construction can make it fail, reported as ErrCryptoFailure; a key of the wrong
// width is reported as ErrInvalidKeySize.
func (e *EnvelopeService) Seal(key, plaintext []byte) (cryptoDomain.SealedBox, error) {
	if len(key) != cryptoDomain.KeySize {
		return cryptoDomain.SealedBox{}, cryptoDomain.ErrInvalidKeySize
	}

	cipher, err := e.aeadManager.CreateCipher(key, e.algorithm)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			return cryptoDomain.SealedBox{}, err
		}
		return cryptoDomain.SealedBox{}, apperrors.Mark(cryptoDomain.ErrCryptoFailure, err)
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		return cryptoDomain.SealedBox{}, apperrors.Mark(cryptoDomain.ErrCryptoFailure, err)
	}

	return cryptoDomain.SealedBox{
		Algorithm:  e.algorithm,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// Open decrypts box under key.
//
// Structural problems (key or nonce width, unknown algorithm) are reported as invalid
// input before any decryption is attempted. Everything that reaches the cipher and
// fails comes back as the single ErrDecryptionFailed, without partial plaintext.
func (e *EnvelopeService) Open(key []byte, box cryptoDomain.SealedBox) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if len(box.Nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}

	cipher, err := e.aeadManager.CreateCipher(key, box.Algorithm)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, apperrors.Mark(cryptoDomain.ErrCryptoFailure, err)
	}

	if len(box.Ciphertext) < cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := cipher.Decrypt(box.Ciphertext, box.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
