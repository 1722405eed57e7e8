// Package domain defines the cryptographic primitives shared by the vault: cipher
// identifiers, fixed key and nonce widths, sealed boxes and their failure modes.
package domain

import (
	"github.com/allisson/tokenshare/internal/errors"
)

// Cryptographic operation errors.
//
// ErrDecryptionFailed is the only error an authenticated decryption can
// produce. A wrong key, a flipped ciphertext byte and a mismatched nonce are
// indistinguishable to the caller.
var (
	// ErrUnsupportedAlgorithm indicates the requested cipher is not one of ChaCha20 or AESGCM.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates a nonce that is not exactly NonceSize bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrDecryptionFailed indicates the authentication tag did not verify.
	ErrDecryptionFailed = errors.New("authentication failed")

	// ErrCryptoFailure indicates the random source or cipher construction failed.
	// It is never caused by caller input and must not be retried automatically.
	ErrCryptoFailure = errors.Wrap(errors.ErrInternal, "crypto failure")
)
