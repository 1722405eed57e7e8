package domain

import (
	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	"github.com/allisson/tokenshare/internal/errors"
)

var (
	// ErrMalformedToken indicates a token that does not parse into an id and a 32-byte key.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrSecretNotFound indicates no revealable record exists for the token's id.
	// Expired and already burned records report this too.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrAuthenticationFailed indicates the record exists but did not open under the
	// token's key. The record is left in place.
	ErrAuthenticationFailed = cryptoDomain.ErrDecryptionFailed

	// ErrStorageFailure indicates the record store could not complete an operation.
	ErrStorageFailure = errors.Wrap(errors.ErrUnavailable, "storage failure")

	// ErrEncodingFailure indicates the decrypted secret is not valid UTF-8.
	ErrEncodingFailure = errors.Wrap(errors.ErrInvalidInput, "secret is not valid utf-8")

	// ErrCryptoFailure indicates randomness or cipher construction failed while sealing.
	ErrCryptoFailure = cryptoDomain.ErrCryptoFailure

	// ErrSecretTooLarge indicates the plaintext exceeds the configured size limit.
	ErrSecretTooLarge = errors.Wrap(errors.ErrInvalidInput, "secret exceeds maximum size")

	// ErrInvalidTTL indicates a negative time-to-live was requested.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "invalid ttl")

	// ErrRecordAlreadyExists indicates a put collided with an existing id.
	ErrRecordAlreadyExists = errors.Wrap(errors.ErrConflict, "record already exists")
)
