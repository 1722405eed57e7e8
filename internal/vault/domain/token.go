package domain

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

const (
	// TokenSeparator joins the id and key parts. It appears neither in a hyphenated
	// UUID nor in the URL-safe base64 alphabet.
	TokenSeparator = "::"

	// MaxTokenLength bounds the input DecodeToken will look at.
	MaxTokenLength = 256

	canonicalUUIDLength = 36
)

var keyEncoding = base64.RawURLEncoding.Strict()

// EncodeToken renders the capability for a record: "<uuid>::<base64url-nopad(key)>".
func EncodeToken(id uuid.UUID, key []byte) string {
	return id.String() + TokenSeparator + keyEncoding.EncodeToString(key)
}

// DecodeToken splits a capability token into its record id and key.
//
// Surrounding whitespace is ignored. Everything else must match EncodeToken's output
// exactly: a canonical lowercase or uppercase hyphenated UUID, one separator and the
// unpadded URL-safe base64 form of a 32-byte key. Any deviation returns
// ErrMalformedToken.
func DecodeToken(token string) (uuid.UUID, []byte, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(token) > MaxTokenLength {
		return uuid.Nil, nil, ErrMalformedToken
	}

	idPart, keyPart, found := strings.Cut(token, TokenSeparator)
	if !found || idPart == "" || keyPart == "" {
		return uuid.Nil, nil, ErrMalformedToken
	}
	if strings.Contains(keyPart, TokenSeparator) {
		return uuid.Nil, nil, ErrMalformedToken
	}

	// uuid.Parse also accepts urn and braced forms; only the canonical one is a token.
	if len(idPart) != canonicalUUIDLength {
		return uuid.Nil, nil, ErrMalformedToken
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, nil, ErrMalformedToken
	}

	if len(keyPart) != keyEncoding.EncodedLen(cryptoDomain.KeySize) {
		return uuid.Nil, nil, ErrMalformedToken
	}
	key, err := keyEncoding.DecodeString(keyPart)
	if err != nil || len(key) != cryptoDomain.KeySize {
		return uuid.Nil, nil, ErrMalformedToken
	}

	return id, key, nil
}
