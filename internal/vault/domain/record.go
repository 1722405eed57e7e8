// Package domain defines the vault's core types: sealed records stored server-side and
// the capability tokens that carry the only copy of each record's key.
//
// A record holds ciphertext and the nonce used to produce it. The key needed to open it
// lives exclusively in the token handed back to the sender, so the store alone can never
// reveal a secret.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

// Record is a sealed secret as persisted by a store. Records are immutable once written.
type Record struct {
	// ID is the random storage key embedded in the capability token.
	ID uuid.UUID
	// Algorithm is the AEAD cipher the ciphertext was produced with.
	Algorithm cryptoDomain.Algorithm
	// Nonce is the value drawn for this record's single seal operation.
	Nonce []byte
	// Ciphertext is the sealed secret with its authentication tag appended.
	Ciphertext []byte
	// CreatedAt is the UTC timestamp when the record was written.
	CreatedAt time.Time
	// ExpiresAt is when the record stops being revealable (nil means never).
	ExpiresAt *time.Time
}

// NewRecord builds a record for box with the given identity and lifetime. A zero ttl
// produces a record without expiry.
func NewRecord(id uuid.UUID, box cryptoDomain.SealedBox, now time.Time, ttl time.Duration) *Record {
	record := &Record{
		ID:         id,
		Algorithm:  box.Algorithm,
		Nonce:      box.Nonce,
		Ciphertext: box.Ciphertext,
		CreatedAt:  now.UTC(),
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl).UTC()
		record.ExpiresAt = &expiresAt
	}
	return record
}

// Box returns the sealed payload in the form the envelope opens.
func (r *Record) Box() cryptoDomain.SealedBox {
	return cryptoDomain.SealedBox{
		Algorithm:  r.Algorithm,
		Nonce:      r.Nonce,
		Ciphertext: r.Ciphertext,
	}
}

// IsExpired reports whether the record's expiry is at or before now.
func (r *Record) IsExpired(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}
