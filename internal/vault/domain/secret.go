package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreateSecretInput carries the sender's request for a new shared secret.
type CreateSecretInput struct {
	// Plaintext is the UTF-8 secret to seal. It is wiped once sealed.
	Plaintext []byte
	// TTL is how long the secret stays revealable. Zero selects the configured default.
	TTL time.Duration
}

// CreateSecretOutput is the result of sealing a secret. Token is the only artifact that
// can open it and must be handed to the recipient out of band.
type CreateSecretOutput struct {
	ID        uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// PurgeResult reports the outcome of an expiry sweep.
type PurgeResult struct {
	// Count is the number of expired records removed, or found when DryRun is set.
	Count  int64
	DryRun bool
	Before time.Time
}
