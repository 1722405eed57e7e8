// Package usecase implements the vault's two core operations: sealing a secret into a
// capability token and revealing a secret from one.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// RecordRepository persists sealed records keyed by id.
type RecordRepository interface {
	// Put writes a new record. A record with the same id must never be overwritten;
	// implementations return vaultDomain.ErrRecordAlreadyExists instead.
	Put(ctx context.Context, record *vaultDomain.Record) error

	// Get returns the record for id or vaultDomain.ErrSecretNotFound.
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error)

	// Delete removes the record for id and reports whether a row was actually removed.
	// Two concurrent deletes of the same id must not both report true.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteExpired removes every record whose expiry is at or before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)

	// CountExpired counts records DeleteExpired would remove.
	CountExpired(ctx context.Context, before time.Time) (int64, error)
}

// VaultUseCase defines the business operations exposed to the HTTP API, the CLI and the
// expiry sweeper.
type VaultUseCase interface {
	// CreateSecret seals input.Plaintext under a fresh key, stores the sealed record and
	// returns the capability token. No token is returned unless the record was stored.
	// CreateSecret takes ownership of input.Plaintext: the buffer is zeroed before it
	// returns, on success and on error, so callers must not reuse it.
	CreateSecret(ctx context.Context, input *vaultDomain.CreateSecretInput) (*vaultDomain.CreateSecretOutput, error)

	// RevealSecret opens the record a token points at and returns the plaintext.
	RevealSecret(ctx context.Context, token string) (string, error)

	// PurgeExpired removes expired records, or only counts them when dryRun is true.
	PurgeExpired(ctx context.Context, dryRun bool) (*vaultDomain.PurgeResult, error)
}
