package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/gcerrors"

	cryptoService "github.com/allisson/tokenshare/internal/crypto/service"
	apperrors "github.com/allisson/tokenshare/internal/errors"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// RecordStore is the persistence contract shared by every backend in this package.
type RecordStore interface {
	Put(ctx context.Context, record *vaultDomain.Record) error
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	CountExpired(ctx context.Context, before time.Time) (int64, error)
}

// KeeperRecordRepository wraps another store and encrypts each record's ciphertext with
// a KMS keeper before it reaches the backend. The per-secret key never leaves the token,
// so the KMS only ever sees data that is already sealed.
type KeeperRecordRepository struct {
	next   RecordStore
	keeper cryptoService.Keeper
}

// NewKeeperRecordRepository creates a decorator around next using keeper.
func NewKeeperRecordRepository(next RecordStore, keeper cryptoService.Keeper) *KeeperRecordRepository {
	return &KeeperRecordRepository{next: next, keeper: keeper}
}

// Put wraps the ciphertext and stores the record through the underlying store.
func (k *KeeperRecordRepository) Put(ctx context.Context, record *vaultDomain.Record) error {
	wrapped, err := k.keeper.Encrypt(ctx, record.Ciphertext)
	if err != nil {
		return apperrors.Wrap(err, "failed to wrap record ciphertext")
	}

	stored := *record
	stored.Ciphertext = wrapped
	return k.next.Put(ctx, &stored)
}

// Get loads the record and unwraps its ciphertext.
//
// A wrapped ciphertext the keeper rejects is reported as vaultDomain.ErrAuthenticationFailed,
// like a sealed box that fails to open. Only failures to reach the KMS are returned as
// plain errors for the caller to treat as storage failures.
func (k *KeeperRecordRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error) {
	record, err := k.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ciphertext, err := k.keeper.Decrypt(ctx, record.Ciphertext)
	if err != nil {
		err = apperrors.Wrap(err, "failed to unwrap record ciphertext")
		if keeperUnreachable(ctx, err) {
			return nil, err
		}
		return nil, apperrors.Mark(vaultDomain.ErrAuthenticationFailed, err)
	}
	record.Ciphertext = ciphertext
	return record, nil
}

// keeperUnreachable reports whether a keeper error comes from the KMS call itself
// (transport, deadline, credentials) rather than from the wrapped bytes.
func keeperUnreachable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch gcerrors.Code(err) {
	case gcerrors.DeadlineExceeded,
		gcerrors.Canceled,
		gcerrors.ResourceExhausted,
		gcerrors.PermissionDenied,
		gcerrors.Internal,
		gcerrors.Unimplemented:
		return true
	default:
		return false
	}
}

// Delete delegates to the underlying store.
func (k *KeeperRecordRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return k.next.Delete(ctx, id)
}

// DeleteExpired delegates to the underlying store.
func (k *KeeperRecordRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return k.next.DeleteExpired(ctx, before)
}

// CountExpired delegates to the underlying store.
func (k *KeeperRecordRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	return k.next.CountExpired(ctx, before)
}
