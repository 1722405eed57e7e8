package usecase

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	cryptoService "github.com/allisson/tokenshare/internal/crypto/service"
	apperrors "github.com/allisson/tokenshare/internal/errors"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// maxPutAttempts bounds how many fresh ids CreateSecret draws when a put collides.
const maxPutAttempts = 3

// Config controls the vault's retention and size policy.
type Config struct {
	// BurnAfterRead deletes a record after its first successful reveal.
	BurnAfterRead bool
	// DefaultTTL applies when a request does not set one. Zero means records never expire.
	DefaultTTL time.Duration
	// MaxTTL caps requested lifetimes. Zero means no cap.
	MaxTTL time.Duration
	// MaxSecretBytes rejects larger plaintexts before any crypto work. Zero means no limit.
	MaxSecretBytes int
}

// vaultUseCase implements VaultUseCase.
type vaultUseCase struct {
	recordRepo RecordRepository
	envelope   cryptoService.Envelope
	keyGen     cryptoService.KeyGenerator
	config     Config
	now        func() time.Time
	newID      func() (uuid.UUID, error)
}

// NewVaultUseCase creates a VaultUseCase.
func NewVaultUseCase(
	recordRepo RecordRepository,
	envelope cryptoService.Envelope,
	keyGen cryptoService.KeyGenerator,
	config Config,
) VaultUseCase {
	return &vaultUseCase{
		recordRepo: recordRepo,
		envelope:   envelope,
		keyGen:     keyGen,
		config:     config,
		now:        time.Now,
		newID:      uuid.NewRandom,
	}
}

// CreateSecret seals the plaintext and stores the record.
//
// The key exists only in memory for the duration of the call and in the returned
// token. On any failure no token is returned and no record remains.
func (v *vaultUseCase) CreateSecret(
	ctx context.Context,
	input *vaultDomain.CreateSecretInput,
) (*vaultDomain.CreateSecretOutput, error) {
	defer cryptoDomain.Zero(input.Plaintext)

	if v.config.MaxSecretBytes > 0 && len(input.Plaintext) > v.config.MaxSecretBytes {
		return nil, vaultDomain.ErrSecretTooLarge
	}
	if !utf8.Valid(input.Plaintext) {
		return nil, vaultDomain.ErrEncodingFailure
	}

	ttl, err := v.resolveTTL(input.TTL)
	if err != nil {
		return nil, err
	}

	key, err := v.keyGen.GenerateKey()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	box, err := v.envelope.Seal(key, input.Plaintext)
	if err != nil {
		return nil, err
	}

	record, err := v.putWithFreshID(ctx, box, ttl)
	if err != nil {
		return nil, err
	}

	return &vaultDomain.CreateSecretOutput{
		ID:        record.ID,
		Token:     vaultDomain.EncodeToken(record.ID, key),
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// putWithFreshID stores box under a random id, drawing a new id if the store reports
// a collision.
func (v *vaultUseCase) putWithFreshID(
	ctx context.Context,
	box cryptoDomain.SealedBox,
	ttl time.Duration,
) (*vaultDomain.Record, error) {
	var lastErr error
	for range maxPutAttempts {
		id, err := v.newID()
		if err != nil {
			return nil, apperrors.Mark(vaultDomain.ErrCryptoFailure, err)
		}

		record := vaultDomain.NewRecord(id, box, v.now(), ttl)
		err = v.recordRepo.Put(ctx, record)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Mark(vaultDomain.ErrStorageFailure, err)
		}
		lastErr = err
	}
	return nil, apperrors.Mark(vaultDomain.ErrStorageFailure, lastErr)
}

func (v *vaultUseCase) resolveTTL(requested time.Duration) (time.Duration, error) {
	if requested < 0 {
		return 0, vaultDomain.ErrInvalidTTL
	}

	ttl := requested
	if ttl == 0 {
		ttl = v.config.DefaultTTL
	}
	if v.config.MaxTTL > 0 && (ttl == 0 || ttl > v.config.MaxTTL) {
		ttl = v.config.MaxTTL
	}
	return ttl, nil
}

// RevealSecret decodes the token, loads the record and opens it.
//
// A record that fails to open is left untouched. With burn-after-read enabled a
// successful open is only returned to the caller that actually deleted the record.
func (v *vaultUseCase) RevealSecret(ctx context.Context, token string) (string, error) {
	id, key, err := vaultDomain.DecodeToken(token)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	record, err := v.recordRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", vaultDomain.ErrSecretNotFound
		}
		if errors.Is(err, vaultDomain.ErrAuthenticationFailed) {
			return "", err
		}
		return "", apperrors.Mark(vaultDomain.ErrStorageFailure, err)
	}

	if record.IsExpired(v.now()) {
		// The sweeper removes it anyway if this delete fails.
		_, _ = v.recordRepo.Delete(ctx, id)
		return "", vaultDomain.ErrSecretNotFound
	}

	plaintext, err := v.envelope.Open(key, record.Box())
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", vaultDomain.ErrEncodingFailure
	}

	if v.config.BurnAfterRead {
		deleted, err := v.recordRepo.Delete(ctx, id)
		if err != nil {
			return "", apperrors.Mark(vaultDomain.ErrStorageFailure, err)
		}
		if !deleted {
			return "", vaultDomain.ErrSecretNotFound
		}
	}

	return string(plaintext), nil
}

// PurgeExpired removes or counts records that expired before now.
func (v *vaultUseCase) PurgeExpired(ctx context.Context, dryRun bool) (*vaultDomain.PurgeResult, error) {
	before := v.now().UTC()

	var (
		count int64
		err   error
	)
	if dryRun {
		count, err = v.recordRepo.CountExpired(ctx, before)
	} else {
		count, err = v.recordRepo.DeleteExpired(ctx, before)
	}
	if err != nil {
		return nil, apperrors.Mark(vaultDomain.ErrStorageFailure, err)
	}

	return &vaultDomain.PurgeResult{Count: count, DryRun: dryRun, Before: before}, nil
}
