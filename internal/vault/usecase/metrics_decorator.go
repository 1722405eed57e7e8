package usecase

import (
	"context"
	"time"

	"github.com/allisson/tokenshare/internal/metrics"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

const metricsDomain = "vault"

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateSecret records metrics for secret creation.
func (v *vaultUseCaseWithMetrics) CreateSecret(
	ctx context.Context,
	input *vaultDomain.CreateSecretInput,
) (*vaultDomain.CreateSecretOutput, error) {
	start := time.Now()
	output, err := v.next.CreateSecret(ctx, input)
	v.record(ctx, "secret_create", start, err)
	return output, err
}

// RevealSecret records metrics for secret reveals.
func (v *vaultUseCaseWithMetrics) RevealSecret(ctx context.Context, token string) (string, error) {
	start := time.Now()
	plaintext, err := v.next.RevealSecret(ctx, token)
	v.record(ctx, "secret_reveal", start, err)
	return plaintext, err
}

// PurgeExpired records metrics for expiry sweeps.
func (v *vaultUseCaseWithMetrics) PurgeExpired(
	ctx context.Context,
	dryRun bool,
) (*vaultDomain.PurgeResult, error) {
	start := time.Now()
	result, err := v.next.PurgeExpired(ctx, dryRun)
	v.record(ctx, "secret_purge", start, err)
	if err == nil && result != nil && !result.DryRun {
		v.metrics.RecordPurged(ctx, metricsDomain, result.Count)
	}
	return result, err
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	v.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
