package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// CreateSecret mocks the CreateSecret method of VaultUseCase.
func (m *MockVaultUseCase) CreateSecret(
	ctx context.Context,
	input *vaultDomain.CreateSecretInput,
) (*vaultDomain.CreateSecretOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CreateSecretOutput), args.Error(1)
}

// RevealSecret mocks the RevealSecret method of VaultUseCase.
func (m *MockVaultUseCase) RevealSecret(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// PurgeExpired mocks the PurgeExpired method of VaultUseCase.
func (m *MockVaultUseCase) PurgeExpired(ctx context.Context, dryRun bool) (*vaultDomain.PurgeResult, error) {
	args := m.Called(ctx, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.PurgeResult), args.Error(1)
}
