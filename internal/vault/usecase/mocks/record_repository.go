// Package mocks provides mock implementations of the vault use case dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository for testing.
type MockRecordRepository struct {
	mock.Mock
}

// Put mocks the Put method of RecordRepository.
func (m *MockRecordRepository) Put(ctx context.Context, record *vaultDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Record), args.Error(1)
}

// Delete mocks the Delete method of RecordRepository.
func (m *MockRecordRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of RecordRepository.
func (m *MockRecordRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of RecordRepository.
func (m *MockRecordRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
