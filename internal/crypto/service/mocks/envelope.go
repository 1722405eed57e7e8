// Package mocks provides mock implementations of the crypto service interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
)

// MockEnvelope is a mock implementation of Envelope for testing.
type MockEnvelope struct {
	mock.Mock
}

// Seal mocks the Seal method of Envelope.
func (m *MockEnvelope) Seal(key, plaintext []byte) (cryptoDomain.SealedBox, error) {
	args := m.Called(key, plaintext)
	return args.Get(0).(cryptoDomain.SealedBox), args.Error(1)
}

// Open mocks the Open method of Envelope.
func (m *MockEnvelope) Open(key []byte, box cryptoDomain.SealedBox) ([]byte, error) {
	args := m.Called(key, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockKeyGenerator is a mock implementation of KeyGenerator for testing.
type MockKeyGenerator struct {
	mock.Mock
}

// GenerateKey mocks the GenerateKey method of KeyGenerator.
func (m *MockKeyGenerator) GenerateKey() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
