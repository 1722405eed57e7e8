// Package repository implements sealed record persistence for PostgreSQL, MySQL and an
// in-process map, plus a decorator that wraps stored ciphertext with a KMS keeper.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// MemoryRecordRepository keeps records in a map. Contents are lost on restart; it backs
// the CLI and tests when STORE_DRIVER=memory.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*vaultDomain.Record
}

// NewMemoryRecordRepository creates an empty in-memory repository.
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{records: make(map[uuid.UUID]*vaultDomain.Record)}
}

// Put stores a copy of record. Existing ids are never overwritten.
func (m *MemoryRecordRepository) Put(ctx context.Context, record *vaultDomain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; exists {
		return vaultDomain.ErrRecordAlreadyExists
	}
	m.records[record.ID] = cloneRecord(record)
	return nil
}

// Get returns a copy of the record so callers cannot mutate stored state.
func (m *MemoryRecordRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, vaultDomain.ErrSecretNotFound
	}
	return cloneRecord(record), nil
}

// Delete removes the record and reports whether it was present.
func (m *MemoryRecordRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

// DeleteExpired removes records that expired at or before the given time.
func (m *MemoryRecordRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for id, record := range m.records {
		if record.IsExpired(before) {
			delete(m.records, id)
			count++
		}
	}
	return count, nil
}

// CountExpired counts records that expired at or before the given time.
func (m *MemoryRecordRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, record := range m.records {
		if record.IsExpired(before) {
			count++
		}
	}
	return count, nil
}

// Len returns the number of stored records.
func (m *MemoryRecordRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func cloneRecord(record *vaultDomain.Record) *vaultDomain.Record {
	clone := *record
	clone.Nonce = append([]byte(nil), record.Nonce...)
	clone.Ciphertext = append([]byte(nil), record.Ciphertext...)
	if record.ExpiresAt != nil {
		expiresAt := *record.ExpiresAt
		clone.ExpiresAt = &expiresAt
	}
	return &clone
}
