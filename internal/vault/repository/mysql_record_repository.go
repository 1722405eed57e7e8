package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	apperrors "github.com/allisson/tokenshare/internal/errors"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// mysqlDuplicateEntry is the MySQL error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLRecordRepository implements record persistence for MySQL databases.
//
// Ids are stored as BINARY(16). The DSN must set parseTime=true so DATETIME columns scan
// into time.Time.
type MySQLRecordRepository struct {
	db *sql.DB
}

// Put inserts a new record into the MySQL database.
func (m *MySQLRecordRepository) Put(ctx context.Context, record *vaultDomain.Record) error {
	query := `INSERT INTO vault_records (id, algorithm, nonce, ciphertext, created_at, expires_at) 
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	_, err = m.db.ExecContext(
		ctx,
		query,
		id,
		string(record.Algorithm),
		record.Nonce,
		record.Ciphertext,
		record.CreatedAt,
		record.ExpiresAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return vaultDomain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to put record")
	}
	return nil
}

// Get retrieves a record by id.
func (m *MySQLRecordRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error) {
	query := `SELECT id, algorithm, nonce, ciphertext, created_at, expires_at 
			  FROM vault_records 
			  WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record id")
	}

	var (
		record    vaultDomain.Record
		rawID     []byte
		algorithm string
	)
	err = m.db.QueryRowContext(ctx, query, idBytes).Scan(
		&rawID,
		&algorithm,
		&record.Nonce,
		&record.Ciphertext,
		&record.CreatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}

	if err := record.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}
	record.Algorithm = cryptoDomain.Algorithm(algorithm)
	return &record, nil
}

// Delete removes a record and reports whether this call removed it.
func (m *MySQLRecordRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal record id")
	}

	result, err := m.db.ExecContext(ctx, `DELETE FROM vault_records WHERE id = ?`, idBytes)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete record")
	}
	return rowsRemoved(result)
}

// DeleteExpired removes records that expired at or before the given time.
func (m *MySQLRecordRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM vault_records WHERE expires_at IS NOT NULL AND expires_at <= ?`

	result, err := m.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired records")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return count, nil
}

// CountExpired counts records that expired at or before the given time.
func (m *MySQLRecordRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM vault_records WHERE expires_at IS NOT NULL AND expires_at <= ?`

	var count int64
	if err := m.db.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired records")
	}
	return count, nil
}

// NewMySQLRecordRepository creates a new MySQL record repository instance.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}
