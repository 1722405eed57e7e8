package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	apperrors "github.com/allisson/tokenshare/internal/errors"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgreSQLRecordRepository implements record persistence for PostgreSQL databases.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// Put inserts a new record into the PostgreSQL database.
func (p *PostgreSQLRecordRepository) Put(ctx context.Context, record *vaultDomain.Record) error {
	query := `INSERT INTO vault_records (id, algorithm, nonce, ciphertext, created_at, expires_at) 
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := p.db.ExecContext(
		ctx,
		query,
		record.ID,
		string(record.Algorithm),
		record.Nonce,
		record.Ciphertext,
		record.CreatedAt,
		record.ExpiresAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return vaultDomain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to put record")
	}
	return nil
}

// Get retrieves a record by id.
func (p *PostgreSQLRecordRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Record, error) {
	query := `SELECT id, algorithm, nonce, ciphertext, created_at, expires_at 
			  FROM vault_records 
			  WHERE id = $1`

	var (
		record    vaultDomain.Record
		algorithm string
	)
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
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

	record.Algorithm = cryptoDomain.Algorithm(algorithm)
	return &record, nil
}

// Delete removes a record and reports whether this call removed it.
func (p *PostgreSQLRecordRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := p.db.ExecContext(ctx, `DELETE FROM vault_records WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete record")
	}
	return rowsRemoved(result)
}

// DeleteExpired removes records that expired at or before the given time.
func (p *PostgreSQLRecordRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM vault_records WHERE expires_at IS NOT NULL AND expires_at <= $1`

	result, err := p.db.ExecContext(ctx, query, before)
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
func (p *PostgreSQLRecordRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM vault_records WHERE expires_at IS NOT NULL AND expires_at <= $1`

	var count int64
	if err := p.db.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired records")
	}
	return count, nil
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL record repository instance.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

func rowsRemoved(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}
	return affected > 0, nil
}
