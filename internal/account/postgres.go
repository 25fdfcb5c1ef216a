package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"account-service/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore is the canonical Store implementation.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(
	ctx context.Context,
	email string,
) (*Record, error) {

	var r Record
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&r.ID, &r.Email, &r.PasswordHash, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("account: find by email: %w", err)
	}

	return &r, nil
}

func (s *PostgresStore) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, r.ID, r.Email, r.PasswordHash)

	if isUniqueViolation(err) {
		return fmt.Errorf("account: insert %q: %w", r.Email, ErrDuplicateEmail)
	}
	if err != nil {
		return fmt.Errorf("account: insert: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Record, error) {

	var r Record
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&r.ID, &r.Email, &r.PasswordHash, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("account: get by id: %w", err)
	}

	return &r, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
