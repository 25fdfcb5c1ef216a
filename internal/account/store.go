package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Insert when the store's uniqueness
// constraint rejects the record. The constraint, not the caller, is the
// final arbiter for concurrent registrations of the same email.
var ErrDuplicateEmail = errors.New("email already taken")

// Store persists user records. Lookups that find nothing return (nil, nil).
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Record, error)
	Insert(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
}
