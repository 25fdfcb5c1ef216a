package provider

import (
	"context"

	"account-service/internal/auth"
)

// IdentityProvider defines the contract for the external authentication
// provider. Implementations manage identities and credential checks only;
// user records, hashing, and uniqueness decisions happen elsewhere.
type IdentityProvider interface {
	// CreateIdentity registers (email, password) with the provider and
	// returns the new identity. A rejection by provider policy is reported
	// as *Error. A (nil, nil) return means the provider claimed success
	// without producing a usable identity.
	CreateIdentity(
		ctx context.Context,
		email string,
		password string,
	) (*auth.Identity, error)

	// DeleteIdentity removes an identity by id. Callers treat it as
	// best-effort cleanup.
	DeleteIdentity(ctx context.Context, id string) error

	// VerifyPassword checks credentials with the provider and returns the
	// provider's session payload.
	VerifyPassword(
		ctx context.Context,
		email string,
		password string,
	) (*auth.Session, error)
}

// Error is a rejection reported by the provider itself. Its message comes
// from the provider and is safe to surface to clients.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
