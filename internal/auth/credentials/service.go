package credentials

import (
	"context"
	"fmt"

	"account-service/internal/account"
	"account-service/internal/auth"
	"account-service/internal/auth/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisteredUser is what Register returns to the caller. The password and
// its hash are never echoed.
type RegisteredUser struct {
	ID    string
	Email string
}

// Service coordinates registration across the identity provider and the
// record store, and delegates sign-in to the provider. It holds no mutable
// state between requests.
type Service struct {
	store    account.Store
	provider provider.IdentityProvider
	logger   *zap.Logger
}

func NewService(
	store account.Store,
	idp provider.IdentityProvider,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		provider: idp,
		logger:   logger,
	}
}

// Register runs the registration saga. Steps are ordered so that the only
// path that can leave orphaned provider state is the record insert, and that
// path deletes the just-created identity before surfacing its error.
func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (*RegisteredUser, error) {

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	// 1. Uniqueness pre-check. Nothing has been created yet, so a duplicate
	// is rejected with no rollback needed. The store's unique index remains
	// the arbiter for concurrent registrations that both pass this check.
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("registration lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	// 2. Create the provider identity. A provider rejection surfaces as-is;
	// no identity exists, so there is nothing to clean up.
	identity, err := s.provider.CreateIdentity(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// 3. Provider claimed success without a usable identity. No id is
	// available, so no compensation is possible.
	if identity == nil {
		return nil, ErrIdentityMissing
	}

	// 4. Hash for the record store. The plaintext is never persisted.
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.Parse(identity.ID)
	if err != nil {
		s.compensate(ctx, identity.ID)
		return nil, ErrCreateAccount
	}

	// 5. Insert the record keyed by the identity id. On failure the identity
	// is orphaned, so delete it before surfacing the error.
	err = s.store.Insert(ctx, account.Record{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("user record insert failed",
			zap.String("identity_id", identity.ID),
			zap.Error(err),
		)
		s.compensate(ctx, identity.ID)
		return nil, ErrCreateAccount
	}

	return &RegisteredUser{
		ID:    identity.ID,
		Email: identity.Email,
	}, nil
}

// compensate deletes an orphaned identity. Best-effort: its own failure is
// logged, never re-raised, so the original error stays the surfaced one.
func (s *Service) compensate(ctx context.Context, identityID string) {
	if err := s.provider.DeleteIdentity(ctx, identityID); err != nil {
		s.logger.Error("orphaned identity cleanup failed",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
	}
}

// Authenticate delegates the credential check to the provider. No local
// state, no hashing; the provider owns credential comparison.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*auth.Session, error) {

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	return s.provider.VerifyPassword(ctx, email, password)
}

// Profile returns the stored record for an identity id. Used by the
// authenticated /api/me endpoint.
func (s *Service) Profile(
	ctx context.Context,
	identityID string,
) (*RegisteredUser, error) {

	id, err := uuid.Parse(identityID)
	if err != nil {
		return nil, fmt.Errorf("profile: invalid id: %w", err)
	}

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	return &RegisteredUser{
		ID:    rec.ID.String(),
		Email: rec.Email,
	}, nil
}
