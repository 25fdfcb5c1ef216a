package credentials

import "errors"

// Sentinel errors for the registration flow. The messages double as the
// response bodies clients match on, so they must not change.
var (
	ErrMissingFields   = errors.New("Email and password are required")
	ErrEmailExists     = errors.New("Email already exists")
	ErrIdentityMissing = errors.New("Failed to create user")
	ErrCreateAccount   = errors.New("Failed to create user account")
)
