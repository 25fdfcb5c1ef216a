package account

import (
	"time"

	"github.com/google/uuid"
)

// Record is the application-level user row. Its ID is a foreign reference
// to the authentication provider's identity and is immutable once written.
type Record struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
