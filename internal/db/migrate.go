package db

import (
	"context"
	"database/sql"
)

// users.id is the authentication provider's identity id. It is supplied by
// the application on insert and must never be generated here.
const migration = `
CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY,
    email text NOT NULL,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
