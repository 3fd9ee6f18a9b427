package users

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// IdentityKey normalizes a username into the key identities are stored under.
func IdentityKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// EnsureUser returns the id for username, creating the identity on first
// login. Concurrent first logins converge on one row.
func (r *Repo) EnsureUser(ctx context.Context, username string) (string, error) {
	key := IdentityKey(username)
	if key == "" {
		return "", fmt.Errorf("username required")
	}

	const q = `
insert into users (username, identity_key, last_login_at)
values ($1, $2, now())
on conflict (identity_key) do update
set last_login_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(username), key).Scan(&id); err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}
	return id, nil
}

// Exists reports whether userID names a stored identity.
func (r *Repo) Exists(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}

	const q = `select exists(select 1 from users where id = $1)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return ok, nil
}
