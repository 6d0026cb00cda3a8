package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/budget-keeper/internal/errs"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "default"

// StateRepo stores client state rows scoped by profile.
type StateRepo struct {
	db      *DB
	profile string
}

// NewStateRepo constructs a state repository for profile.
func NewStateRepo(db *DB, profile string) *StateRepo {
	if profile == "" {
		profile = DefaultProfile
	}
	return &StateRepo{db: db, profile: profile}
}

// Get implements store.Store.
func (r *StateRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM client_state WHERE profile=$1 AND key=$2`
	var v string
	if err := r.db.Pool.QueryRow(ctx, q, r.profile, key).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", fmt.Errorf("select state %s: %w", key, err)
	}
	return v, nil
}

// Set implements store.Store.
func (r *StateRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO client_state (profile, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.db.Pool.Exec(ctx, q, r.profile, key, value); err != nil {
		return fmt.Errorf("upsert state %s: %w", key, err)
	}
	return nil
}

// Delete implements store.Store.
func (r *StateRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM client_state WHERE profile=$1 AND key=$2`
	if _, err := r.db.Pool.Exec(ctx, q, r.profile, key); err != nil {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}
