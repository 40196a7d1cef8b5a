// Package auth handles OAuth provider login and session token issuance.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles OAuth token persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new auth Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpsertToken inserts the provider tokens for the user, replacing any
// existing record for the same (user, provider) pair.
func (r *Repository) UpsertToken(ctx context.Context, userID, provider, accessToken, refreshToken string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO oauth_tokens (user_id, provider, access_token, refresh_token, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, provider) DO UPDATE
		 SET access_token = EXCLUDED.access_token,
		     refresh_token = EXCLUDED.refresh_token,
		     expires_at = EXCLUDED.expires_at,
		     updated_at = NOW()`,
		userID, provider, accessToken, refreshToken, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert oauth token: %w", err)
	}
	return nil
}

// DeleteTokens removes all stored provider tokens for the user.
func (r *Repository) DeleteTokens(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM oauth_tokens WHERE user_id = $1`,
		userID,
	)
	return err
}
