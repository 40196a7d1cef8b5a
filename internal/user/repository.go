// Package user manages user accounts and their persistence.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User represents a registered account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Provider  string    `json:"provider"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	ResumeURL *string   `json:"resumeUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when an email is already registered.
var ErrAlreadyExists = errors.New("user already exists")

const userColumns = `id, email, username, provider, avatar_url, resume_url, created_at, updated_at`

// Repository handles all user database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the created record.
func (r *Repository) Create(ctx context.Context, email, username, provider string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, username, provider)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, username, provider,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Provider, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by their UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Provider, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail fetches a user by their email address.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Provider, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateUsername changes the display name and returns the updated record.
func (r *Repository) UpdateUsername(ctx context.Context, id, username string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`UPDATE users SET username = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, username,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Provider, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update username: %w", err)
	}
	return u, nil
}

// SetAvatarURL stores the public URL of the user's avatar object.
func (r *Repository) SetAvatarURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`,
		id, url,
	)
	if err != nil {
		return fmt.Errorf("set avatar url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResumeURL stores the public URL of the user's resume object.
func (r *Repository) SetResumeURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET resume_url = $2, updated_at = NOW() WHERE id = $1`,
		id, url,
	)
	if err != nil {
		return fmt.Errorf("set resume url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
