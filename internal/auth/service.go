package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careersync/service/internal/config"
	"github.com/careersync/service/internal/user"
)

// sessionTTL is the lifetime of issued session JWTs.
const sessionTTL = 30 * 24 * time.Hour

// ProviderProfile is the profile obtained from an OAuth provider after the
// user authorizes the application.
type ProviderProfile struct {
	Username     string
	Provider     string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpireDate   time.Time
}

// LoginResult holds the outcome of a provider login.
type LoginResult struct {
	IsNewUser bool
	Token     string
	User      *user.User
}

// UserDirectory is the slice of the user service the auth flow needs.
// *user.Service implements it; tests substitute a fake.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, email, username, provider string) (*user.User, error)
	IsNotFound(err error) bool
}

// TokenStore persists provider tokens. *Repository implements it.
type TokenStore interface {
	UpsertToken(ctx context.Context, userID, provider, accessToken, refreshToken string, expiresAt time.Time) error
	DeleteTokens(ctx context.Context, userID string) error
}

// Service contains the business logic for provider-based authentication.
type Service struct {
	repo    TokenStore
	userSvc UserDirectory
	cfg     *config.Config
}

// NewService creates a new auth Service.
func NewService(repo TokenStore, userSvc UserDirectory, cfg *config.Config) *Service {
	return &Service{repo: repo, userSvc: userSvc, cfg: cfg}
}

// Login exchanges a provider profile for a local session. First-time users
// are registered; the provider tokens are stored either way, and a session
// JWT is issued.
func (s *Service) Login(ctx context.Context, profile ProviderProfile) (*LoginResult, error) {
	u, err := s.userSvc.GetByEmail(ctx, profile.Email)
	isNew := false
	if err != nil {
		if !s.userSvc.IsNotFound(err) {
			return nil, fmt.Errorf("look up user: %w", err)
		}
		u, err = s.userSvc.Create(ctx, profile.Email, profile.Username, profile.Provider)
		if err != nil {
			return nil, fmt.Errorf("register user: %w", err)
		}
		isNew = true
	}

	if err := s.repo.UpsertToken(ctx, u.ID, profile.Provider, profile.AccessToken, profile.RefreshToken, profile.ExpireDate); err != nil {
		return nil, fmt.Errorf("store provider token: %w", err)
	}

	token, err := s.issueToken(u.ID, u.Email, u.Provider)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{IsNewUser: isNew, Token: token, User: u}, nil
}

// Logout removes the stored provider tokens for the user. The session JWT
// stays valid until it expires; the client discards it.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.repo.DeleteTokens(ctx, userID); err != nil {
		return fmt.Errorf("delete provider tokens: %w", err)
	}
	return nil
}

// issueToken creates a signed session JWT for the given user.
func (s *Service) issueToken(userID, email, provider string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"email":    email,
		"provider": provider,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
