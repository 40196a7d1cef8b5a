package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/careersync/service/internal/file"
)

// ErrResumeNotPDF is returned when a resume upload is not a PDF file.
var ErrResumeNotPDF = errors.New("resume must be a PDF file")

// ErrAvatarNotImage is returned when an avatar upload is not an image file.
var ErrAvatarNotImage = errors.New("avatar must be an image file")

// Repo is the persistence surface Service needs. *Repository implements it;
// tests substitute an in-memory fake.
type Repo interface {
	Create(ctx context.Context, email, username, provider string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateUsername(ctx context.Context, id, username string) (*User, error)
	SetAvatarURL(ctx context.Context, id, url string) error
	SetResumeURL(ctx context.Context, id, url string) error
}

// Service contains business logic for user profiles and their uploaded files.
type Service struct {
	repo  Repo
	files *file.Service
}

// NewService creates a new user Service.
func NewService(repo Repo, files *file.Service) *Service {
	return &Service{repo: repo, files: files}
}

// Create registers a new user account.
func (s *Service) Create(ctx context.Context, email, username, provider string) (*User, error) {
	u, err := s.repo.Create(ctx, email, username, provider)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID returns a user by their UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns a user by their email address.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// UpdateUsername changes the user's display name.
func (s *Service) UpdateUsername(ctx context.Context, id, username string) (*User, error) {
	return s.repo.UpdateUsername(ctx, id, username)
}

// UploadAvatar stores a new avatar image, records its URL on the user row,
// and removes the previous avatar object if one existed. Only image files
// are accepted; PDFs belong to UploadResume.
func (s *Service) UploadAvatar(ctx context.Context, userID, filename string, content []byte) (string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", ErrAvatarNotImage
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.files.Upload(ctx, filename, content)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}

	// Previous avatar is best-effort cleanup; the new URL is already recorded.
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		if err := s.files.DeleteByURL(ctx, *u.AvatarURL); err != nil {
			log.Printf("user: failed to delete old avatar %q: %v", *u.AvatarURL, err)
		}
	}

	return url, nil
}

// UploadResume stores a new resume PDF, records its URL on the user row, and
// removes the previous resume object if one existed.
func (s *Service) UploadResume(ctx context.Context, userID, filename string, content []byte) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", ErrResumeNotPDF
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.files.Upload(ctx, filename, content)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetResumeURL(ctx, userID, url); err != nil {
		return "", err
	}

	if u.ResumeURL != nil && *u.ResumeURL != "" {
		if err := s.files.DeleteByURL(ctx, *u.ResumeURL); err != nil {
			log.Printf("user: failed to delete old resume %q: %v", *u.ResumeURL, err)
		}
	}

	return url, nil
}

// IsNotFound returns true when the error indicates a user was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
