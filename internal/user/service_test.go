package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/careersync/service/internal/file"
)

// fakeRepo is an in-memory Repo for tests.
type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	r := &fakeRepo{users: map[string]*User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, email, username, provider string) (*User, error) {
	u := &User{ID: fmt.Sprintf("user-%d", len(r.users)+1), Email: email, Username: username, Provider: provider}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) UpdateUsername(_ context.Context, id, username string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Username = username
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) SetAvatarURL(_ context.Context, id, url string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.AvatarURL = &url
	return nil
}

func (r *fakeRepo) SetResumeURL(_ context.Context, id, url string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ResumeURL = &url
	return nil
}

// fakeStore is an in-memory storage.Storage for tests.
type fakeStore struct {
	objects    map[string][]byte
	failDelete error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("object %q does not exist", key)
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) PublicURL(key string) string {
	return "https://bucket.example.com/" + key
}

func ptr(s string) *string { return &s }

func TestUploadAvatar_ReplacesOldObject(t *testing.T) {
	store := newFakeStore()
	store.objects["old-avatar.png"] = []byte("old")
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com", AvatarURL: ptr("https://bucket.example.com/old-avatar.png")})
	svc := NewService(repo, file.NewService(store))

	url, err := svc.UploadAvatar(context.Background(), "user-1", "photo.png", []byte("new image"))
	if err != nil {
		t.Fatalf("UploadAvatar failed: %v", err)
	}

	if _, ok := store.objects["old-avatar.png"]; ok {
		t.Error("old avatar object should be deleted after replace")
	}
	u := repo.users["user-1"]
	if u.AvatarURL == nil || *u.AvatarURL != url {
		t.Errorf("expected avatar URL %q recorded on the user, got %v", url, u.AvatarURL)
	}
	if !strings.HasSuffix(url, "photo.png") {
		t.Errorf("avatar URL should end in the original filename, got %q", url)
	}
}

func TestUploadAvatar_KeepsNewURLWhenCleanupFails(t *testing.T) {
	store := newFakeStore()
	store.objects["old-avatar.png"] = []byte("old")
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com", AvatarURL: ptr("https://bucket.example.com/old-avatar.png")})
	svc := NewService(repo, file.NewService(store))

	// Uploading works; only the best-effort cleanup of the old object fails.
	uploaded, err := svc.UploadAvatar(context.Background(), "user-1", "photo.png", []byte("new image"))
	if err != nil {
		t.Fatalf("UploadAvatar failed: %v", err)
	}
	store.failDelete = errors.New("connection refused")

	url, err := svc.UploadAvatar(context.Background(), "user-1", "next.png", []byte("newer image"))
	if err != nil {
		t.Fatalf("UploadAvatar should succeed despite cleanup failure, got %v", err)
	}
	if url == uploaded {
		t.Fatal("expected a fresh URL for the second upload")
	}
	u := repo.users["user-1"]
	if u.AvatarURL == nil || *u.AvatarURL != url {
		t.Errorf("expected new avatar URL %q recorded on the user, got %v", url, u.AvatarURL)
	}
}

func TestUploadAvatar_RejectsPDF(t *testing.T) {
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com"})
	svc := NewService(repo, file.NewService(newFakeStore()))

	_, err := svc.UploadAvatar(context.Background(), "user-1", "doc.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrAvatarNotImage) {
		t.Errorf("expected ErrAvatarNotImage, got %v", err)
	}
}

func TestUploadAvatar_UserNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), file.NewService(newFakeStore()))

	_, err := svc.UploadAvatar(context.Background(), "user-404", "photo.png", []byte("data"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUploadResume_ReplacesOldObject(t *testing.T) {
	store := newFakeStore()
	store.objects["old-resume.pdf"] = []byte("old")
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com", ResumeURL: ptr("https://bucket.example.com/old-resume.pdf")})
	svc := NewService(repo, file.NewService(store))

	url, err := svc.UploadResume(context.Background(), "user-1", "resume.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("UploadResume failed: %v", err)
	}

	if _, ok := store.objects["old-resume.pdf"]; ok {
		t.Error("old resume object should be deleted after replace")
	}
	u := repo.users["user-1"]
	if u.ResumeURL == nil || *u.ResumeURL != url {
		t.Errorf("expected resume URL %q recorded on the user, got %v", url, u.ResumeURL)
	}
}

func TestUploadResume_RejectsNonPDF(t *testing.T) {
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com"})
	svc := NewService(repo, file.NewService(newFakeStore()))

	for _, filename := range []string{"resume.png", "resume.docx", "resume"} {
		_, err := svc.UploadResume(context.Background(), "user-1", filename, []byte("data"))
		if !errors.Is(err, ErrResumeNotPDF) {
			t.Errorf("UploadResume(%q): expected ErrResumeNotPDF, got %v", filename, err)
		}
	}
}

func TestUpdateUsername(t *testing.T) {
	repo := newFakeRepo(&User{ID: "user-1", Email: "jihye@example.com", Username: "jihye"})
	svc := NewService(repo, file.NewService(newFakeStore()))

	u, err := svc.UpdateUsername(context.Background(), "user-1", "jihye.dev")
	if err != nil {
		t.Fatalf("UpdateUsername failed: %v", err)
	}
	if u.Username != "jihye.dev" {
		t.Errorf("expected username jihye.dev, got %q", u.Username)
	}
}
