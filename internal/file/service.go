// Package file validates and uploads user files to object storage, and
// resolves previously returned public URLs back to storage keys for delete
// and download.
package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/careersync/service/internal/storage"
)

// allowedExtensions is the set of file extensions accepted for upload.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"pdf":  true,
}

// keyPrefixLen is the length of the random key prefix prepended to filenames.
const keyPrefixLen = 10

// DownloadedFile is the in-memory representation of a downloaded object.
// Content is a live stream and must be closed by the caller.
type DownloadedFile struct {
	Name         string
	OriginalName string
	ContentType  string
	Content      io.ReadCloser
}

// Service validates uploads and maps public URLs to storage keys. It holds no
// state between calls and is safe for concurrent use.
type Service struct {
	store storage.Storage
}

// NewService creates a file Service backed by the given store.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Upload validates the file, writes it to the store under a randomly prefixed
// key, and returns the object's public URL.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 || filename == "" {
		return "", ErrEmptyFile
	}

	ext, err := extension(filename)
	if err != nil {
		return "", err
	}

	key := uuid.NewString()[:keyPrefixLen] + filename

	if err := s.store.Put(ctx, key, bytes.NewReader(content), int64(len(content)), contentType(ext)); err != nil {
		return "", &UploadError{Err: err}
	}

	return s.store.PublicURL(key), nil
}

// DeleteByURL removes the object addressed by a previously returned public URL.
func (s *Service) DeleteByURL(ctx context.Context, rawURL string) error {
	key, err := KeyFromURL(rawURL)
	if err != nil {
		return &DeleteError{Err: err}
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return &DeleteError{Err: err}
	}
	return nil
}

// DownloadByURL fetches the object addressed by a public URL and returns it as
// an in-memory file. The caller must close the returned Content stream.
func (s *Service) DownloadByURL(ctx context.Context, rawURL string) (*DownloadedFile, error) {
	key, err := KeyFromURL(rawURL)
	if err != nil {
		log.Printf("file: download failed: %v", err)
		return nil, &DownloadError{Err: err}
	}

	content, ct, err := s.store.Get(ctx, key)
	if err != nil {
		log.Printf("file: download failed: %v", err)
		return nil, &DownloadError{Err: err}
	}

	return &DownloadedFile{
		Name:         key,
		OriginalName: key,
		ContentType:  ct,
		Content:      content,
	}, nil
}

// KeyFromURL derives the storage key from a public object URL: the URL path,
// percent-decoded, with the leading slash stripped. Delete and download share
// this so the two stay consistent if the URL shape ever changes.
func KeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", rawURL)
	}

	key, err := url.PathUnescape(u.EscapedPath())
	if err != nil {
		return "", fmt.Errorf("decode url path %q: %w", u.EscapedPath(), err)
	}

	return strings.TrimPrefix(key, "/"), nil
}

// extension returns the lowercased extension after the last dot in filename.
func extension(filename string) (string, error) {
	i := strings.LastIndex(filename, ".")
	if i == -1 {
		return "", ErrMissingExtension
	}

	ext := strings.ToLower(filename[i+1:])
	if !allowedExtensions[ext] {
		return "", ErrInvalidExtension
	}

	return ext, nil
}

// contentType maps an allowed extension to its MIME type.
func contentType(ext string) string {
	if ext == "pdf" {
		return "application/pdf"
	}
	return "image/" + ext
}
