package file

import "errors"

// ErrEmptyFile is returned when the upload has no content or no filename.
var ErrEmptyFile = errors.New("file is empty or has no filename")

// ErrMissingExtension is returned when the filename contains no extension.
var ErrMissingExtension = errors.New("filename has no extension")

// ErrInvalidExtension is returned when the extension is not in the allowed set.
var ErrInvalidExtension = errors.New("file extension is not allowed")

// UploadError wraps a storage failure during upload.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload file: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// DeleteError wraps a failure during delete, including key derivation from a
// malformed URL.
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string { return "delete file: " + e.Err.Error() }
func (e *DeleteError) Unwrap() error { return e.Err }

// DownloadError wraps any failure during download, including a missing object.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return "download file: " + e.Err.Error() }
func (e *DownloadError) Unwrap() error { return e.Err }
