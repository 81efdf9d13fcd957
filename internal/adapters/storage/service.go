// Package storage provides a domain-agnostic interface for S3-compatible
// object storage. Property media and archived reports both live behind it.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service defines the object storage operations the application needs.
type Service interface {
	// GenerateUploadURL creates a presigned URL for uploading a file under
	// the given folder prefix. A short random suffix is appended to the
	// file name so uploads never overwrite each other.
	GenerateUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// GenerateDownloadURL creates a presigned URL for downloading an object.
	GenerateDownloadURL(ctx context.Context, objectKey string) (*PresignedURL, error)

	// Upload stores an object directly from a reader and returns its key.
	Upload(ctx context.Context, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// Delete removes an object.
	Delete(ctx context.Context, objectKey string) error

	// EnsureBucket creates the configured bucket if it does not exist.
	EnsureBucket(ctx context.Context) error
}
