package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage abstracts a media-storage account.
type Storage interface {
	// Save stores a file at the given path.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private files.
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// Config holds one storage account's configuration.
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // for R2 or custom S3
}

// NewStorage creates a storage instance based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
