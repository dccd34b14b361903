package storage

import (
	"context"
	"io"
)

// Storage is the interface image uploads go through.
type Storage interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object. Returns nil if the object doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for an object key.
	GetURL(key string) string
}

// Config holds connection settings for an S3-compatible backend.
type Config struct {
	Endpoint        string // e.g. https://<account>.r2.cloudflarestorage.com or a MinIO URL
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	PublicURL       string // CDN base for public access
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}
