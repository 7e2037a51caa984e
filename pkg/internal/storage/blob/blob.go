// Package blob stores document binary content. Backends are selected by
// configuration: the local/shared filesystem (default) or an S3-compatible
// object store. Keys are forward-slash relative paths produced by the
// storage path resolver; the blob store never decides which version of a
// document is current.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/teczamora/repositorio65/pkg/configs"
)

// ErrNotExist is returned by Get/Stat when a key has no content.
var ErrNotExist = errors.New("blob does not exist")

// ObjectInfo describes one stored blob.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Backend is the binary content store consumed by the upload coordinator
// and the read path.
type Backend interface {
	// Put writes the full content under key, replacing any previous
	// content. Implementations must not expose partially written blobs:
	// either the complete content becomes readable or the old state stays.
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	// Get opens the content for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Stat returns blob metadata, or ErrNotExist.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes the content. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List walks every stored key under prefix. Used by the orphan sweep.
	List(ctx context.Context, prefix string, fn func(ObjectInfo) error) error
	Close() error
}

// Client wraps the configured backend.
type Client struct {
	Backend
}

// New selects and initializes the configured blob backend.
func New(ctx context.Context, cfg *configs.BlobConfig) (*Client, error) {
	switch cfg.Type {
	case configs.BlobLocal:
		b, err := NewLocal(cfg.Root)
		if err != nil {
			return nil, err
		}

		return &Client{Backend: b}, nil
	case configs.BlobS3:
		b, err := NewS3(ctx, &cfg.S3)
		if err != nil {
			return nil, err
		}

		return &Client{Backend: b}, nil
	default:
		return nil, fmt.Errorf("unsupported blob backend: %s", cfg.Type)
	}
}
