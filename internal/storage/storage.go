// Package storage provides blob storage for media files attached to
// listings. It defines a System interface and includes a filesystem
// implementation suitable for development and single-node deployments.
package storage

import (
	"context"

	"github.com/vendetucasa/intake/pkg/lifecycle"
)

// System defines the storage operations interface for media blobs.
type System interface {
	// Store saves data at the specified key. If the key already exists,
	// its contents are overwritten. Parent directories are created as needed.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the data at the specified key.
	// Returns nil if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists and is accessible.
	Exists(ctx context.Context, key string) (bool, error)

	// Path resolves the absolute filesystem path for a key.
	Path(ctx context.Context, key string) (string, error)

	// Start registers lifecycle hooks with the coordinator.
	// For filesystem storage, this creates the base directory.
	Start(lc *lifecycle.Coordinator) error
}
