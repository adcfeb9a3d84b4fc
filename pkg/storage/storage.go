package storage

import (
	"context"

	"github.com/JaimeStill/ecopoint/pkg/lifecycle"
)

// System stores and retrieves binary blobs by key.
type System interface {
	// Store writes data at key, replacing existing content.
	// Returns ErrInvalidKey for empty or traversing keys.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists and is readable.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
