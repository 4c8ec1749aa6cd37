// internal/storage/blob/interface.go
package blob

import (
	"context"
	"errors"

	"github.com/newthinker/metricboard/internal/core"
)

// Store is a flat key/value view over a filesystem tree or an object bucket.
// Keys use forward slashes regardless of backend.
type Store interface {
	// Write stores data at key, creating any parent directories
	Write(ctx context.Context, key string, data []byte) error

	// Read retrieves data from key
	Read(ctx context.Context, key string) ([]byte, error)

	// List returns the keys of all objects under prefix. A missing prefix
	// yields an empty list.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the object at key
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at key
	Exists(ctx context.Context, key string) (bool, error)
}

// ErrNotFound is returned by Read and Delete when the key does not exist.
var ErrNotFound = &core.Error{Code: "OBJECT_NOT_FOUND", Message: "object not found"}

// IsNotFound reports whether err signals a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
