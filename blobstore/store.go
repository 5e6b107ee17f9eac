// Package blobstore abstracts access to the object storage that holds
// offline-trained embedding artifacts. Artifacts are small and consumed
// wholesale, so stores fetch complete blobs rather than exposing random
// access.
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is a read-only view of an artifact bucket or directory.
type Store interface {
	// Fetch reads the complete blob with the given name.
	Fetch(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all blobs matching the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
