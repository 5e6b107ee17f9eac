package vectorindex

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a space has never been populated or an
	// id is absent from its index.
	ErrNotFound = errors.New("not found")

	// ErrInvalidVector is returned for a zero vector where normalization
	// or similarity is requested (the direction is undefined).
	ErrInvalidVector = errors.New("invalid vector")

	// ErrEmptyBatch is returned when Add is called with no embeddings.
	ErrEmptyBatch = errors.New("empty batch")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch
// against a space's established dimension.
type ErrDimensionMismatch struct {
	Space    Space
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("space %q: dimension mismatch: expected %d, got %d", e.Space, e.Expected, e.Actual)
}
