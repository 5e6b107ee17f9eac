package mokja

import (
	"errors"
	"fmt"

	"github.com/mokjaru/mokja/recommend"
	"github.com/mokjaru/mokja/vectorindex"
)

var (
	// ErrNotFound is returned when a diner or reviewer is not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidVector is returned when a query or stored vector is
	// unusable (zero vector, empty batch).
	ErrInvalidVector = errors.New("invalid vector")

	// ErrPersonalizationUnavailable is returned when no reviewer identity
	// or embedding exists for a user. Ranking treats it as a signal to
	// fall back to popularity, never as a user-facing failure.
	ErrPersonalizationUnavailable = recommend.ErrPersonalizationUnavailable

	// ErrNoVectorIndex is returned by embedding-backed operations when the
	// engine was built without a vector index.
	ErrNoVectorIndex = errors.New("no vector index configured")

	// ErrNoResolver is returned by personalized operations when the engine
	// was built without a reviewer resolver.
	ErrNoResolver = errors.New("no reviewer resolver configured")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Space    string
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch in space %q: expected %d, got %d", e.Space, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, vectorindex.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Vector argument normalization.
	if errors.Is(err, vectorindex.ErrInvalidVector) || errors.Is(err, vectorindex.ErrEmptyBatch) {
		return fmt.Errorf("%w: %w", ErrInvalidVector, err)
	}
	var dm *vectorindex.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Space: string(dm.Space), Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	return err
}
