// Package vectorindex maintains one append-only inner-product similarity
// index per embedding space and answers exact-id lookup and top-k
// nearest-neighbor queries, optionally restricted to (or excluding) an
// explicit id subset.
package vectorindex

import (
	"context"
	"fmt"
	"sync"

	"github.com/mokjaru/mokja/distance"
)

// artifact is one space's index state: an ordered id list, a dense
// row-major matrix, and a last-wins id→row map.
//
// Invariant: len(ids)*dimension == len(vectors); ids[i] corresponds to
// row i of the matrix.
type artifact struct {
	mu        sync.RWMutex
	dimension int
	ids       []string
	vectors   []float32 // row-major, rows appended in insertion order
	rowByID   map[string]int
}

func (a *artifact) row(i int) []float32 {
	return a.vectors[i*a.dimension : (i+1)*a.dimension]
}

// Store owns the index artifacts for every space. It is constructed once at
// startup, populated by the artifact loader, and safe for concurrent use:
// each space carries its own reader/writer lock, so inserts into one space
// never block searches in another.
type Store struct {
	mu     sync.RWMutex
	spaces map[Space]*artifact
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{spaces: make(map[Space]*artifact)}
}

// Add appends the embeddings to the space's index, creating the index on
// first use with the batch's dimension.
//
// The whole call fails without a partial insert when the batch is empty,
// when any vector disagrees with the established dimension, or when
// normalize is requested for a zero vector. A failed first insert does not
// create the space or establish its dimension.
//
// Repeated ids are appended, not deduplicated: the matrix keeps every row,
// and the newest row for an id shadows older ones for Lookup and for
// subset-restricted search.
func (s *Store) Add(ctx context.Context, space Space, embeddings []Embedding, normalize bool) (StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return StoreResult{}, err
	}
	if len(embeddings) == 0 {
		return StoreResult{}, ErrEmptyBatch
	}

	// A space's dimension is fixed at creation, so it can be read without
	// the artifact lock. An unestablished space takes the batch's.
	dimension := s.Dimension(space)
	if dimension == 0 {
		dimension = len(embeddings[0].Values)
	}

	// Validate and normalize the whole batch before touching the space: a
	// failed Add must leave the store observably unchanged, including the
	// lazy space creation.
	rows := make([][]float32, len(embeddings))
	for i := range embeddings {
		if len(embeddings[i].Values) != dimension {
			return StoreResult{}, &ErrDimensionMismatch{
				Space:    space,
				Expected: dimension,
				Actual:   len(embeddings[i].Values),
			}
		}
		v := embeddings[i].Values
		if normalize {
			norm, ok := distance.NormalizeL2Copy(v)
			if !ok {
				return StoreResult{}, fmt.Errorf("%w: zero vector for id %q", ErrInvalidVector, embeddings[i].ID)
			}
			v = norm
		}
		rows[i] = v
	}

	a := s.artifactFor(space, dimension)

	a.mu.Lock()
	defer a.mu.Unlock()

	// A concurrent first insert may have established the space with a
	// different dimension between validation and commit.
	if a.dimension != dimension {
		return StoreResult{}, &ErrDimensionMismatch{Space: space, Expected: a.dimension, Actual: dimension}
	}

	for i, row := range rows {
		a.rowByID[embeddings[i].ID] = len(a.ids)
		a.ids = append(a.ids, embeddings[i].ID)
		a.vectors = append(a.vectors, row...)
	}

	return StoreResult{Count: len(a.ids), Dimension: a.dimension}, nil
}

// Lookup returns a copy of the stored embedding for id. When the id was
// stored more than once, the most recent row wins.
func (s *Store) Lookup(ctx context.Context, space Space, id string) (Embedding, error) {
	if err := ctx.Err(); err != nil {
		return Embedding{}, err
	}

	a := s.lookupArtifact(space)
	if a == nil {
		return Embedding{}, fmt.Errorf("%w: space %q is not populated", ErrNotFound, space)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	row, ok := a.rowByID[id]
	if !ok {
		return Embedding{}, fmt.Errorf("%w: id %q in space %q", ErrNotFound, id, space)
	}

	values := make([]float32, a.dimension)
	copy(values, a.row(row))
	return Embedding{ID: id, Values: values}, nil
}

// Dimension returns the established dimension for a space, or 0 when the
// space has never been populated.
func (s *Store) Dimension(space Space) int {
	a := s.lookupArtifact(space)
	if a == nil {
		return 0
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dimension
}

// Count returns the total number of stored rows for a space, including
// shadowed duplicates.
func (s *Store) Count(space Space) int {
	a := s.lookupArtifact(space)
	if a == nil {
		return 0
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.ids)
}

func (s *Store) lookupArtifact(space Space) *artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spaces[space]
}

// artifactFor returns the space's artifact, creating it lazily with the
// given dimension on first insert.
func (s *Store) artifactFor(space Space, dimension int) *artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.spaces[space]
	if !ok {
		a = &artifact{
			dimension: dimension,
			rowByID:   make(map[string]int),
		}
		s.spaces[space] = a
	}
	return a
}
