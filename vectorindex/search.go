package vectorindex

import (
	"context"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/mokjaru/mokja/distance"
)

// Search scores every id in the space against the query and returns the
// top k neighbors by dot product, highest first. k <= 0 returns the full
// ranking. Equal scores preserve insertion order.
//
// The query is scored as-is: the store does not renormalize it. Callers
// normalize consistently with how the space was populated.
func (s *Store) Search(ctx context.Context, space Space, query []float32, k int) ([]Neighbor, error) {
	return s.SearchExcluding(ctx, space, query, k, nil)
}

// SearchWithin restricts the search to exactly the given id subset. Ids
// absent from the index are silently dropped; an empty resolved subset
// returns an empty result, not an error.
func (s *Store) SearchWithin(ctx context.Context, space Space, query []float32, k int, ids []string) ([]Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := s.lookupArtifact(space)
	if a == nil {
		return nil, fmt.Errorf("%w: space %q is not populated", ErrNotFound, space)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if err := a.validateQuery(space, query); err != nil {
		return nil, err
	}

	rows := roaring.New()
	for _, id := range ids {
		if row, ok := a.rowByID[id]; ok {
			rows.Add(uint32(row))
		}
	}
	return a.scoreRows(query, k, rows), nil
}

// SearchExcluding searches the whole space minus the given ids. A nil or
// empty exclusion list searches everything.
func (s *Store) SearchExcluding(ctx context.Context, space Space, query []float32, k int, exclude []string) ([]Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := s.lookupArtifact(space)
	if a == nil {
		return nil, fmt.Errorf("%w: space %q is not populated", ErrNotFound, space)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if err := a.validateQuery(space, query); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	rows := roaring.New()
	for id, row := range a.rowByID {
		if _, skip := excluded[id]; skip {
			continue
		}
		rows.Add(uint32(row))
	}
	return a.scoreRows(query, k, rows), nil
}

func (a *artifact) validateQuery(space Space, query []float32) error {
	if len(query) != a.dimension {
		return &ErrDimensionMismatch{Space: space, Expected: a.dimension, Actual: len(query)}
	}
	if distance.IsZero(query) {
		return fmt.Errorf("%w: zero query vector", ErrInvalidVector)
	}
	return nil
}

// scoreRows builds the temporary sub-index for one call: only rows present
// in the bitmap are scored. The bitmap holds authoritative rows only, so
// shadowed duplicates never appear in results. Caller holds the read lock.
func (a *artifact) scoreRows(query []float32, k int, rows *roaring.Bitmap) []Neighbor {
	neighbors := make([]Neighbor, 0, rows.GetCardinality())

	// Ascending row order keeps the pre-sort order equal to insertion
	// order, which the stable sort below preserves across score ties.
	it := rows.Iterator()
	for it.HasNext() {
		row := int(it.Next())
		neighbors = append(neighbors, Neighbor{
			ID:    a.ids[row],
			Score: distance.Dot(query, a.row(row)),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})

	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}
