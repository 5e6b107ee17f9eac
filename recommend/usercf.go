package recommend

import (
	"fmt"
	"math"
	"sync"
)

// Rating is one cell of the sparse reviewer x diner rating matrix.
type Rating struct {
	ReviewerID string
	DinerID    string
	Score      float64
}

// Matrix is a sparse user-based collaborative-filtering matrix. It is
// built once from offline rating data and queried concurrently.
type Matrix struct {
	mu      sync.RWMutex
	byUser  map[string]map[string]float64
	normSqr map[string]float64
}

// NewMatrix creates an empty Matrix.
func NewMatrix() *Matrix {
	return &Matrix{
		byUser:  make(map[string]map[string]float64),
		normSqr: make(map[string]float64),
	}
}

// NewMatrixFromRatings creates a Matrix populated with the given ratings.
func NewMatrixFromRatings(ratings []Rating) *Matrix {
	m := NewMatrix()
	for _, r := range ratings {
		m.Add(r.ReviewerID, r.DinerID, r.Score)
	}
	return m
}

// Add records one rating. Re-adding the same reviewer/diner pair replaces
// the previous score.
func (m *Matrix) Add(reviewerID, dinerID string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.byUser[reviewerID]
	if !ok {
		row = make(map[string]float64)
		m.byUser[reviewerID] = row
	}
	if prev, ok := row[dinerID]; ok {
		m.normSqr[reviewerID] -= prev * prev
	}
	row[dinerID] = score
	m.normSqr[reviewerID] += score * score
}

// Reviewers returns the number of reviewers in the matrix.
func (m *Matrix) Reviewers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byUser)
}

// FindSimilarReviewer returns the id of the existing reviewer whose rating
// vector has the highest cosine similarity with the given ratings. Ties
// resolve to the lowest reviewer id, so the result is deterministic.
//
// Returns ErrPersonalizationUnavailable when the query shares no rated
// diner with any reviewer.
func (m *Matrix) FindSimilarReviewer(ratings map[string]float64) (string, error) {
	if len(ratings) == 0 {
		return "", fmt.Errorf("%w: no ratings supplied", ErrPersonalizationUnavailable)
	}

	var queryNormSqr float64
	for _, score := range ratings {
		queryNormSqr += score * score
	}
	if queryNormSqr == 0 {
		return "", fmt.Errorf("%w: all supplied ratings are zero", ErrPersonalizationUnavailable)
	}
	queryNorm := math.Sqrt(queryNormSqr)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		bestID  string
		bestSim float64
		found   bool
	)
	for reviewerID, row := range m.byUser {
		var dot float64
		shared := false
		for dinerID, score := range ratings {
			if other, ok := row[dinerID]; ok {
				dot += score * other
				shared = true
			}
		}
		if !shared || dot == 0 {
			continue
		}
		norm := math.Sqrt(m.normSqr[reviewerID])
		if norm == 0 {
			continue
		}
		sim := dot / (queryNorm * norm)
		switch {
		case !found, sim > bestSim:
			bestID, bestSim, found = reviewerID, sim, true
		case sim == bestSim && reviewerID < bestID:
			bestID = reviewerID
		}
	}
	if !found {
		return "", fmt.Errorf("%w: no reviewer shares a rated diner with the query", ErrPersonalizationUnavailable)
	}
	return bestID, nil
}
