package rank

import (
	"sort"

	"github.com/mokjaru/mokja/diner"
)

// SortBy selects the single ordering applied to a candidate set.
type SortBy string

const (
	SortPopularity      SortBy = "popularity"
	SortHiddenGem       SortBy = "hidden_gem"
	SortRating          SortBy = "rating"
	SortDistance        SortBy = "distance"
	SortReviewCount     SortBy = "review_count"
	SortPersonalization SortBy = "personalization"
)

// Known reports whether s is one of the recognized strategies. Unrecognized
// values are not an error: Order falls back to rating, matching the lenient
// behavior of the source system. Callers that want strictness check Known
// up front.
func (s SortBy) Known() bool {
	switch s {
	case SortPopularity, SortHiddenGem, SortRating, SortDistance, SortReviewCount, SortPersonalization:
		return true
	default:
		return false
	}
}

// Request bundles the ordering and pagination of one ranking call.
type Request struct {
	SortBy SortBy
	// Offset rows are skipped after ordering.
	Offset int
	// Limit caps the result after the offset; <= 0 means unbounded.
	Limit int
}

// Order sorts candidates by the requested strategy and applies pagination.
// All sorts are stable: equal keys preserve the incoming candidate order.
//
// Fallback chain:
//   - unknown SortBy        -> rating
//   - distance without geo  -> rating
//   - personalization without scores for any candidate -> popularity
//
// personal maps diner idx to the personalization score produced by the
// recommendation orchestrator; it is only consulted for
// SortPersonalization and may be nil.
func Order(candidates []diner.Candidate, req Request, stats Stats, personal map[int64]float64) []diner.Candidate {
	out := make([]diner.Candidate, len(candidates))
	copy(out, candidates)

	switch effectiveSort(out, req.SortBy, personal) {
	case SortPopularity:
		sortDesc(out, func(c *diner.Candidate) float64 { return stats.BayesianScore(&c.Record) })
	case SortHiddenGem:
		sortDesc(out, func(c *diner.Candidate) float64 { return c.Record.HiddenScore })
	case SortReviewCount:
		sortDesc(out, func(c *diner.Candidate) float64 { return float64(c.Record.ReviewCountValue()) })
	case SortDistance:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })
	case SortPersonalization:
		sortDesc(out, func(c *diner.Candidate) float64 { return personal[c.Record.Idx] })
	default:
		sortDesc(out, func(c *diner.Candidate) float64 { return c.Record.ReviewAvg })
	}

	return paginate(out, req.Offset, req.Limit)
}

// effectiveSort resolves the requested strategy against what the candidate
// set can actually support.
func effectiveSort(candidates []diner.Candidate, by SortBy, personal map[int64]float64) SortBy {
	switch by {
	case SortDistance:
		for i := range candidates {
			if !candidates[i].HasDistance {
				return SortRating
			}
		}
		return SortDistance
	case SortPersonalization:
		if len(personal) == 0 {
			return SortPopularity
		}
		return SortPersonalization
	case SortPopularity, SortHiddenGem, SortReviewCount, SortRating:
		return by
	default:
		return SortRating
	}
}

func sortDesc(candidates []diner.Candidate, key func(*diner.Candidate) float64) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return key(&candidates[i]) > key(&candidates[j])
	})
}

func paginate(candidates []diner.Candidate, offset, limit int) []diner.Candidate {
	if offset > 0 {
		if offset >= len(candidates) {
			return []diner.Candidate{}
		}
		candidates = candidates[offset:]
	}
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
