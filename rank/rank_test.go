package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mokjaru/mokja/diner"
)

func candidateIdx(candidates []diner.Candidate) []int64 {
	out := make([]int64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Record.Idx
	}
	return out
}

func testCandidates() []diner.Candidate {
	return []diner.Candidate{
		{
			Record:      diner.Record{Idx: 1, ReviewAvg: 5.0, ReviewCount: "1", HiddenScore: 0.2},
			DistanceKM:  3.0,
			HasDistance: true,
		},
		{
			Record:      diner.Record{Idx: 2, ReviewAvg: 4.6, ReviewCount: "5000", HiddenScore: 0.9},
			DistanceKM:  1.0,
			HasDistance: true,
		},
		{
			Record:      diner.Record{Idx: 3, ReviewAvg: 3.9, ReviewCount: "120", HiddenScore: 0.5},
			DistanceKM:  2.0,
			HasDistance: true,
		},
	}
}

func TestOrder(t *testing.T) {
	stats := Stats{GlobalMeanRating: 4.5, MeanReviewCount: 100}

	t.Run("Rating", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortRating}, stats, nil)
		assert.Equal(t, []int64{1, 2, 3}, candidateIdx(got))
	})

	t.Run("ReviewCount", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortReviewCount}, stats, nil)
		assert.Equal(t, []int64{2, 3, 1}, candidateIdx(got))
	})

	t.Run("HiddenGem", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortHiddenGem}, stats, nil)
		assert.Equal(t, []int64{2, 3, 1}, candidateIdx(got))
	})

	t.Run("Distance", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortDistance}, stats, nil)
		assert.Equal(t, []int64{2, 3, 1}, candidateIdx(got))
	})

	t.Run("Popularity", func(t *testing.T) {
		// With m=100, diner 2's five thousand reviews anchor it near 4.6
		// while diner 1's single review stays pinned to the 4.5 prior.
		got := Order(testCandidates(), Request{SortBy: SortPopularity}, stats, nil)
		assert.Equal(t, int64(2), got[0].Record.Idx)
	})

	t.Run("Personalization", func(t *testing.T) {
		personal := map[int64]float64{1: 0.1, 2: 0.5, 3: 0.9}
		got := Order(testCandidates(), Request{SortBy: SortPersonalization}, stats, personal)
		assert.Equal(t, []int64{3, 2, 1}, candidateIdx(got))
	})

	t.Run("PersonalizationWithoutScoresFallsBackToPopularity", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortPersonalization}, stats, nil)
		assert.Equal(t, int64(2), got[0].Record.Idx)
	})

	t.Run("DistanceWithoutGeoFallsBackToRating", func(t *testing.T) {
		candidates := testCandidates()
		candidates[1].HasDistance = false
		got := Order(candidates, Request{SortBy: SortDistance}, stats, nil)
		assert.Equal(t, []int64{1, 2, 3}, candidateIdx(got))
	})

	t.Run("UnknownSortFallsBackToRating", func(t *testing.T) {
		assert.False(t, SortBy("review_score").Known())
		got := Order(testCandidates(), Request{SortBy: "review_score"}, stats, nil)
		assert.Equal(t, []int64{1, 2, 3}, candidateIdx(got))
	})

	t.Run("StableOnTies", func(t *testing.T) {
		candidates := []diner.Candidate{
			{Record: diner.Record{Idx: 7, ReviewAvg: 4.0}},
			{Record: diner.Record{Idx: 8, ReviewAvg: 4.0}},
			{Record: diner.Record{Idx: 9, ReviewAvg: 4.0}},
		}
		got := Order(candidates, Request{SortBy: SortRating}, stats, nil)
		assert.Equal(t, []int64{7, 8, 9}, candidateIdx(got))
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		candidates := testCandidates()
		_ = Order(candidates, Request{SortBy: SortDistance}, stats, nil)
		assert.Equal(t, []int64{1, 2, 3}, candidateIdx(candidates))
	})
}

func TestPaginate(t *testing.T) {
	stats := Stats{}

	t.Run("OffsetAndLimit", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortRating, Offset: 1, Limit: 1}, stats, nil)
		assert.Equal(t, []int64{2}, candidateIdx(got))
	})

	t.Run("OffsetPastEnd", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortRating, Offset: 10}, stats, nil)
		assert.Empty(t, got)
	})

	t.Run("ZeroLimitUnbounded", func(t *testing.T) {
		got := Order(testCandidates(), Request{SortBy: SortRating}, stats, nil)
		assert.Len(t, got, 3)
	})
}
