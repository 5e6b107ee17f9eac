package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mokjaru/mokja/diner"
)

func TestCorpusStats(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, Stats{}, CorpusStats(nil))
	})

	t.Run("Means", func(t *testing.T) {
		stats := CorpusStats([]diner.Record{
			{ReviewAvg: 5.0, ReviewCount: "1"},
			{ReviewAvg: 4.6, ReviewCount: "5000"},
		})
		assert.InDelta(t, 4.8, stats.GlobalMeanRating, 1e-9)
		assert.InDelta(t, 2500.5, stats.MeanReviewCount, 1e-9)
	})

	t.Run("UnparseableCountsAsZero", func(t *testing.T) {
		stats := CorpusStats([]diner.Record{
			{ReviewAvg: 4.0, ReviewCount: "없음"},
			{ReviewAvg: 4.0, ReviewCount: "10"},
		})
		assert.InDelta(t, 5.0, stats.MeanReviewCount, 1e-9)
	})
}

func TestBayesianScore(t *testing.T) {
	t.Run("ZeroReviewsFallsBackToPrior", func(t *testing.T) {
		stats := Stats{GlobalMeanRating: 4.3, MeanReviewCount: 120}
		r := diner.Record{ReviewAvg: 5.0, ReviewCount: "0"}
		assert.InDelta(t, 4.3, stats.BayesianScore(&r), 1e-9)
	})

	t.Run("HighVolumeApproachesRawAverage", func(t *testing.T) {
		stats := Stats{GlobalMeanRating: 4.3, MeanReviewCount: 120}
		r := diner.Record{ReviewAvg: 3.5, ReviewCount: "1000000"}
		assert.InDelta(t, 3.5, stats.BayesianScore(&r), 1e-3)
	})

	t.Run("BothZeroDefined", func(t *testing.T) {
		stats := Stats{GlobalMeanRating: 4.1, MeanReviewCount: 0}
		r := diner.Record{ReviewAvg: 5.0, ReviewCount: "0"}
		assert.Equal(t, 4.1, stats.BayesianScore(&r))
	})

	t.Run("SmoothingBeatsSingleFiveStarReview", func(t *testing.T) {
		// A 5.0-rated diner with one review must not outrank a 4.6-rated
		// diner with five thousand.
		corpus := []diner.Record{
			{Idx: 1, ReviewAvg: 5.0, ReviewCount: "1"},
			{Idx: 2, ReviewAvg: 4.6, ReviewCount: "5000"},
		}
		stats := CorpusStats(corpus)

		one := stats.BayesianScore(&corpus[0])
		many := stats.BayesianScore(&corpus[1])

		// The single review barely moves the score off the prior: the
		// smoothed score sits within a hair of C and far from 5.0.
		assert.InDelta(t, stats.GlobalMeanRating, one, 0.01)
		assert.Greater(t, 5.0-one, 0.19)

		// The high-volume diner's score stays anchored near its own
		// raw average instead of the prior.
		assert.InDelta(t, corpus[1].ReviewAvg, many, 0.1)
	})
}
