// Package rank orders discovery candidates by exactly one sort strategy and
// provides the Bayesian-smoothed popularity score underlying the default
// popularity ordering.
package rank

import "github.com/mokjaru/mokja/diner"

// Stats are corpus-wide rating statistics for one candidate snapshot.
// Compute them once per request over the immutable snapshot used for
// filtering, not per diner.
type Stats struct {
	// GlobalMeanRating is the arithmetic mean of ReviewAvg over the corpus (C).
	GlobalMeanRating float64
	// MeanReviewCount is the arithmetic mean of parsed review counts (m).
	MeanReviewCount float64
}

// CorpusStats computes Stats over the full candidate snapshot.
func CorpusStats(records []diner.Record) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	var ratingSum, countSum float64
	for i := range records {
		ratingSum += records[i].ReviewAvg
		countSum += float64(records[i].ReviewCountValue())
	}
	n := float64(len(records))
	return Stats{
		GlobalMeanRating: ratingSum / n,
		MeanReviewCount:  countSum / n,
	}
}

// BayesianScore smooths the diner's raw average rating toward the corpus
// mean, weighted by review volume:
//
//	(v/(v+m))*R + (m/(v+m))*C
//
// A diner with zero reviews scores exactly C (no evidence falls back to the
// global prior), and the score approaches R as the review count grows. When
// both v and m are zero the score is defined as C.
func (s Stats) BayesianScore(r *diner.Record) float64 {
	v := float64(r.ReviewCountValue())
	m := s.MeanReviewCount
	if v+m == 0 {
		return s.GlobalMeanRating
	}
	return v/(v+m)*r.ReviewAvg + m/(v+m)*s.GlobalMeanRating
}
