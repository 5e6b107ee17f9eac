package mokja

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRank is called after each ranking operation.
	// sortBy is the requested strategy as the caller spelled it; fallbacks
	// (unknown strategy, distance without geo, personalization without a
	// signal) are not reflected here. duration is the total time taken,
	// err is nil if successful.
	RecordRank(sortBy string, duration time.Duration, err error)

	// RecordSearch is called after each name search operation.
	// results is the number of matches returned.
	RecordSearch(results int, duration time.Duration, err error)

	// RecordRecommend is called after each personalized ranking operation.
	RecordRecommend(duration time.Duration, err error)

	// RecordPersonalizationFallback is called when a personalization
	// request degrades to the popularity ordering.
	RecordPersonalizationFallback()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRank(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRecommend(time.Duration, error)    {}
func (NoopMetricsCollector) RecordPersonalizationFallback()          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RankCount            atomic.Int64
	RankErrors           atomic.Int64
	RankTotalNanos       atomic.Int64
	SearchCount          atomic.Int64
	SearchErrors         atomic.Int64
	SearchTotalNanos     atomic.Int64
	SearchResults        atomic.Int64
	RecommendCount       atomic.Int64
	RecommendErrors      atomic.Int64
	PersonalizationFalls atomic.Int64
}

// RecordRank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRank(sortBy string, duration time.Duration, err error) {
	b.RankCount.Add(1)
	b.RankTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RankErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(results int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SearchResults.Add(int64(results))
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRecommend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecommend(duration time.Duration, err error) {
	b.RecommendCount.Add(1)
	if err != nil {
		b.RecommendErrors.Add(1)
	}
}

// RecordPersonalizationFallback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPersonalizationFallback() {
	b.PersonalizationFalls.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RankCount:            b.RankCount.Load(),
		RankErrors:           b.RankErrors.Load(),
		RankAvgNanos:         avgNanos(b.RankTotalNanos.Load(), b.RankCount.Load()),
		SearchCount:          b.SearchCount.Load(),
		SearchErrors:         b.SearchErrors.Load(),
		SearchAvgNanos:       avgNanos(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		SearchResults:        b.SearchResults.Load(),
		RecommendCount:       b.RecommendCount.Load(),
		RecommendErrors:      b.RecommendErrors.Load(),
		PersonalizationFalls: b.PersonalizationFalls.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RankCount            int64
	RankErrors           int64
	RankAvgNanos         int64
	SearchCount          int64
	SearchErrors         int64
	SearchAvgNanos       int64
	SearchResults        int64
	RecommendCount       int64
	RecommendErrors      int64
	PersonalizationFalls int64
}
