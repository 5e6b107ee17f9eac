// This file implements the fluent builder API for assembling an Engine.
// The builder is immutable - each method returns a new builder with the
// updated configuration.
package mokja

import (
	"errors"

	"github.com/mokjaru/mokja/diner"
	"github.com/mokjaru/mokja/discover"
	"github.com/mokjaru/mokja/recommend"
	"github.com/mokjaru/mokja/vectorindex"
)

// New creates an Engine builder over the given diner provider.
//
// The provider is the only required collaborator. Without a vector index
// and resolver the engine still filters, searches and ranks; the
// personalization ordering then falls back to popularity and the
// embedding-backed operations return ErrNoVectorIndex.
//
// Example:
//
//	engine, err := mokja.New(provider).
//	    VectorIndex(index).
//	    Resolver(resolver).
//	    RatingMatrix(matrix).
//	    Logger(mokja.NewTextLogger(slog.LevelInfo)).
//	    Build()
func New(provider diner.Provider) Builder {
	return Builder{
		provider:       provider,
		fuzzyThreshold: discover.DefaultOptions.FuzzyThreshold,
		fuzzyPoolLimit: discover.DefaultOptions.FuzzyPoolLimit,
	}
}

// Builder is an immutable fluent builder for creating Engine instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	provider       diner.Provider
	index          *vectorindex.Store
	resolver       recommend.ReviewerResolver
	matrix         *recommend.Matrix
	logger         *Logger
	metrics        MetricsCollector
	fuzzyThreshold float64
	fuzzyPoolLimit int
}

// VectorIndex sets the embedding index backing personalization and
// similar-diner lookups.
func (b Builder) VectorIndex(index *vectorindex.Store) Builder {
	b.index = index
	return b
}

// Resolver sets the reviewer resolver used to map users to the reviewer
// identities of the offline training pipeline.
func (b Builder) Resolver(r recommend.ReviewerResolver) Builder {
	b.resolver = r
	return b
}

// RatingMatrix sets the collaborative-filtering matrix consulted for
// cold-start users.
func (b Builder) RatingMatrix(m *recommend.Matrix) Builder {
	b.matrix = m
	return b
}

// Logger configures structured logging for operations.
// Default: NoopLogger.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics configures a metrics collector for monitoring operations.
// Default: NoopMetricsCollector.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// FuzzyThreshold sets the minimum phonetic similarity for the fuzzy
// search tier. Default: 0.7.
func (b Builder) FuzzyThreshold(t float64) Builder {
	b.fuzzyThreshold = t
	return b
}

// FuzzyPoolLimit bounds the number of candidates scored by the phonetic
// tier. Default: 5000.
func (b Builder) FuzzyPoolLimit(n int) Builder {
	b.fuzzyPoolLimit = n
	return b
}

// Build assembles the Engine.
func (b Builder) Build() (*Engine, error) {
	if b.provider == nil {
		return nil, errors.New("diner provider is required")
	}

	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	disc := discover.New(func(o *discover.Options) {
		o.FuzzyThreshold = b.fuzzyThreshold
		o.FuzzyPoolLimit = b.fuzzyPoolLimit
	})

	var orch *recommend.Orchestrator
	if b.index != nil && b.resolver != nil {
		orch = recommend.NewOrchestrator(b.index, b.resolver)
	}

	return &Engine{
		provider: b.provider,
		disc:     disc,
		index:    b.index,
		orch:     orch,
		matrix:   b.matrix,
		logger:   logger,
		metrics:  metrics,
	}, nil
}
