// Package mokja is the core of a diner recommendation service: tiered
// Korean name search, multi-strategy ranking and embedding-based
// personalization over an in-memory diner corpus.
//
// The package ties together four subsystems:
//
//   - discover: attribute and geo filtering plus the tiered name search
//     (exact, substring, phonetic on decomposed jamo)
//   - rank: Bayesian-smoothed popularity, hidden-gem, rating, distance,
//     review-count and personalization orderings with stable ties
//   - vectorindex: per-space append-only cosine similarity index over
//     offline-trained embeddings
//   - recommend: reviewer resolution, personalized candidate ranking and
//     user-based collaborative filtering for cold-start users
//
// Diner data comes from a caller-supplied diner.Provider; embeddings are
// loaded from object storage by the artifact package.
//
// # Quick start
//
//	index := vectorindex.NewStore()
//	// ... artifact.NewLoader(store, index).Load(ctx, sources...) ...
//
//	engine, err := mokja.New(provider).
//	    VectorIndex(index).
//	    Resolver(resolver).
//	    Logger(mokja.NewTextLogger(slog.LevelInfo)).
//	    Build()
//	if err != nil {
//	    panic(err)
//	}
//
//	page, err := engine.Rank(ctx, mokja.RankingRequest{
//	    Filters: diner.FilterSet{CategoryMiddle: []string{"한식"}},
//	    SortBy:  rank.SortPopularity,
//	    Limit:   20,
//	})
//
// Personalized orderings degrade gracefully: a user without a reviewer
// mapping or embedding gets the popularity ordering instead of an error.
package mokja
