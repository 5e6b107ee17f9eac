package mokja

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mokjaru/mokja/diner"
	"github.com/mokjaru/mokja/discover"
	"github.com/mokjaru/mokja/rank"
	"github.com/mokjaru/mokja/recommend"
	"github.com/mokjaru/mokja/vectorindex"
)

// Engine is the assembled recommendation core. Create one with New and
// Build; the zero value is not usable.
//
// All methods are safe for concurrent use.
type Engine struct {
	provider diner.Provider
	disc     *discover.Engine
	index    *vectorindex.Store
	orch     *recommend.Orchestrator
	matrix   *recommend.Matrix
	logger   *Logger
	metrics  MetricsCollector
}

// RankingRequest describes one ranked listing request.
type RankingRequest struct {
	// Filters narrows the corpus before ranking.
	Filters diner.FilterSet

	// SortBy selects the ordering. Unrecognized values fall back to
	// rating; SortPersonalization without a usable user falls back to
	// popularity.
	SortBy rank.SortBy

	// UserID identifies the requesting user. Only consulted for
	// SortPersonalization.
	UserID string

	// Offset and Limit paginate the ordered result. Limit <= 0 means
	// unbounded.
	Offset int
	Limit  int
}

// Rank returns one page of the filtered corpus in the requested order.
//
// Corpus statistics for the Bayesian popularity and hidden-gem scores are
// computed over the filtered set, so niche corpora are smoothed against
// their own prior rather than a global one.
func (e *Engine) Rank(ctx context.Context, req RankingRequest) ([]diner.Candidate, error) {
	start := time.Now()

	page, total, err := e.rank(ctx, req)

	e.metrics.RecordRank(string(req.SortBy), time.Since(start), err)
	e.logger.LogRank(ctx, string(req.SortBy), total, len(page), err)
	return page, err
}

func (e *Engine) rank(ctx context.Context, req RankingRequest) ([]diner.Candidate, int, error) {
	records, err := e.provider.ListDiners(ctx, req.Filters)
	if err != nil {
		return nil, 0, err
	}
	candidates := e.disc.Filter(records, req.Filters)
	stats := rank.CorpusStats(records)

	if !req.SortBy.Known() && req.SortBy != "" {
		e.logger.LogUnknownSortBy(ctx, string(req.SortBy))
	}

	var personal map[int64]float64
	if req.SortBy == rank.SortPersonalization {
		personal, err = e.personalScores(ctx, req.UserID, candidates)
		if err != nil {
			return nil, 0, err
		}
	}

	return rank.Order(candidates, rank.Request{
		SortBy: req.SortBy,
		Offset: req.Offset,
		Limit:  req.Limit,
	}, stats, personal), len(candidates), nil
}

// personalScores returns the per-diner affinity of the user, or nil when
// personalization is unavailable. A nil map makes rank.Order fall back to
// popularity; only infrastructure failures surface as errors.
func (e *Engine) personalScores(ctx context.Context, userID string, candidates []diner.Candidate) (map[int64]float64, error) {
	if e.orch == nil || userID == "" {
		e.metrics.RecordPersonalizationFallback()
		e.logger.LogPersonalizationFallback(ctx, userID, ErrPersonalizationUnavailable)
		return nil, nil
	}

	ids := make([]string, len(candidates))
	for i := range candidates {
		ids[i] = strconv.FormatInt(candidates[i].Record.Idx, 10)
	}

	neighbors, err := e.orch.RankForUser(ctx, userID, ids)
	if err != nil {
		if errors.Is(err, ErrPersonalizationUnavailable) {
			e.metrics.RecordPersonalizationFallback()
			e.logger.LogPersonalizationFallback(ctx, userID, err)
			return nil, nil
		}
		return nil, translateError(err)
	}

	personal := make(map[int64]float64, len(neighbors))
	for _, n := range neighbors {
		idx, err := strconv.ParseInt(n.ID, 10, 64)
		if err != nil {
			continue
		}
		personal[idx] = float64(n.Score)
	}
	return personal, nil
}

// SearchRequest describes one tiered name search.
type SearchRequest struct {
	// Query is the raw user input; it is normalized before matching.
	Query string

	// Filters narrows the corpus before name matching.
	Filters diner.FilterSet

	// Geo optionally attaches distances and, with a positive radius,
	// filters the matches.
	Geo *discover.GeoQuery

	// K caps the result; <= 0 means unbounded.
	K int
}

// SearchDiners runs the tiered name search: exact, then substring, then
// phonetic matching on decomposed jamo. A hit in an earlier tier
// suppresses the later tiers.
func (e *Engine) SearchDiners(ctx context.Context, req SearchRequest) ([]discover.Match, error) {
	start := time.Now()

	records, err := e.provider.ListDiners(ctx, req.Filters)
	var matches []discover.Match
	if err == nil {
		matches, err = e.disc.Search(ctx, records, req.Query, req.K, req.Geo)
	}

	e.metrics.RecordSearch(len(matches), time.Since(start), err)
	e.logger.LogSearch(ctx, req.Query, req.K, len(matches), err)
	return matches, err
}

// SimilarDiners returns up to k diners nearest to the given diner in
// embedding space, excluding the diner itself and any extra ids.
func (e *Engine) SimilarDiners(ctx context.Context, dinerID string, k int, exclude ...string) ([]vectorindex.Neighbor, error) {
	if e.index == nil {
		return nil, ErrNoVectorIndex
	}

	embedding, err := e.index.Lookup(ctx, vectorindex.SpaceDiner, dinerID)
	if err != nil {
		return nil, translateError(err)
	}

	excluded := append([]string{dinerID}, exclude...)
	neighbors, err := e.index.SearchExcluding(ctx, vectorindex.SpaceDiner, embedding.Values, k, excluded)
	if err != nil {
		return nil, translateError(err)
	}
	return neighbors, nil
}

// RecommendForUser ranks the candidate diner ids by the user's embedding
// affinity, highest first. Candidates absent from the index are silently
// dropped.
//
// Returns ErrPersonalizationUnavailable when the user has no reviewer
// mapping or embedding.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, candidateDinerIDs []string) ([]vectorindex.Neighbor, error) {
	start := time.Now()

	neighbors, err := e.recommendForUser(ctx, userID, candidateDinerIDs)

	e.metrics.RecordRecommend(time.Since(start), err)
	return neighbors, err
}

func (e *Engine) recommendForUser(ctx context.Context, userID string, candidateDinerIDs []string) ([]vectorindex.Neighbor, error) {
	if e.orch == nil {
		if e.index == nil {
			return nil, ErrNoVectorIndex
		}
		return nil, ErrNoResolver
	}
	neighbors, err := e.orch.RankForUser(ctx, userID, candidateDinerIDs)
	if err != nil {
		return nil, translateError(err)
	}
	return neighbors, nil
}

// FindSimilarReviewer returns the id of the existing reviewer most similar
// to the given ratings, for bootstrapping users without an embedding.
//
// Returns ErrPersonalizationUnavailable when no rating matrix is
// configured or no reviewer shares a rated diner with the query.
func (e *Engine) FindSimilarReviewer(ratings map[string]float64) (string, error) {
	if e.matrix == nil {
		return "", ErrPersonalizationUnavailable
	}
	return e.matrix.FindSimilarReviewer(ratings)
}

// CategoryCounts returns how many diners of the filtered corpus fall into
// each category value at the given level, ordered by count descending with
// name ties ascending. parentLarge optionally scopes the count to one
// large category.
func (e *Engine) CategoryCounts(ctx context.Context, filters diner.FilterSet, level diner.CategoryLevel, parentLarge string) ([]discover.CategoryCount, error) {
	records, err := e.provider.ListDiners(ctx, filters)
	if err != nil {
		return nil, err
	}
	return discover.CategoryCounts(records, level, parentLarge), nil
}

// SampleDiners returns n diners drawn from the filtered corpus without
// replacement. The same seed always yields the same sample.
func (e *Engine) SampleDiners(ctx context.Context, filters diner.FilterSet, n int, seed int64) ([]diner.Candidate, error) {
	records, err := e.provider.ListDiners(ctx, filters)
	if err != nil {
		return nil, err
	}
	return discover.Sample(e.disc.Filter(records, filters), n, seed), nil
}
