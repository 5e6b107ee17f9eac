package discover

import (
	"context"
	"sort"
	"strings"

	"github.com/mokjaru/mokja/diner"
	"github.com/mokjaru/mokja/geo"
	"github.com/mokjaru/mokja/hangul"
)

// MatchTier identifies which search tier produced a match.
type MatchTier int

const (
	// TierExact means the normalized query equals the normalized name.
	TierExact MatchTier = iota
	// TierSubstring means the normalized query occurs in the normalized name.
	TierSubstring
	// TierPhonetic means the jamo similarity cleared the fuzzy threshold.
	TierPhonetic
)

func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSubstring:
		return "substring"
	case TierPhonetic:
		return "phonetic"
	default:
		return "unknown"
	}
}

// Match is one tiered-search hit.
type Match struct {
	Candidate diner.Candidate
	Tier      MatchTier
	// Score is the jamo similarity in [0,1]. Exact and substring matches
	// carry 1.
	Score float64
}

// GeoQuery is the optional location context of a name search. A
// non-positive RadiusKM attaches distances without filtering.
type GeoQuery struct {
	Point    geo.Point
	RadiusKM float64
}

// Search runs the tiered name search over the records. Tiers short-circuit:
// any exact match suppresses the substring tier, and any substring match
// suppresses the phonetic tier.
//
// Exact and substring hits are ordered by distance ascending when g is set,
// otherwise input order. Phonetic hits are ordered by similarity descending
// with ties by distance ascending. Each tier caps its result at k (k <= 0
// means unbounded).
//
// Only the phonetic tier consults ctx: its cost scales with the corpus, so
// a caller deadline can cut it short. The cheap tiers always run to
// completion.
func (e *Engine) Search(ctx context.Context, records []diner.Record, query string, k int, g *GeoQuery) ([]Match, error) {
	normQuery := hangul.Normalize(query)
	if normQuery == "" {
		return nil, nil
	}

	type scanned struct {
		candidate diner.Candidate
		normName  string
	}

	pool := make([]scanned, 0, len(records))
	var exact, substring []Match

	for i := range records {
		c := diner.Candidate{Record: records[i]}
		if g != nil {
			d := geo.DistanceKM(g.Point, geo.Point{Lat: records[i].Lat, Lon: records[i].Lon})
			if g.RadiusKM > 0 && d > g.RadiusKM {
				continue
			}
			c.DistanceKM = d
			c.HasDistance = true
		}

		normName := hangul.Normalize(records[i].Name)
		switch {
		case normName == normQuery:
			exact = append(exact, Match{Candidate: c, Tier: TierExact, Score: 1})
		case strings.Contains(normName, normQuery):
			substring = append(substring, Match{Candidate: c, Tier: TierSubstring, Score: 1})
		default:
			pool = append(pool, scanned{candidate: c, normName: normName})
		}
	}

	if len(exact) > 0 {
		return capMatches(sortByDistance(exact), k), nil
	}
	if len(substring) > 0 {
		return capMatches(sortByDistance(substring), k), nil
	}

	// Phonetic fallback over a bounded pool.
	if len(pool) > e.opts.FuzzyPoolLimit {
		pool = pool[:e.opts.FuzzyPoolLimit]
	}

	var fuzzy []Match
	for i := range pool {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sim := hangul.Similarity(normQuery, pool[i].normName)
		if sim < e.opts.FuzzyThreshold {
			continue
		}
		fuzzy = append(fuzzy, Match{Candidate: pool[i].candidate, Tier: TierPhonetic, Score: sim})
	}

	sort.SliceStable(fuzzy, func(i, j int) bool {
		if fuzzy[i].Score != fuzzy[j].Score {
			return fuzzy[i].Score > fuzzy[j].Score
		}
		return lessByDistance(&fuzzy[i], &fuzzy[j])
	})
	return capMatches(fuzzy, k), nil
}

func sortByDistance(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return lessByDistance(&matches[i], &matches[j])
	})
	return matches
}

func lessByDistance(a, b *Match) bool {
	if a.Candidate.HasDistance && b.Candidate.HasDistance {
		return a.Candidate.DistanceKM < b.Candidate.DistanceKM
	}
	// Without distances the incoming order holds.
	return false
}

func capMatches(matches []Match, k int) []Match {
	if k > 0 && len(matches) > k {
		return matches[:k]
	}
	return matches
}
