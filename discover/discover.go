// Package discover produces the candidate diner set for a ranking request:
// category/radius/rating filtering plus tiered Korean name search.
package discover

import (
	"math/rand"
	"sort"

	"github.com/mokjaru/mokja/diner"
	"github.com/mokjaru/mokja/geo"
)

// Options contains configuration options for the discovery engine.
type Options struct {
	// FuzzyThreshold is the minimum jamo similarity for a phonetic match.
	FuzzyThreshold float64

	// FuzzyPoolLimit bounds how many candidates the phonetic tier scans.
	// Jamo similarity is O(name length) per candidate, so the scan is
	// capped instead of walking an unbounded corpus.
	FuzzyPoolLimit int
}

// DefaultOptions contains the default configuration options for the
// discovery engine.
var DefaultOptions = Options{
	FuzzyThreshold: 0.7,
	FuzzyPoolLimit: 5000,
}

// Engine filters and searches diner snapshots. The zero-cost construction
// makes it safe to share across requests.
type Engine struct {
	opts Options
}

// New creates a new discovery engine.
func New(optFns ...func(o *Options)) *Engine {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{opts: opts}
}

// Filter applies the typed predicate set and returns the surviving
// candidates. When a geo filter is present the haversine distance is
// computed once here and attached for later distance sorting.
//
// Filtering to zero rows is not an error: the empty candidate list is a
// legitimate answer.
func (e *Engine) Filter(records []diner.Record, filters diner.FilterSet) []diner.Candidate {
	nonGeo := filters
	nonGeo.Geo = nil

	candidates := make([]diner.Candidate, 0, len(records))
	for i := range records {
		r := records[i]
		if !nonGeo.Matches(&r) {
			continue
		}
		c := diner.Candidate{Record: r}
		if filters.Geo != nil {
			d := geo.DistanceKM(filters.Geo.Center, geo.Point{Lat: r.Lat, Lon: r.Lon})
			if d > filters.Geo.RadiusKM {
				continue
			}
			c.DistanceKM = d
			c.HasDistance = true
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// CategoryCount is one category's diner count.
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryCounts aggregates diner counts per category value at the given
// level, sorted by count descending (ties by name ascending). For levels
// below CategoryLarge, parentLarge optionally restricts the aggregation to
// one large category.
func CategoryCounts(records []diner.Record, level diner.CategoryLevel, parentLarge string) []CategoryCount {
	counts := make(map[string]int)
	for i := range records {
		if parentLarge != "" && records[i].CategoryLarge != parentLarge {
			continue
		}
		name := records[i].Category(level)
		if name == "" {
			continue
		}
		counts[name]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Sample returns n candidates drawn without replacement, deterministic for
// a given seed. When n is zero or exceeds the candidate count the input is
// returned unchanged.
func Sample(candidates []diner.Candidate, n int, seed int64) []diner.Candidate {
	if n <= 0 || n >= len(candidates) {
		return candidates
	}
	picked := make([]diner.Candidate, len(candidates))
	copy(picked, candidates)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
