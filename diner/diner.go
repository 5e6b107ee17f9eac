// Package diner defines the diner corpus records consumed by the discovery
// and ranking engines, and the provider contract that supplies them.
package diner

import (
	"context"
	"strconv"
	"strings"
)

// CategoryLevel identifies one level of the four-level category hierarchy.
type CategoryLevel int

const (
	CategoryLarge CategoryLevel = iota
	CategoryMiddle
	CategorySmall
	CategoryDetail
)

func (l CategoryLevel) String() string {
	switch l {
	case CategoryLarge:
		return "large"
	case CategoryMiddle:
		return "middle"
	case CategorySmall:
		return "small"
	case CategoryDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Record is a read-only snapshot of one diner for the duration of a single
// discovery/ranking call. Instances are supplied by a Provider; the engines
// never mutate them.
type Record struct {
	Idx            int64
	Name           string
	CategoryLarge  string
	CategoryMiddle string
	CategorySmall  string
	CategoryDetail string
	Lat            float64
	Lon            float64
	// ReviewCount is stored as free text in the source system
	// ("1,234", "999+"). Use ReviewCountValue for sorting.
	ReviewCount     string
	ReviewAvg       float64
	BlogReviewCount float64
	BayesianScore   float64
	HiddenScore     float64
}

// Category returns the record's value at the given level.
func (r *Record) Category(level CategoryLevel) string {
	switch level {
	case CategoryLarge:
		return r.CategoryLarge
	case CategoryMiddle:
		return r.CategoryMiddle
	case CategorySmall:
		return r.CategorySmall
	case CategoryDetail:
		return r.CategoryDetail
	default:
		return ""
	}
}

// ReviewCountValue parses the free-text review count into an int64.
// Thousands separators and a trailing "+" are tolerated; anything else
// falls back to 0 rather than failing the ranking call.
func (r *Record) ReviewCountValue() int64 {
	return ParseReviewCount(r.ReviewCount)
}

// ParseReviewCount coerces a source-system review count string to int64,
// returning 0 when the text does not parse.
func ParseReviewCount(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Candidate is one diner surviving the discovery filters, carrying the
// distance computed during geo filtering so later distance sorts do not
// recompute it.
type Candidate struct {
	Record Record
	// DistanceKM is the great-circle distance to the query point.
	// Only meaningful when HasDistance is true (a geo filter or geo
	// query point was supplied).
	DistanceKM  float64
	HasDistance bool
}

// Provider supplies diner snapshots from the excluded persistence layer.
// Implementations are expected to apply the given filters server-side with
// semantics matching FilterSet.Matches, so the core never scans an
// unfiltered corpus. Passing a zero FilterSet returns the full corpus.
type Provider interface {
	ListDiners(ctx context.Context, filters FilterSet) ([]Record, error)
}
