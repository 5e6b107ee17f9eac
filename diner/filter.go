package diner

import "github.com/mokjaru/mokja/geo"

// Predicate is a typed filter condition over diner records. The concrete
// types form a closed set so that a storage adapter can compile each one to
// its native query language instead of concatenating query strings; the
// in-memory discovery engine evaluates them directly via Matches.
type Predicate interface {
	// Matches reports whether the record satisfies the predicate.
	Matches(r *Record) bool
}

// CategoryIn matches records whose category at Level equals any of Values
// (OR within the level). An empty Values list matches nothing and should not
// be constructed; FilterSet omits empty levels instead.
type CategoryIn struct {
	Level  CategoryLevel
	Values []string
}

func (p CategoryIn) Matches(r *Record) bool {
	got := r.Category(p.Level)
	for _, v := range p.Values {
		if got == v {
			return true
		}
	}
	return false
}

// WithinRadius matches records within Circle of the query point.
type WithinRadius struct {
	Circle geo.Circle
}

func (p WithinRadius) Matches(r *Record) bool {
	return p.Circle.Contains(geo.Point{Lat: r.Lat, Lon: r.Lon})
}

// RatingAtLeast matches records with ReviewAvg >= Min.
type RatingAtLeast struct {
	Min float64
}

func (p RatingAtLeast) Matches(r *Record) bool {
	return r.ReviewAvg >= p.Min
}

// ReviewCountAtLeast matches records with at least Min parsed reviews.
// Free-text counts that fail to parse read as 0 and only pass Min <= 0.
type ReviewCountAtLeast struct {
	Min int64
}

func (p ReviewCountAtLeast) Matches(r *Record) bool {
	return r.ReviewCountValue() >= p.Min
}

// FilterSet is the conjunction of per-field filters for one discovery call.
// Category values OR within a level and AND across levels and the other
// predicates.
type FilterSet struct {
	CategoryLarge  []string
	CategoryMiddle []string
	CategorySmall  []string
	CategoryDetail []string

	// Geo is the optional radius filter.
	Geo *geo.Circle

	// MinRating excludes records rated below it when set.
	MinRating *float64

	// MinReviewCount excludes records with fewer parsed reviews when set.
	MinReviewCount *int64
}

// IsZero reports whether no filter is set.
func (f FilterSet) IsZero() bool {
	return len(f.CategoryLarge) == 0 && len(f.CategoryMiddle) == 0 &&
		len(f.CategorySmall) == 0 && len(f.CategoryDetail) == 0 &&
		f.Geo == nil && f.MinRating == nil && f.MinReviewCount == nil
}

// Predicates expands the set into its typed predicate list.
func (f FilterSet) Predicates() []Predicate {
	var preds []Predicate
	for _, c := range []struct {
		level  CategoryLevel
		values []string
	}{
		{CategoryLarge, f.CategoryLarge},
		{CategoryMiddle, f.CategoryMiddle},
		{CategorySmall, f.CategorySmall},
		{CategoryDetail, f.CategoryDetail},
	} {
		if len(c.values) > 0 {
			preds = append(preds, CategoryIn{Level: c.level, Values: c.values})
		}
	}
	if f.Geo != nil {
		preds = append(preds, WithinRadius{Circle: *f.Geo})
	}
	if f.MinRating != nil {
		preds = append(preds, RatingAtLeast{Min: *f.MinRating})
	}
	if f.MinReviewCount != nil {
		preds = append(preds, ReviewCountAtLeast{Min: *f.MinReviewCount})
	}
	return preds
}

// Matches reports whether the record passes every predicate in the set.
func (f FilterSet) Matches(r *Record) bool {
	for _, p := range f.Predicates() {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}
