package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokjaru/mokja/diner"
	"github.com/mokjaru/mokja/geo"
)

var (
	cityHall = geo.Point{Lat: 37.5665, Lon: 126.9780}

	corpus = []diner.Record{
		{Idx: 1, Name: "김밥천국", CategoryLarge: "한식", CategoryMiddle: "분식", Lat: 37.5665, Lon: 126.9780, ReviewAvg: 4.1},
		{Idx: 2, Name: "스시젠", CategoryLarge: "일식", CategoryMiddle: "초밥", Lat: 37.5700, Lon: 126.9830, ReviewAvg: 4.7},
		{Idx: 3, Name: "평양면옥", CategoryLarge: "한식", CategoryMiddle: "냉면", Lat: 35.1796, Lon: 129.0756, ReviewAvg: 4.4},
	}
)

func TestFilter(t *testing.T) {
	e := New()

	t.Run("NoFilters", func(t *testing.T) {
		got := e.Filter(corpus, diner.FilterSet{})
		assert.Len(t, got, 3)
		assert.False(t, got[0].HasDistance)
	})

	t.Run("Category", func(t *testing.T) {
		got := e.Filter(corpus, diner.FilterSet{CategoryLarge: []string{"한식"}})
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].Record.Idx)
		assert.Equal(t, int64(3), got[1].Record.Idx)
	})

	t.Run("GeoAttachesDistance", func(t *testing.T) {
		got := e.Filter(corpus, diner.FilterSet{
			Geo: &geo.Circle{Center: cityHall, RadiusKM: 5},
		})
		require.Len(t, got, 2)
		assert.True(t, got[0].HasDistance)
		assert.Zero(t, got[0].DistanceKM)
		assert.Greater(t, got[1].DistanceKM, 0.0)
	})

	t.Run("ZeroRadiusKeepsExactPoint", func(t *testing.T) {
		got := e.Filter(corpus, diner.FilterSet{
			Geo: &geo.Circle{Center: cityHall, RadiusKM: 0},
		})
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].Record.Idx)
	})

	t.Run("RadiusBoundaryExcludesJustOutside", func(t *testing.T) {
		d := geo.DistanceKM(cityHall, geo.Point{Lat: corpus[1].Lat, Lon: corpus[1].Lon})
		inside := e.Filter(corpus[1:2], diner.FilterSet{
			Geo: &geo.Circle{Center: cityHall, RadiusKM: d + 0.001},
		})
		outside := e.Filter(corpus[1:2], diner.FilterSet{
			Geo: &geo.Circle{Center: cityHall, RadiusKM: d - 0.001},
		})
		assert.Len(t, inside, 1)
		assert.Empty(t, outside)
	})

	t.Run("MinRating", func(t *testing.T) {
		min := 4.5
		got := e.Filter(corpus, diner.FilterSet{MinRating: &min})
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].Record.Idx)
	})

	t.Run("EmptyCandidateSetIsNotAnError", func(t *testing.T) {
		got := e.Filter(corpus, diner.FilterSet{CategoryLarge: []string{"양식"}})
		assert.Empty(t, got)
	})
}

func TestCategoryCounts(t *testing.T) {
	t.Run("Large", func(t *testing.T) {
		got := CategoryCounts(corpus, diner.CategoryLarge, "")
		assert.Equal(t, []CategoryCount{
			{Name: "한식", Count: 2},
			{Name: "일식", Count: 1},
		}, got)
	})

	t.Run("MiddleScopedToLarge", func(t *testing.T) {
		got := CategoryCounts(corpus, diner.CategoryMiddle, "한식")
		assert.Equal(t, []CategoryCount{
			{Name: "냉면", Count: 1},
			{Name: "분식", Count: 1},
		}, got)
	})
}

func TestSample(t *testing.T) {
	candidates := []diner.Candidate{
		{Record: diner.Record{Idx: 1}},
		{Record: diner.Record{Idx: 2}},
		{Record: diner.Record{Idx: 3}},
		{Record: diner.Record{Idx: 4}},
	}

	t.Run("Deterministic", func(t *testing.T) {
		a := Sample(candidates, 2, 42)
		b := Sample(candidates, 2, 42)
		assert.Equal(t, a, b)
		assert.Len(t, a, 2)
	})

	t.Run("NOverCorpusReturnsAll", func(t *testing.T) {
		assert.Len(t, Sample(candidates, 10, 1), 4)
	})

	t.Run("ZeroDisablesSampling", func(t *testing.T) {
		assert.Len(t, Sample(candidates, 0, 1), 4)
	})
}
