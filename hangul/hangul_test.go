package hangul

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spacing", input: "김밥 천국", want: "김밥천국"},
		{name: "punctuation", input: "본죽&비빔밥cafe 강남점!", want: "본죽비빔밥cafe강남점"},
		{name: "ascii case", input: "BBQ치킨 2호점", want: "bbq치킨2호점"},
		{name: "standalone jamo stripped", input: "ㅋㅋ맛집", want: "맛집"},
		{name: "empty", input: "  ··· ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "open syllable", input: "가", want: "ㄱㅏ"},
		{name: "final consonant", input: "김", want: "ㄱㅣㅁ"},
		{name: "word", input: "김밥", want: "ㄱㅣㅁㅂㅏㅂ"},
		{name: "non hangul passthrough", input: "abc1", want: "abc1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decompose(tt.input))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("김밥천국", "김밥천국"))
	})

	t.Run("SingleJamoTypo", func(t *testing.T) {
		// 국 -> 극 swaps one vowel out of twelve jamo.
		sim := Similarity("김밥천국", "김밥천극")
		assert.Greater(t, sim, 0.9)
		assert.Less(t, sim, 1.0)
	})

	t.Run("Unrelated", func(t *testing.T) {
		assert.Less(t, Similarity("김밥천국", "스시오마카세"), 0.5)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("", ""))
		assert.Equal(t, 0.0, Similarity("김밥", ""))
	})
}
