package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "parallel", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 14},
		{name: "negative", a: []float32{1, -1}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Dot(tt.a, tt.b), 1e-6)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	assert.InDelta(t, float32(0), SquaredL2([]float32{1, 2}, []float32{1, 2}), 1e-6)
	assert.InDelta(t, float32(25), SquaredL2([]float32{0, 0}, []float32{3, 4}), 1e-6)
}

func TestNormalizeL2(t *testing.T) {
	t.Run("Copy", func(t *testing.T) {
		src := []float32{3, 4}
		norm, ok := NormalizeL2Copy(src)
		require.True(t, ok)
		assert.InDelta(t, 0.6, norm[0], 1e-6)
		assert.InDelta(t, 0.8, norm[1], 1e-6)
		// Source untouched.
		assert.Equal(t, []float32{3, 4}, src)
	})

	t.Run("UnitNorm", func(t *testing.T) {
		v := []float32{0.3, -1.7, 2.2, 0.01}
		require.True(t, NormalizeL2InPlace(v))
		assert.InDelta(t, 1.0, float64(Norm(v)), 1e-5)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		_, ok := NormalizeL2Copy([]float32{0, 0, 0})
		assert.False(t, ok)
		assert.False(t, NormalizeL2InPlace(nil))
	})
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero([]float32{0, 0}))
	assert.True(t, IsZero(nil))
	assert.False(t, IsZero([]float32{0, math.SmallestNonzeroFloat32}))
}
