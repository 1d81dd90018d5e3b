package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTreeNearest(t *testing.T) {
	points := Array[[]float64]{{0, 0}, {1, 1}, {2, 2}, {5, 5}, {-3, 4}}
	values := Array[int32]{10, 11, 12, 13, 14}
	tree := BuildKDTree(2, points, values)

	v, ok := tree.GetNearest([]float64{1.9, 2.2})
	require.True(t, ok)
	assert.Equal(t, int32(12), v)

	v, ok = tree.GetNearest([]float64{-2, 3})
	require.True(t, ok)
	assert.Equal(t, int32(14), v)

	_, ok = tree.GetClosest([]float64{100, 100}, 1)
	assert.False(t, ok)
}

func TestKDTreeTieKeepsFirstInserted(t *testing.T) {
	points := Array[[]float64]{{1, 0}, {-1, 0}, {0, 1}}
	values := Array[string]{"a", "b", "c"}
	tree := BuildKDTree(2, points, values)

	v, ok := tree.GetNearest([]float64{0, 0})
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestKDTreeEmpty(t *testing.T) {
	tree := BuildKDTree(2, Array[[]float64]{}, Array[int]{})
	_, ok := tree.GetNearest([]float64{0, 0})
	assert.False(t, ok)
}

func TestKDTreeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := NewArray[[]float64](500)
	values := NewArray[int](500)
	for i := range points {
		points[i] = []float64{rng.Float64() * 10, rng.Float64() * 10}
		values[i] = i
	}
	tree := BuildKDTree(2, points, values)

	for q := 0; q < 100; q++ {
		query := []float64{rng.Float64() * 10, rng.Float64() * 10}
		best := -1
		best_dist := 0.0
		for i, p := range points {
			dx, dy := p[0]-query[0], p[1]-query[1]
			d := dx*dx + dy*dy
			if best == -1 || d < best_dist {
				best = i
				best_dist = d
			}
		}
		v, ok := tree.GetNearest(query)
		require.True(t, ok)
		assert.Equal(t, best, v)
	}
}
