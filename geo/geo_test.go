package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordArrayLength(t *testing.T) {
	// one degree of latitude is roughly 111 km
	d := CoordArray{{-50.41, -22.66}, {-50.41, -21.66}}.Length()
	assert.InDelta(t, 111319, d, 200)

	line := CoordArray{{0, 0}, {0, 1}, {0, 2}}
	assert.InDelta(t, 2*CoordArray{{0, 0}, {0, 1}}.Length(), line.Length(), 1e-6)
	assert.Equal(t, 0.0, CoordArray{{3, 3}}.Length())
	assert.Equal(t, 0.0, CoordArray{{1, 1}, {1, 1}}.Length())
}

func TestBounds(t *testing.T) {
	b := BoundsOf(CoordArray{{-50.5, -22.7}, {-50.3, -22.6}}, CoordArray{{-50.4, -22.8}})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Coord{-50.5, -22.8}, b.Min())
	assert.Equal(t, Coord{-50.3, -22.6}, b.Max())
	assert.True(t, b.Contains(Coord{-50.4, -22.7}))
	assert.False(t, b.Contains(Coord{-50.6, -22.7}))

	padded := b.Pad(0.2)
	assert.True(t, padded.Contains(Coord{-50.6, -22.7}))
}

func TestEmptyBounds(t *testing.T) {
	b := BoundsOf()
	assert.True(t, b.IsEmpty())
	assert.False(t, b.Contains(Coord{0, 0}))
	assert.True(t, b.Pad(1).IsEmpty())
}
