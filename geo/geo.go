package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

//*******************************************
// coordinates
//*******************************************

// Coord is a (longitude, latitude) pair in EPSG:4326.
type Coord [2]float64

func (self Coord) Lon() float64 {
	return self[0]
}
func (self Coord) Lat() float64 {
	return self[1]
}
func (self Coord) Point() orb.Point {
	return orb.Point(self)
}

func FromPoint(p orb.Point) Coord {
	return Coord(p)
}

type CoordArray []Coord

func (self CoordArray) LineString() orb.LineString {
	line := make(orb.LineString, len(self))
	for i, c := range self {
		line[i] = c.Point()
	}
	return line
}

// Haversine length in metres.
func (self CoordArray) Length() float64 {
	if len(self) < 2 {
		return 0
	}
	return orbgeo.LengthHaversine(self.LineString())
}

//*******************************************
// bounds
//*******************************************

// The zero value is an empty box containing nothing.
type Bounds struct {
	bound orb.Bound
	valid bool
}

// Smallest box covering all coords.
func BoundsOf(coords ...CoordArray) Bounds {
	mp := orb.MultiPoint{}
	for _, arr := range coords {
		for _, c := range arr {
			mp = append(mp, c.Point())
		}
	}
	if len(mp) == 0 {
		return Bounds{}
	}
	return Bounds{bound: mp.Bound(), valid: true}
}

func (self Bounds) IsEmpty() bool {
	return !self.valid
}

// Grows the box by margin degrees on every side.
func (self Bounds) Pad(margin float64) Bounds {
	if !self.valid {
		return self
	}
	return Bounds{bound: self.bound.Pad(margin), valid: true}
}

func (self Bounds) Contains(c Coord) bool {
	if !self.valid {
		return false
	}
	return self.bound.Contains(c.Point())
}

func (self Bounds) Min() Coord {
	return FromPoint(self.bound.Min)
}
func (self Bounds) Max() Coord {
	return FromPoint(self.bound.Max)
}
func (self Bounds) Center() Coord {
	return FromPoint(self.bound.Center())
}
