package parser

import (
	"github.com/ttpr0/go-catchment/geo"
	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// parser structs
//*******************************************

// Travel direction of a way relative to its node order.
type Direction int8

const (
	BOTH     Direction = 0
	FORWARD  Direction = 1
	BACKWARD Direction = -1
)

type WayAttribs struct {
	Type      RoadType
	Direction Direction
}

type TempNode struct {
	Point geo.Coord
	Count int32
	Found bool
}

// Drivable way as read from the source, reduced to its node refs.
type OSMWay struct {
	Refs List[int64]
	Attr WayAttribs
}

// Piece of a way between two junctions.
type OSMEdge struct {
	NodeA int64
	NodeB int64
	Attr  WayAttribs
	Nodes List[geo.Coord]
}
