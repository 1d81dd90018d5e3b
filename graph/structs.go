package graph

import (
	"github.com/ttpr0/go-catchment/geo"
)

//*******************************************
// graph structs
//*******************************************

// Opaque node identifier, unique within a graph (osm node ids when the
// graph is parsed from osm data).
type NodeID int64

type Node struct {
	ID  NodeID
	Loc geo.Coord
}

// Directed edge between two nodes. Length is the shortest-path weight.
type Edge struct {
	From   NodeID
	To     NodeID
	Length float64
}

type Neighbour struct {
	Node   NodeID
	Length float64
}

//*******************************************
// edgeref struct
//*******************************************

// Reference to an edge by its dense index together with the dense index of
// the node it leads to.
type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}
