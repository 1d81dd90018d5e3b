package routing

import (
	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
)

// One-to-many shortest path search.
//
// not thread safe, use only one instance per thread
type IShortestPathTree interface {
	// Computes shortest paths from start until every target is settled or
	// the search space is exhausted. Targets are dense node indices.
	CalcShortestPaths(start int32, targets Array[int32])

	// Distance to a settled node of the last search, false if it was not reached.
	GetDistance(node int32) (float64, bool)

	// Path to a settled node of the last search, false if it was not reached.
	GetShortestPath(node int32) (Path, bool)
}

//*******************************************
// path
//*******************************************

// Path over dense node indices. Edges[i] connects Nodes[i] and Nodes[i+1].
type Path struct {
	Nodes  List[int32]
	Edges  List[int32]
	Length float64
}

// External node ids of the path.
func (self Path) NodeIDs(g graph.IGraph) List[graph.NodeID] {
	ids := NewList[graph.NodeID](self.Nodes.Length())
	for _, node := range self.Nodes {
		ids.Add(g.GetNode(node).ID)
	}
	return ids
}
