package graph

import (
	"sync"

	"github.com/ttpr0/go-catchment/geo"
	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// graph interfaces
//******************************************

// Read-only road network. Nodes are addressed by a dense index in
// [0, NodeCount()) internally and by their NodeID externally.
type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) Node
	GetEdge(edge int32) Edge
	GetNodeIndex(id NodeID) (int32, bool)
	GetNodeGeom(node int32) geo.Coord
	GetClosestNode(point geo.Coord) (NodeID, bool)
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the outgoing (FORWARD) or incoming (BACKWARD) edges
	// of a node calling the callback for every edge.
	ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) float64
}

//*******************************************
// base-graph
//******************************************

type _DenseEdge struct {
	node_a int32
	node_b int32
}

var _ IGraph = &Graph{}

type Graph struct {
	nodes        Array[Node]
	edges        Array[Edge]
	id_mapping   Dict[NodeID, int32]
	fwd_topology _AdjacencyArray
	bwd_topology _AdjacencyArray

	index_once sync.Once
	index      IGraphIndex
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph: self,
	}
}
func (self *Graph) NodeCount() int {
	return self.nodes.Length()
}
func (self *Graph) EdgeCount() int {
	return self.edges.Length()
}
func (self *Graph) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *Graph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *Graph) GetNodeIndex(id NodeID) (int32, bool) {
	node, ok := self.id_mapping[id]
	return node, ok
}
func (self *Graph) GetNodeGeom(node int32) geo.Coord {
	return self.nodes[node].Loc
}
func (self *Graph) GetClosestNode(point geo.Coord) (NodeID, bool) {
	self.index_once.Do(func() {
		self.index = BuildGraphIndex(self)
	})
	return self.index.GetClosestNode(point)
}

// All nodes in build order.
func (self *Graph) Nodes() Array[Node] {
	return self.nodes
}

// Outgoing (node, length) pairs of a node, one per edge including parallel
// edges. Returns nil for unknown nodes.
func (self *Graph) Neighbours(id NodeID) List[Neighbour] {
	node, ok := self.id_mapping[id]
	if !ok {
		return nil
	}
	entries := self.fwd_topology.GetEntries(node)
	neighbours := NewList[Neighbour](len(entries))
	for _, entry := range entries {
		neighbours.Add(Neighbour{
			Node:   self.nodes[entry.other].ID,
			Length: self.edges[entry.edge].Length,
		})
	}
	return neighbours
}

//*******************************************
// base-graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph *Graph
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef)) {
	topology := &self.graph.fwd_topology
	if dir == BACKWARD {
		topology = &self.graph.bwd_topology
	}
	for _, entry := range topology.GetEntries(node) {
		callback(EdgeRef{
			EdgeID:  entry.edge,
			OtherID: entry.other,
		})
	}
}
func (self *BaseGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	return self.graph.edges[edge.EdgeID].Length
}
