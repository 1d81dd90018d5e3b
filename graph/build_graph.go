package graph

import (
	"fmt"
	"math"

	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// build graphs
//*******************************************

// Builds a read-only graph from a node and an edge set.
//
// Fails with ErrConfiguration if a node id is duplicated, an edge references
// an unknown node or an edge length is negative or not finite.
func BuildGraph(nodes Array[Node], edges Array[Edge]) (*Graph, error) {
	id_mapping := NewDict[NodeID, int32](nodes.Length())
	for i, node := range nodes {
		if id_mapping.ContainsKey(node.ID) {
			return nil, fmt.Errorf("%w: duplicate node %d", ErrConfiguration, node.ID)
		}
		id_mapping[node.ID] = int32(i)
	}

	dense_edges := NewArray[_DenseEdge](edges.Length())
	for i, edge := range edges {
		if math.IsNaN(edge.Length) || math.IsInf(edge.Length, 0) || edge.Length < 0 {
			return nil, fmt.Errorf("%w: edge %d->%d has invalid length %v", ErrConfiguration, edge.From, edge.To, edge.Length)
		}
		node_a, ok := id_mapping[edge.From]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d->%d references unknown node %d", ErrConfiguration, edge.From, edge.To, edge.From)
		}
		node_b, ok := id_mapping[edge.To]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d->%d references unknown node %d", ErrConfiguration, edge.From, edge.To, edge.To)
		}
		dense_edges[i] = _DenseEdge{node_a, node_b}
	}

	return &Graph{
		nodes:        nodes,
		edges:        edges,
		id_mapping:   id_mapping,
		fwd_topology: _BuildTopology(nodes.Length(), dense_edges, FORWARD),
		bwd_topology: _BuildTopology(nodes.Length(), dense_edges, BACKWARD),
	}, nil
}
