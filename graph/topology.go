package graph

import (
	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// adjacency array
//*******************************************

type _AdjEntry struct {
	edge  int32
	other int32
}

// Adjacency in compressed row form. Entries of a node keep the insertion
// order of their edges.
type _AdjacencyArray struct {
	offsets Array[int32]
	entries Array[_AdjEntry]
}

// Forward topology lists the outgoing edges of a node, backward topology
// the incoming ones.
func _BuildTopology(node_count int, edges Array[_DenseEdge], dir Direction) _AdjacencyArray {
	ends := func(edge _DenseEdge) (int32, int32) {
		if dir == FORWARD {
			return edge.node_a, edge.node_b
		}
		return edge.node_b, edge.node_a
	}
	offsets := NewArray[int32](node_count + 1)
	for _, edge := range edges {
		node, _ := ends(edge)
		offsets[node+1] += 1
	}
	for i := 1; i < len(offsets); i++ {
		offsets[i] += offsets[i-1]
	}
	fill := NewArray[int32](node_count)
	entries := NewArray[_AdjEntry](edges.Length())
	for id, edge := range edges {
		node, other := ends(edge)
		pos := offsets[node] + fill[node]
		entries[pos] = _AdjEntry{edge: int32(id), other: other}
		fill[node] += 1
	}
	return _AdjacencyArray{
		offsets: offsets,
		entries: entries,
	}
}

func (self *_AdjacencyArray) GetEntries(node int32) []_AdjEntry {
	return self.entries[self.offsets[node]:self.offsets[node+1]]
}
