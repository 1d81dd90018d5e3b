package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-catchment/geo"
	. "github.com/ttpr0/go-catchment/util"
)

func _TestNodes() Array[Node] {
	return Array[Node]{
		{ID: 10, Loc: geo.Coord{0, 0}},
		{ID: 20, Loc: geo.Coord{1, 0}},
		{ID: 30, Loc: geo.Coord{1, 1}},
	}
}

func TestBuildGraph(t *testing.T) {
	edges := Array[Edge]{
		{From: 10, To: 20, Length: 5},
		{From: 20, To: 30, Length: 2},
		{From: 10, To: 20, Length: 3},
	}
	g, err := BuildGraph(_TestNodes(), edges)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, _TestNodes(), g.Nodes())

	idx, ok := g.GetNodeIndex(20)
	require.True(t, ok)
	assert.Equal(t, NodeID(20), g.GetNode(idx).ID)
	_, ok = g.GetNodeIndex(99)
	assert.False(t, ok)

	// parallel edges are kept in insertion order
	assert.Equal(t, List[Neighbour]{{Node: 20, Length: 5}, {Node: 20, Length: 3}}, g.Neighbours(10))
	assert.Equal(t, List[Neighbour]{{Node: 30, Length: 2}}, g.Neighbours(20))
	assert.Empty(t, g.Neighbours(30))
	assert.Nil(t, g.Neighbours(99))
}

func TestGraphExplorer(t *testing.T) {
	edges := Array[Edge]{
		{From: 10, To: 20, Length: 5},
		{From: 20, To: 30, Length: 2},
	}
	g, err := BuildGraph(_TestNodes(), edges)
	require.NoError(t, err)

	explorer := g.GetGraphExplorer()
	start, _ := g.GetNodeIndex(20)
	refs := NewList[EdgeRef](1)
	explorer.ForAdjacentEdges(start, FORWARD, func(ref EdgeRef) {
		refs.Add(ref)
	})
	require.Len(t, refs, 1)
	assert.Equal(t, NodeID(30), g.GetNode(refs[0].OtherID).ID)
	assert.Equal(t, 2.0, explorer.GetEdgeWeight(refs[0]))

	refs = NewList[EdgeRef](1)
	explorer.ForAdjacentEdges(start, BACKWARD, func(ref EdgeRef) {
		refs.Add(ref)
	})
	require.Len(t, refs, 1)
	assert.Equal(t, NodeID(10), g.GetNode(refs[0].OtherID).ID)
	assert.Equal(t, 5.0, explorer.GetEdgeWeight(refs[0]))
}

func TestBuildGraphRejectsNegativeLength(t *testing.T) {
	edges := Array[Edge]{{From: 10, To: 20, Length: -1}}
	_, err := BuildGraph(_TestNodes(), edges)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBuildGraphRejectsNonFiniteLength(t *testing.T) {
	for _, length := range []float64{math.NaN(), math.Inf(1)} {
		edges := Array[Edge]{{From: 10, To: 20, Length: length}}
		_, err := BuildGraph(_TestNodes(), edges)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestBuildGraphRejectsUnknownNode(t *testing.T) {
	_, err := BuildGraph(_TestNodes(), Array[Edge]{{From: 10, To: 40, Length: 1}})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = BuildGraph(_TestNodes(), Array[Edge]{{From: 40, To: 10, Length: 1}})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBuildGraphRejectsDuplicateNode(t *testing.T) {
	nodes := append(_TestNodes(), Node{ID: 10, Loc: geo.Coord{5, 5}})
	_, err := BuildGraph(nodes, Array[Edge]{})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestZeroLengthEdgeAllowed(t *testing.T) {
	_, err := BuildGraph(_TestNodes(), Array[Edge]{{From: 10, To: 20, Length: 0}})
	assert.NoError(t, err)
}
