package graph

import (
	"fmt"
	"sync"

	"github.com/ttpr0/go-catchment/geo"
	. "github.com/ttpr0/go-catchment/util"
)

// *******************************************
// graph index interface
// *******************************************

// Maps a coordinate to the node considered closest to it.
type IGraphIndex interface {
	GetClosestNode(point geo.Coord) (NodeID, bool)
}

//*******************************************
// graph index
//*******************************************

// KD-tree over node coordinates. Distances are planar in degrees, ties go
// to the node built first.
type BaseGraphIndex struct {
	index KDTree[NodeID]
}

func BuildGraphIndex(g IGraph) IGraphIndex {
	points := NewArray[[]float64](g.NodeCount())
	values := NewArray[NodeID](g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(int32(i))
		points[i] = []float64{node.Loc[0], node.Loc[1]}
		values[i] = node.ID
	}
	return &BaseGraphIndex{
		index: BuildKDTree(2, points, values),
	}
}

func (self *BaseGraphIndex) GetClosestNode(point geo.Coord) (NodeID, bool) {
	return self.index.GetNearest(point[:])
}

//*******************************************
// cached index
//*******************************************

// Caches lookups per distinct coordinate. Safe for concurrent use.
type CachedGraphIndex struct {
	index IGraphIndex
	mu    sync.Mutex
	cache Dict[geo.Coord, NodeID]
}

func NewCachedGraphIndex(index IGraphIndex) *CachedGraphIndex {
	return &CachedGraphIndex{
		index: index,
		cache: NewDict[geo.Coord, NodeID](100),
	}
}

func (self *CachedGraphIndex) GetClosestNode(point geo.Coord) (NodeID, bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.cache.ContainsKey(point) {
		return self.cache[point], true
	}
	node, ok := self.index.GetClosestNode(point)
	if ok {
		self.cache[point] = node
	}
	return node, ok
}

func (self *CachedGraphIndex) CacheSize() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.cache.Length()
}

//*******************************************
// resolve coordinates
//*******************************************

func ResolveNode(index IGraphIndex, point geo.Coord) (NodeID, error) {
	node, ok := index.GetClosestNode(point)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoNodeFound, point)
	}
	return node, nil
}

func ResolveNodes(index IGraphIndex, points Array[geo.Coord]) (Array[NodeID], error) {
	nodes := NewArray[NodeID](points.Length())
	for i, point := range points {
		node, err := ResolveNode(index, point)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}
