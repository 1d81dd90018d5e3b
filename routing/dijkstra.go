package routing

import (
	"math"

	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
)

type flag_spt struct {
	path_length float64
	prev_edge   int32
	prev_node   int32
	visited     bool
	target      bool
}

var _null_flag = flag_spt{
	path_length: math.Inf(1),
	prev_edge:   -1,
	prev_node:   -1,
}

type PQItem struct {
	node int32
	dist float64
}

// Dijkstra search on non-negative edge lengths with early exit once all
// targets are settled. Among equal-length alternatives the first one relaxed
// is kept, so results only depend on the graph's adjacency order.
type ShortestPathTree struct {
	g        graph.IGraph
	explorer graph.IGraphExplorer
	heap     PriorityQueue[PQItem, float64]
	flags    Flags[flag_spt]
}

func NewShortestPathTree(g graph.IGraph) *ShortestPathTree {
	return &ShortestPathTree{
		g:        g,
		explorer: g.GetGraphExplorer(),
		heap:     NewPriorityQueue[PQItem, float64](100),
		flags:    NewFlags(int32(g.NodeCount()), _null_flag),
	}
}

func (self *ShortestPathTree) CalcShortestPaths(start int32, targets Array[int32]) {
	self.flags.Reset()
	self.heap.Clear()

	remaining := 0
	for _, t := range targets {
		flag := self.flags.Get(t)
		if !flag.target {
			flag.target = true
			remaining += 1
		}
	}

	start_flag := self.flags.Get(start)
	start_flag.path_length = 0
	self.heap.Enqueue(PQItem{start, 0}, 0)

	for remaining > 0 {
		curr_item, ok := self.heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.node
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr_flag.target {
			remaining -= 1
		}
		curr_dist := curr_flag.path_length
		self.explorer.ForAdjacentEdges(curr_id, graph.FORWARD, func(ref graph.EdgeRef) {
			other_flag := self.flags.Get(ref.OtherID)
			if other_flag.visited {
				return
			}
			new_length := curr_dist + self.explorer.GetEdgeWeight(ref)
			if new_length < other_flag.path_length {
				other_flag.path_length = new_length
				other_flag.prev_edge = ref.EdgeID
				other_flag.prev_node = curr_id
				self.heap.Enqueue(PQItem{ref.OtherID, new_length}, new_length)
			}
		})
	}
}

func (self *ShortestPathTree) GetDistance(node int32) (float64, bool) {
	flag := self.flags.Get(node)
	if !flag.visited {
		return math.Inf(1), false
	}
	return flag.path_length, true
}

func (self *ShortestPathTree) GetShortestPath(node int32) (Path, bool) {
	flag := self.flags.Get(node)
	if !flag.visited {
		return Path{}, false
	}
	length := flag.path_length

	nodes := NewList[int32](10)
	edges := NewList[int32](10)
	curr := node
	for {
		nodes.Add(curr)
		f := self.flags.Get(curr)
		if f.prev_node == -1 {
			break
		}
		edges.Add(f.prev_edge)
		curr = f.prev_node
	}
	_Reverse(nodes)
	_Reverse(edges)
	return Path{
		Nodes:  nodes,
		Edges:  edges,
		Length: length,
	}, true
}

func _Reverse[T any](list List[T]) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}
