package routing

import (
	"math"

	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
)

type flag_nearest struct {
	dist   float64
	source int32
}

var _null_nearest = flag_nearest{dist: math.Inf(1), source: -1}

// Finds the nearest of a set of sources for every node of the graph at once.
//
// Distances are measured from the node to the source, the search therefore
// follows edges against their direction. Among sources at equal distance the
// one given first wins.
//
// not thread safe, use only one instance per thread
type NearestSolver struct {
	g          graph.IGraph
	explorer   graph.IGraphExplorer
	heap       PriorityQueue[PQItem, float64]
	node_flags Flags[flag_nearest]
}

func NewNearestSolver(g graph.IGraph) *NearestSolver {
	return &NearestSolver{
		g:          g,
		explorer:   g.GetGraphExplorer(),
		heap:       NewPriorityQueue[PQItem, float64](100),
		node_flags: NewFlags(int32(g.NodeCount()), _null_nearest),
	}
}

func (self *NearestSolver) CalcNearestSources(sources Array[int32]) {
	self.node_flags.Reset()
	self.heap.Clear()

	for source_id, start := range sources {
		start_flag := self.node_flags.Get(start)
		if start_flag.source != -1 {
			continue
		}
		start_flag.dist = 0
		start_flag.source = int32(source_id)
		self.heap.Enqueue(PQItem{start, 0}, 0)
	}

	for {
		curr_item, ok := self.heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.node
		curr_flag := *self.node_flags.Get(curr_id)
		if curr_flag.dist < curr_item.dist {
			continue
		}
		self.explorer.ForAdjacentEdges(curr_id, graph.BACKWARD, func(ref graph.EdgeRef) {
			other_flag := self.node_flags.Get(ref.OtherID)
			new_length := curr_flag.dist + self.explorer.GetEdgeWeight(ref)
			if new_length < other_flag.dist || (new_length == other_flag.dist && curr_flag.source < other_flag.source) {
				other_flag.dist = new_length
				other_flag.source = curr_flag.source
				self.heap.Enqueue(PQItem{ref.OtherID, new_length}, new_length)
			}
		})
	}
}

// Position of the nearest source in the list passed to CalcNearestSources.
func (self *NearestSolver) GetSource(node int32) (int32, bool) {
	flag := self.node_flags.Get(node)
	return flag.source, flag.source != -1
}

func (self *NearestSolver) GetDistance(node int32) (float64, bool) {
	flag := self.node_flags.Get(node)
	return flag.dist, flag.source != -1
}
