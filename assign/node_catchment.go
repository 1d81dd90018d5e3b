package assign

import (
	"fmt"

	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/routing"
	. "github.com/ttpr0/go-catchment/util"
)

// Nearest facility of a single network node.
type NodeCatchment struct {
	Node      graph.NodeID `json:"node"`
	Reachable bool         `json:"reachable"`
	Facility  string       `json:"facility,omitempty"`
	Distance  float64      `json:"distance,omitempty"`
}

// Nearest facility for every node of g in node order, computed by a single
// search from all facilities. Facilities at equal distance go to the one
// listed first. Lengths are summed from the facility side, so near ties
// within float rounding may resolve differently than in Router.Assign.
// Fails with graph.ErrConfiguration like NewRouter.
func NodeCatchments(g graph.IGraph, facilities Array[Facility]) (Array[NodeCatchment], error) {
	if facilities.Length() == 0 {
		return nil, fmt.Errorf("%w: no facilities to route to", graph.ErrConfiguration)
	}
	sources := NewArray[int32](facilities.Length())
	for i, f := range facilities {
		index, ok := g.GetNodeIndex(f.Node)
		if !ok {
			return nil, fmt.Errorf("%w: facility %q references unknown node %d", graph.ErrConfiguration, f.Label, f.Node)
		}
		sources[i] = index
	}

	solver := routing.NewNearestSolver(g)
	solver.CalcNearestSources(sources)

	catchments := NewArray[NodeCatchment](g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		node := int32(i)
		c := NodeCatchment{Node: g.GetNode(node).ID}
		if source, ok := solver.GetSource(node); ok {
			dist, _ := solver.GetDistance(node)
			c.Reachable = true
			c.Facility = facilities[source].Label
			c.Distance = dist
		}
		catchments[i] = c
	}
	return catchments, nil
}
