package assign

import (
	"fmt"
	"math"

	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/routing"
	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// assignment structs
//*******************************************

type Origin struct {
	ID   string
	Node graph.NodeID
}

type Facility struct {
	Label string
	Node  graph.NodeID
}

// Path from an origin's node to its facility's node.
type Route struct {
	Nodes  List[graph.NodeID] `json:"nodes"`
	Length float64            `json:"length"`
}

// Outcome for a single origin. Route and Facility are only set if Reachable.
type Assignment struct {
	OriginID  string `json:"origin"`
	Reachable bool   `json:"reachable"`
	Route     Route  `json:"route"`
	Facility  string `json:"facility,omitempty"`
}

//*******************************************
// router
//*******************************************

// Assigns origins to their nearest facility.
//
// not thread safe, use only one instance per thread
type Router struct {
	g          graph.IGraph
	facilities Array[Facility]
	targets    Array[int32]
	spt        routing.IShortestPathTree
}

// Fails with graph.ErrConfiguration if facilities is empty or references a
// node missing from g.
func NewRouter(g graph.IGraph, facilities Array[Facility]) (*Router, error) {
	if facilities.Length() == 0 {
		return nil, fmt.Errorf("%w: no facilities to route to", graph.ErrConfiguration)
	}
	targets := NewArray[int32](facilities.Length())
	for i, f := range facilities {
		node, ok := g.GetNodeIndex(f.Node)
		if !ok {
			return nil, fmt.Errorf("%w: facility %q references unknown node %d", graph.ErrConfiguration, f.Label, f.Node)
		}
		targets[i] = node
	}
	return &Router{
		g:          g,
		facilities: facilities,
		targets:    targets,
		spt:        routing.NewShortestPathTree(g),
	}, nil
}

// Computes the route from origin to the nearest facility.
//
// A facility replaces the current best only if it is strictly closer, so
// among equidistant facilities the one listed first wins. Facilities that
// cannot be reached are skipped; if none can, the result is not Reachable.
func (self *Router) Assign(origin Origin) (Assignment, error) {
	start, ok := self.g.GetNodeIndex(origin.Node)
	if !ok {
		return Assignment{}, fmt.Errorf("%w: origin %q references unknown node %d", graph.ErrConfiguration, origin.ID, origin.Node)
	}
	self.spt.CalcShortestPaths(start, self.targets)

	best := -1
	best_dist := math.Inf(1)
	for i, target := range self.targets {
		dist, ok := self.spt.GetDistance(target)
		if !ok {
			continue
		}
		if dist < best_dist {
			best = i
			best_dist = dist
		}
	}
	if best == -1 {
		return Assignment{OriginID: origin.ID}, nil
	}

	path, _ := self.spt.GetShortestPath(self.targets[best])
	return Assignment{
		OriginID:  origin.ID,
		Reachable: true,
		Route: Route{
			Nodes:  path.NodeIDs(self.g),
			Length: path.Length,
		},
		Facility: self.facilities[best].Label,
	}, nil
}

// Nearest facility for a single origin node.
func Assign(g graph.IGraph, origin graph.NodeID, facilities Array[Facility]) (Assignment, error) {
	router, err := NewRouter(g, facilities)
	if err != nil {
		return Assignment{}, err
	}
	return router.Assign(Origin{Node: origin})
}
