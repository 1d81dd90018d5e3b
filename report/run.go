package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/sites"
	"github.com/ttpr0/go-catchment/usage"
	. "github.com/ttpr0/go-catchment/util"
)

const (
	UNKNOWN_FACILITY     = "Unknown facility"
	UNKNOWN_MUNICIPALITY = "Unknown municipality"
)

// Display metadata of a facility, keyed by its label.
type FacilityInfo struct {
	Name         string `yaml:"name" toml:"name" json:"name"`
	Municipality string `yaml:"municipality" toml:"municipality" json:"municipality"`
}

type Options struct {
	HTML    bool
	Archive bool
	// map view, defaults to the centre of all sites
	Center Optional[geo.Coord]
	Zoom   int
}

// Result of one assignment run with everything needed to report on it.
type Run struct {
	ID          uuid.UUID
	Graph       graph.IGraph
	Origins     Array[sites.OriginSite]
	Facilities  Array[sites.FacilitySite]
	Assignments Array[assign.Assignment]
	Usage       usage.EdgeUsageMap
	Tiers       usage.EdgeTierMap
	Counts      usage.FacilityCount
	Metadata    Dict[string, FacilityInfo]
	Options     Options
	// optional, nearest facility of every network node
	NodeCatchments Array[assign.NodeCatchment]
}

// Aggregates the assignments of a run. Fails with usage.ErrEmptyUsage if no
// origin reached a facility.
func NewRun(g graph.IGraph, origins Array[sites.OriginSite], facilities Array[sites.FacilitySite], assignments Array[assign.Assignment]) (*Run, error) {
	if origins.Length() != assignments.Length() {
		return nil, fmt.Errorf("got %v assignments for %v origins", assignments.Length(), origins.Length())
	}
	edge_usage, counts := usage.Aggregate(assignments)
	tiers, err := usage.Classify(edge_usage)
	if err != nil {
		return nil, fmt.Errorf("no origin of %v reached a facility: %w", origins.Length(), err)
	}
	return &Run{
		ID:          uuid.New(),
		Graph:       g,
		Origins:     origins,
		Facilities:  facilities,
		Assignments: assignments,
		Usage:       edge_usage,
		Tiers:       tiers,
		Counts:      counts,
		Metadata:    NewDict[string, FacilityInfo](0),
	}, nil
}

// Name and municipality of a facility. Configured metadata wins over the
// values read with the site.
func (self *Run) FacilityInfo(facility sites.FacilitySite) FacilityInfo {
	info := FacilityInfo{Name: facility.Name, Municipality: facility.Municipality}
	if meta, ok := self.Metadata[facility.Label]; ok {
		if meta.Name != "" {
			info.Name = meta.Name
		}
		if meta.Municipality != "" {
			info.Municipality = meta.Municipality
		}
	}
	if info.Name == "" {
		info.Name = UNKNOWN_FACILITY
	}
	if info.Municipality == "" {
		info.Municipality = UNKNOWN_MUNICIPALITY
	}
	return info
}

func (self *Run) _NodeCoord(id graph.NodeID) (geo.Coord, bool) {
	index, ok := self.Graph.GetNodeIndex(id)
	if !ok {
		return geo.Coord{}, false
	}
	return self.Graph.GetNodeGeom(index), true
}

func (self *Run) _MapCenter() geo.Coord {
	if self.Options.Center.HasValue() {
		return self.Options.Center.Value
	}
	bounds := geo.BoundsOf(sites.OriginCoords(self.Origins), sites.FacilityCoords(self.Facilities))
	if bounds.IsEmpty() {
		return geo.Coord{}
	}
	return bounds.Center()
}
