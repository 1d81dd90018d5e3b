package main

import (
	"fmt"
	"time"

	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/metrics"
	"github.com/ttpr0/go-catchment/parser"
	"github.com/ttpr0/go-catchment/report"
	"github.com/ttpr0/go-catchment/sites"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// catchment pipeline
//**********************************************************

// Road network and node index shared by batch runs and requests.
type Network struct {
	Graph *graph.Graph
	Index graph.IGraphIndex
}

// Locator caching lookups for the duration of one run.
func (self *Network) NewLocator() *graph.CachedGraphIndex {
	return graph.NewCachedGraphIndex(self.Index)
}

// Parses the network around the given sites. Unless configured otherwise
// only the largest connected part of the network is kept.
func LoadNetwork(config Config, coords ...geo.CoordArray) (*Network, error) {
	bounds := geo.BoundsOf(coords...).Pad(config.Source.Margin)
	nodes, edges, err := parser.ParseOsm(config.Source.OSM, &parser.DrivingDecoder{}, bounds)
	if err != nil {
		return nil, err
	}
	if !config.Source.RetainAll {
		count := nodes.Length()
		nodes, edges = parser.RetainLargestComponent(nodes, edges)
		slog.Info(fmt.Sprintf("removed %v nodes outside of the largest component", count-nodes.Length()))
	}
	g, err := graph.BuildGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return &Network{
		Graph: g,
		Index: graph.BuildGraphIndex(g),
	}, nil
}

func _ResolveFacilities(locator graph.IGraphIndex, facility_sites Array[sites.FacilitySite]) (Array[assign.Facility], error) {
	nodes, err := graph.ResolveNodes(locator, Array[geo.Coord](sites.FacilityCoords(facility_sites)))
	if err != nil {
		return nil, fmt.Errorf("failed to locate facilities: %w", err)
	}
	facilities := NewArray[assign.Facility](facility_sites.Length())
	for i, site := range facility_sites {
		facilities[i] = assign.Facility{Label: site.Label, Node: nodes[i]}
	}
	return facilities, nil
}

// Routes every origin to its nearest facility on the network.
func Catchment(network *Network, origin_sites Array[sites.OriginSite], facility_sites Array[sites.FacilitySite], workers int, registry *metrics.Registry) (*report.Run, error) {
	locator := network.NewLocator()
	origin_nodes, err := graph.ResolveNodes(locator, Array[geo.Coord](sites.OriginCoords(origin_sites)))
	if err != nil {
		return nil, fmt.Errorf("failed to locate origins: %w", err)
	}
	origins := NewArray[assign.Origin](origin_sites.Length())
	for i, site := range origin_sites {
		origins[i] = assign.Origin{ID: site.ID, Node: origin_nodes[i]}
	}
	facilities, err := _ResolveFacilities(locator, facility_sites)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	assignments, err := assign.RouteAll(network.Graph, origins, facilities, workers)
	if err != nil {
		return nil, err
	}
	routed, unreachable := assign.Summarize(assignments)
	registry.RecordRouteAll(routed, unreachable, time.Since(start))
	slog.Info(fmt.Sprintf("routed %v origins in %v, %v unreachable", routed, time.Since(start), unreachable))

	return report.NewRun(network.Graph, origin_sites, facility_sites, assignments)
}

// Runs the configured batch and writes its report.
func RunBatch(config Config, registry *metrics.Registry) (*Network, List[string], error) {
	origins, err := sites.LoadOrigins(config.Origins)
	if err != nil {
		return nil, nil, err
	}
	facilities, err := sites.LoadFacilities(config.Facilities)
	if err != nil {
		return nil, nil, err
	}
	network, err := LoadNetwork(config, sites.OriginCoords(origins), sites.FacilityCoords(facilities))
	if err != nil {
		return nil, nil, err
	}
	registry.SetGraphSize(network.Graph.NodeCount(), network.Graph.EdgeCount())

	run, err := Catchment(network, origins, facilities, config.Routing.Workers, registry)
	if err != nil {
		return nil, nil, err
	}
	run.Metadata = config.Metadata
	run.Options = config.ReportOptions()
	if config.Output.NodeCatchment {
		targets, err := _ResolveFacilities(network.NewLocator(), facilities)
		if err != nil {
			return nil, nil, err
		}
		run.NodeCatchments, err = assign.NodeCatchments(network.Graph, targets)
		if err != nil {
			return nil, nil, err
		}
	}
	files, err := report.Write(config.Output.Dir, run)
	if err != nil {
		return nil, nil, err
	}

	summary := report.BuildSummary(run)
	for _, facility := range summary.Facilities {
		slog.Info(fmt.Sprintf("%v (%v): %v origins", facility.Name, facility.Label, facility.Assigned))
	}
	slog.Info(fmt.Sprintf("run %v finished, %v of %v origins unreachable", summary.RunID, summary.Unreachable, summary.Origins))
	return network, files, nil
}
