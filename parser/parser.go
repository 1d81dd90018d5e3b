package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

// Reads the road network of an osm file (.pbf or .osm/.xml) into a graph.
//
// Only ways accepted by the decoder are used. Ways are split at junctions,
// every piece yields one directed edge per allowed direction weighted by its
// haversine length in metres. If bounds is not empty, only ways with at
// least one node inside bounds are kept.
func ParseGraph(osm_file string, decoder IOSMDecoder, bounds geo.Bounds) (*graph.Graph, error) {
	nodes, edges, err := ParseOsm(osm_file, decoder, bounds)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("parsed %v nodes and %v edges from %v", nodes.Length(), edges.Length(), osm_file))
	return graph.BuildGraph(nodes, edges)
}

func ParseOsm(osm_file string, decoder IOSMDecoder, bounds geo.Bounds) (Array[graph.Node], Array[graph.Edge], error) {
	osm_nodes := NewDict[int64, TempNode](10000)
	ways := NewList[OSMWay](1000)

	err := _ScanOsm(osm_file, false, func(object osm.Object) {
		if way, ok := object.(*osm.Way); ok {
			_InitWayHandler(way, decoder, &ways, &osm_nodes)
		}
	})
	if err != nil {
		return nil, nil, err
	}
	err = _ScanOsm(osm_file, true, func(object osm.Object) {
		if node, ok := object.(*osm.Node); ok {
			_NodeHandler(node, &osm_nodes)
		}
	})
	if err != nil {
		return nil, nil, err
	}

	ways = _CropWays(ways, &osm_nodes, bounds)
	_CountWayNodes(ways, &osm_nodes)

	osm_edges := NewList[OSMEdge](ways.Length() * 2)
	for _, way := range ways {
		_SplitWay(way, &osm_nodes, &osm_edges)
	}
	nodes, edges := _CreateGraph(osm_edges, &osm_nodes)
	return nodes, edges, nil
}

// Runs one pass over the file. Ways are read on the first pass, nodes on
// the second.
func _ScanOsm(filename string, read_nodes bool, handler func(osm.Object)) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var scanner osm.Scanner
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pbf":
		pbf := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
		pbf.SkipNodes = !read_nodes
		pbf.SkipWays = read_nodes
		pbf.SkipRelations = true
		scanner = pbf
	case ".osm", ".xml":
		scanner = osmxml.New(context.Background(), file)
	default:
		return fmt.Errorf("unsupported osm file format: %s", filename)
	}
	defer scanner.Close()

	c := 0
	for scanner.Scan() {
		c += 1
		if c%100000 == 0 {
			slog.Debug(fmt.Sprintf("%v objects scanned", c))
		}
		handler(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return nil
}

func _CreateGraph(osm_edges List[OSMEdge], osm_nodes *Dict[int64, TempNode]) (Array[graph.Node], Array[graph.Edge]) {
	nodes := NewList[graph.Node](osm_edges.Length())
	edges := NewList[graph.Edge](osm_edges.Length() * 2)
	seen := NewDict[int64, bool](osm_edges.Length())

	add_node := func(id int64) {
		if seen.ContainsKey(id) {
			return
		}
		seen[id] = true
		nodes.Add(graph.Node{ID: graph.NodeID(id), Loc: (*osm_nodes)[id].Point})
	}
	for _, osm_edge := range osm_edges {
		add_node(osm_edge.NodeA)
		add_node(osm_edge.NodeB)
		length := geo.CoordArray(osm_edge.Nodes).Length()
		if osm_edge.Attr.Direction != BACKWARD {
			edges.Add(graph.Edge{From: graph.NodeID(osm_edge.NodeA), To: graph.NodeID(osm_edge.NodeB), Length: length})
		}
		if osm_edge.Attr.Direction != FORWARD {
			edges.Add(graph.Edge{From: graph.NodeID(osm_edge.NodeB), To: graph.NodeID(osm_edge.NodeA), Length: length})
		}
	}
	return Array[graph.Node](nodes), Array[graph.Edge](edges)
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(way *osm.Way, decoder IOSMDecoder, ways *List[OSMWay], osm_nodes *Dict[int64, TempNode]) {
	tags := Dict[string, string](way.TagMap())
	if !decoder.IsValidHighway(tags) {
		return
	}
	node_ids := way.Nodes.NodeIDs()
	if len(node_ids) < 2 {
		return
	}
	refs := NewList[int64](len(node_ids))
	for _, id := range node_ids {
		ref := int64(id)
		refs.Add(ref)
		if !osm_nodes.ContainsKey(ref) {
			(*osm_nodes)[ref] = TempNode{}
		}
	}
	ways.Add(OSMWay{Refs: refs, Attr: decoder.DecodeWay(tags)})
}

func _NodeHandler(node *osm.Node, osm_nodes *Dict[int64, TempNode]) {
	id := int64(node.ID)
	on, ok := (*osm_nodes)[id]
	if !ok {
		return
	}
	on.Point = geo.Coord{node.Lon, node.Lat}
	on.Found = true
	(*osm_nodes)[id] = on
}

// Breaks ways at node refs missing from the file and drops pieces outside
// bounds.
func _CropWays(ways List[OSMWay], osm_nodes *Dict[int64, TempNode], bounds geo.Bounds) List[OSMWay] {
	cropped := NewList[OSMWay](ways.Length())
	add_piece := func(refs List[int64], attr WayAttribs) {
		if refs.Length() < 2 {
			return
		}
		if !bounds.IsEmpty() {
			inside := false
			for _, ref := range refs {
				if bounds.Contains((*osm_nodes)[ref].Point) {
					inside = true
					break
				}
			}
			if !inside {
				return
			}
		}
		cropped.Add(OSMWay{Refs: refs, Attr: attr})
	}
	for _, way := range ways {
		piece := NewList[int64](way.Refs.Length())
		for _, ref := range way.Refs {
			if !(*osm_nodes)[ref].Found {
				add_piece(piece, way.Attr)
				piece = NewList[int64](way.Refs.Length())
				continue
			}
			piece.Add(ref)
		}
		add_piece(piece, way.Attr)
	}
	return cropped
}

// Nodes used more than once or at the end of a way become graph nodes.
func _CountWayNodes(ways List[OSMWay], osm_nodes *Dict[int64, TempNode]) {
	for _, way := range ways {
		l := way.Refs.Length()
		for i, ref := range way.Refs {
			on := (*osm_nodes)[ref]
			on.Count += 1
			if i == 0 || i == l-1 {
				on.Count += 1
			}
			(*osm_nodes)[ref] = on
		}
	}
}

func _SplitWay(way OSMWay, osm_nodes *Dict[int64, TempNode], edges *List[OSMEdge]) {
	start := way.Refs[0]
	e := OSMEdge{}
	e.Nodes.Add((*osm_nodes)[start].Point)
	for i := 1; i < way.Refs.Length(); i++ {
		curr := way.Refs[i]
		on := (*osm_nodes)[curr]
		e.Nodes.Add(on.Point)
		if on.Count <= 1 {
			continue
		}
		// self loops never lie on a shortest path
		if curr != start {
			e.NodeA = start
			e.NodeB = curr
			e.Attr = way.Attr
			edges.Add(e)
		}
		start = curr
		e = OSMEdge{}
		e.Nodes.Add(on.Point)
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeWay(tags Dict[string, string]) WayAttribs
}
