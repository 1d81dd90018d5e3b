package report

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/sites"
	"github.com/ttpr0/go-catchment/usage"
	. "github.com/ttpr0/go-catchment/util"
)

// Line 1 - 2 - 3 - 4 with facilities A at 1 and B at 4, node 5 is isolated.
func _BuildRun(t *testing.T) *Run {
	nodes := Array[graph.Node]{
		{ID: 1, Loc: geo.Coord{0, 0}},
		{ID: 2, Loc: geo.Coord{0.01, 0}},
		{ID: 3, Loc: geo.Coord{0.02, 0}},
		{ID: 4, Loc: geo.Coord{0.03, 0}},
		{ID: 5, Loc: geo.Coord{0.05, 0}},
	}
	edges := Array[graph.Edge]{
		{From: 1, To: 2, Length: 1}, {From: 2, To: 1, Length: 1},
		{From: 2, To: 3, Length: 1}, {From: 3, To: 2, Length: 1},
		{From: 3, To: 4, Length: 1}, {From: 4, To: 3, Length: 1},
	}
	g, err := graph.BuildGraph(nodes, edges)
	require.NoError(t, err)

	origin_sites := Array[sites.OriginSite]{
		{ID: "o0", Loc: geo.Coord{0.01, 0}},
		{ID: "o1", Loc: geo.Coord{0.02, 0}},
		{ID: "o2", Loc: geo.Coord{0.01, 0}},
		{ID: "o3", Loc: geo.Coord{0.05, 0}},
	}
	facility_sites := Array[sites.FacilitySite]{
		{Label: "B", Loc: geo.Coord{0.03, 0}},
		{Label: "A", Loc: geo.Coord{0, 0}, Municipality: "Paranapanema"},
	}
	origins := Array[assign.Origin]{{ID: "o0", Node: 2}, {ID: "o1", Node: 3}, {ID: "o2", Node: 2}, {ID: "o3", Node: 5}}
	facilities := Array[assign.Facility]{{Label: "B", Node: 4}, {Label: "A", Node: 1}}

	assignments, err := assign.RouteAll(g, origins, facilities, 2)
	require.NoError(t, err)
	run, err := NewRun(g, origin_sites, facility_sites, assignments)
	require.NoError(t, err)
	run.Metadata["A"] = FacilityInfo{Name: "Alpha Mill"}
	return run
}

func TestNewRunRejectsMismatch(t *testing.T) {
	run := _BuildRun(t)
	_, err := NewRun(run.Graph, run.Origins, run.Facilities, run.Assignments[:2])
	assert.Error(t, err)
}

func TestTieredEdges(t *testing.T) {
	run := _BuildRun(t)
	fc := TieredEdges(run)
	require.Equal(t, 2, len(fc.Features))

	first := fc.Features[0]
	assert.Equal(t, "LineString", first.Geometry.GeoJSONType())
	assert.Equal(t, int64(2), first.Properties["from"])
	assert.Equal(t, int64(1), first.Properties["to"])
	assert.Equal(t, 2, first.Properties["usage"])
	assert.Equal(t, "very-high", first.Properties["tier"])
	assert.Equal(t, "rgb(255,0,0)", first.Properties["color"])

	second := fc.Features[1]
	assert.Equal(t, int64(3), second.Properties["from"])
	assert.Equal(t, int64(4), second.Properties["to"])
	assert.Equal(t, "low", second.Properties["tier"])
}

func TestFacilityInfo(t *testing.T) {
	run := _BuildRun(t)
	a := run.FacilityInfo(run.Facilities[1])
	assert.Equal(t, "Alpha Mill", a.Name)
	assert.Equal(t, "Paranapanema", a.Municipality)

	b := run.FacilityInfo(run.Facilities[0])
	assert.Equal(t, UNKNOWN_FACILITY, b.Name)
	assert.Equal(t, UNKNOWN_MUNICIPALITY, b.Municipality)
}

func TestPointFeatures(t *testing.T) {
	run := _BuildRun(t)
	facilities := FacilityFeatures(run)
	require.Equal(t, 2, len(facilities.Features))
	assert.Equal(t, "B", facilities.Features[0].Properties["label"])
	assert.Equal(t, 1, facilities.Features[0].Properties["assigned"])
	assert.Equal(t, 2, facilities.Features[1].Properties["assigned"])

	origins := OriginFeatures(run)
	require.Equal(t, 4, len(origins.Features))
	assert.Equal(t, "A", origins.Features[0].Properties["facility"])
	assert.Equal(t, false, origins.Features[3].Properties["reachable"])
	assert.NotContains(t, origins.Features[3].Properties, "facility")
}

func TestBuildSummary(t *testing.T) {
	run := _BuildRun(t)
	summary := BuildSummary(run)
	assert.Equal(t, run.ID.String(), summary.RunID)
	assert.Equal(t, 4, summary.Origins)
	assert.Equal(t, 3, summary.Routed)
	assert.Equal(t, 1, summary.Unreachable)
	assert.Equal(t, 2, summary.MaxUsage)
	assert.Equal(t, 2, summary.Edges)

	require.Equal(t, 2, summary.Facilities.Length())
	assert.Equal(t, "A", summary.Facilities[0].Label)
	assert.Equal(t, 2, summary.Facilities[0].Assigned)
	assert.Equal(t, "B", summary.Facilities[1].Label)
	assert.Equal(t, UNKNOWN_FACILITY, summary.Facilities[1].Name)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	var decoded struct {
		Tiers map[string]int `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]int{"very-high": 1, "high": 0, "medium": 0, "low": 1, "very-low": 0}, decoded.Tiers)
}

func TestRunWithoutRoutes(t *testing.T) {
	run := _BuildRun(t)
	unreachable := NewArray[assign.Assignment](run.Origins.Length())
	for i, o := range run.Origins {
		unreachable[i] = assign.Assignment{OriginID: o.ID}
	}
	empty, err := NewRun(run.Graph, run.Origins, run.Facilities, unreachable)
	assert.ErrorIs(t, err, usage.ErrEmptyUsage)
	assert.Nil(t, empty)
}

func TestWriteHTMLMap(t *testing.T) {
	run := _BuildRun(t)
	var out strings.Builder
	require.NoError(t, WriteHTMLMap(&out, run))
	html := out.String()
	assert.Contains(t, html, "L.map")
	assert.Contains(t, html, "rgb(255,0,0)")
	assert.Contains(t, html, "Alpha Mill")
}

func TestWriteAndArchive(t *testing.T) {
	run := _BuildRun(t)
	run.Options = Options{HTML: true, Archive: true}
	dir := filepath.Join(t.TempDir(), "out")

	files, err := Write(dir, run)
	require.NoError(t, err)
	require.Equal(t, 7, files.Length())
	for _, file := range files {
		_, err := os.Stat(file)
		assert.NoError(t, err, file)
	}

	edges, err := os.ReadFile(filepath.Join(dir, EDGES_FILE))
	require.NoError(t, err)
	assert.Contains(t, string(edges), `"tier":"very-high"`)

	summary, err := ReadJSONFromFile[Summary](filepath.Join(dir, SUMMARY_FILE))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Routed)

	reader, err := zip.OpenReader(filepath.Join(dir, ARCHIVE_FILE))
	require.NoError(t, err)
	defer reader.Close()
	names := NewList[string](6)
	for _, f := range reader.File {
		names.Add(f.Name)
	}
	assert.ElementsMatch(t, []string{EDGES_FILE, FACILITIES_FILE, ORIGINS_FILE, ASSIGNMENTS_FILE, SUMMARY_FILE, MAP_FILE}, names)
}

func TestWriteWithoutOptionalFiles(t *testing.T) {
	run := _BuildRun(t)
	files, err := Write(t.TempDir(), run)
	require.NoError(t, err)
	assert.Equal(t, 5, files.Length())
}

func TestNodeCatchmentFeatures(t *testing.T) {
	run := _BuildRun(t)
	assert.Empty(t, NodeCatchmentFeatures(run).Features)

	facilities := Array[assign.Facility]{{Label: "B", Node: 4}, {Label: "A", Node: 1}}
	catchments, err := assign.NodeCatchments(run.Graph, facilities)
	require.NoError(t, err)
	run.NodeCatchments = catchments

	fc := NodeCatchmentFeatures(run)
	require.Equal(t, 5, len(fc.Features))
	assert.Equal(t, "A", fc.Features[0].Properties["facility"])
	assert.Equal(t, "A", fc.Features[1].Properties["facility"])
	assert.Equal(t, "B", fc.Features[2].Properties["facility"])
	assert.Equal(t, false, fc.Features[4].Properties["reachable"])

	files, err := Write(t.TempDir(), run)
	require.NoError(t, err)
	assert.Equal(t, 6, files.Length())
}
