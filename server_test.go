package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/metrics"
	"github.com/ttpr0/go-catchment/report"
	"github.com/ttpr0/go-catchment/usage"
	. "github.com/ttpr0/go-catchment/util"
)

func _TestConfig(t *testing.T) Config {
	config := ReadConfig("testdata/config.yaml")
	config.Output.Dir = filepath.Join(t.TempDir(), "out")
	return config
}

func TestRunBatch(t *testing.T) {
	config := _TestConfig(t)
	registry := metrics.NewRegistry()

	network, files, err := RunBatch(config, registry)
	require.NoError(t, err)
	assert.Equal(t, 9, network.Graph.NodeCount())
	assert.Equal(t, 24, network.Graph.EdgeCount())
	assert.Equal(t, 7, files.Length())

	summary, err := ReadJSONFromFile[report.Summary](filepath.Join(config.Output.Dir, report.SUMMARY_FILE))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Origins)
	assert.Equal(t, 3, summary.Routed)
	assert.Equal(t, 0, summary.Unreachable)
	assert.Equal(t, 1, summary.MaxUsage)
	assert.Equal(t, 3, summary.Edges)
	require.Equal(t, 2, summary.Facilities.Length())
	assert.Equal(t, report.FacilitySummary{Label: "East", Name: "East mill", Municipality: "Eastville", Assigned: 1}, summary.Facilities[0])
	assert.Equal(t, report.FacilitySummary{Label: "West", Name: "West mill", Municipality: report.UNKNOWN_MUNICIPALITY, Assigned: 2}, summary.Facilities[1])

	reader, err := zip.OpenReader(filepath.Join(config.Output.Dir, report.ARCHIVE_FILE))
	require.NoError(t, err)
	defer reader.Close()
	assert.Len(t, reader.File, 6)
}

func TestRunBatchMissingSites(t *testing.T) {
	config := _TestConfig(t)
	config.Origins = "testdata/missing.geojson"
	_, _, err := RunBatch(config, metrics.NewRegistry())
	assert.Error(t, err)
}

func _TestNetwork(t *testing.T) *Network {
	network, err := LoadNetwork(_TestConfig(t), geo.CoordArray{{0, 0}, {0.002, 0.002}})
	require.NoError(t, err)
	return network
}

func _TestServer(t *testing.T) (*httptest.Server, *metrics.Registry) {
	server, registry, _ := _TestServerWithNetwork(t)
	return server, registry
}

func _TestServerWithNetwork(t *testing.T) (*httptest.Server, *metrics.Registry, *Network) {
	network := _TestNetwork(t)
	registry := metrics.NewRegistry()
	service := NewCatchmentService(network, registry, 2)
	server := httptest.NewServer(NewRouter(service, registry))
	t.Cleanup(server.Close)
	return server, registry, network
}

func _Post(t *testing.T, server *httptest.Server, body string) *http.Response {
	resp, err := http.Post(server.URL+"/v0/catchment", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCatchmentRequest(t *testing.T) {
	server, _ := _TestServer(t)
	resp := _Post(t, server, `{
		"origins": [{"id": "a", "loc": [0, 0]}, {"loc": [0.002, 0.002]}],
		"facilities": [{"loc": [0, 0.001]}, {"label": "East", "loc": [0.002, 0.001]}]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Assignments []struct {
			Origin    string `json:"origin"`
			Reachable bool   `json:"reachable"`
			Facility  string `json:"facility"`
		} `json:"assignments"`
		Unreachable int `json:"unreachable"`
		MaxUsage    int `json:"max_usage"`
		Edges       struct {
			Features []json.RawMessage `json:"features"`
		} `json:"edges"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Assignments, 2)
	assert.Equal(t, "a", body.Assignments[0].Origin)
	assert.Equal(t, "Facility 1", body.Assignments[0].Facility)
	assert.Equal(t, "1", body.Assignments[1].Origin)
	assert.Equal(t, "East", body.Assignments[1].Facility)
	assert.Equal(t, 0, body.Unreachable)
	assert.Equal(t, 1, body.MaxUsage)
	assert.Len(t, body.Edges.Features, 2)
}

func TestCatchmentRequestErrors(t *testing.T) {
	server, _ := _TestServer(t)

	resp := _Post(t, server, `{"origins": [{"loc": [0, 0]}], "facilities": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = _Post(t, server, `{"origins": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/v0/catchment", body.Request)

	get, err := http.Get(server.URL + "/v0/catchment")
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestCatchmentRequestNothingRouted(t *testing.T) {
	server, _ := _TestServer(t)

	// origin sits on the facility node, its route has no edges
	resp := _Post(t, server, `{"origins": [{"loc": [0, 0.001]}], "facilities": [{"loc": [0, 0.001]}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunBatchNothingRouted(t *testing.T) {
	config := _TestConfig(t)
	config.Origins = "testdata/facility_origins.csv"
	_, _, err := RunBatch(config, metrics.NewRegistry())
	assert.ErrorIs(t, err, usage.ErrEmptyUsage)
}

func TestLocatorPerRun(t *testing.T) {
	server, _, network := _TestServerWithNetwork(t)

	_Post(t, server, `{"origins": [{"loc": [0, 0]}], "facilities": [{"loc": [0, 0.001]}]}`)
	_Post(t, server, `{"origins": [{"loc": [0.002, 0.002]}], "facilities": [{"loc": [0.002, 0.001]}]}`)
	_, cached := network.Index.(*graph.CachedGraphIndex)
	assert.False(t, cached)

	first := network.NewLocator()
	_, err := graph.ResolveNodes(first, Array[geo.Coord]{{0, 0}, {0.002, 0.002}})
	require.NoError(t, err)
	assert.Equal(t, 2, first.CacheSize())
	assert.Equal(t, 0, network.NewLocator().CacheSize())
}

func TestHealthAndMetrics(t *testing.T) {
	server, _ := _TestServer(t)

	resp, err := http.Get(server.URL + "/v0/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, HealthResponse{Status: "ok", Nodes: 9, Edges: 24}, health)

	_Post(t, server, `{"origins": [{"loc": [0, 0]}], "facilities": [{"loc": [0, 0.001]}]}`)

	metrics_resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metrics_resp.Body.Close()
	var text bytes.Buffer
	_, err = text.ReadFrom(metrics_resp.Body)
	require.NoError(t, err)
	assert.Contains(t, text.String(), `catchment_http_requests_total{method="GET",path="/v0/health",status="200"} 1`)
	assert.Contains(t, text.String(), `catchment_http_requests_total{method="POST",path="/v0/catchment",status="200"} 1`)
	assert.Contains(t, text.String(), "catchment_origins_routed_total 1")
}

func TestLoadNetworkComponents(t *testing.T) {
	config := _TestConfig(t)
	config.Source.OSM = "parser/testdata/network.osm"

	network, err := LoadNetwork(config)
	require.NoError(t, err)
	assert.Equal(t, 3, network.Graph.NodeCount())

	config.Source.RetainAll = true
	network, err = LoadNetwork(config)
	require.NoError(t, err)
	assert.Equal(t, 5, network.Graph.NodeCount())
}

func TestRunBatchNodeCatchment(t *testing.T) {
	config := _TestConfig(t)
	config.Output.NodeCatchment = true
	config.Output.Archive = false

	_, files, err := RunBatch(config, metrics.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, 7, files.Length())
	assert.Contains(t, files, filepath.Join(config.Output.Dir, report.NODES_FILE))
}
