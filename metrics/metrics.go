package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics of the catchment service.
type Registry struct {
	// routing
	OriginsRouted      prometheus.Counter
	OriginsUnreachable prometheus.Counter
	RouteAllDuration   prometheus.Histogram
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge

	// http
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	default_registry *Registry
	once             sync.Once
)

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		default_registry = NewRegistry()
	})
	return default_registry
}

func NewRegistry() *Registry {
	registry := &Registry{
		registry: prometheus.NewRegistry(),
	}
	registry.initRoutingMetrics()
	registry.initHTTPMetrics()
	return registry
}

func (self *Registry) initRoutingMetrics() {
	self.OriginsRouted = promauto.With(self.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "catchment_origins_routed_total",
			Help: "Number of origins assigned to a facility",
		},
	)
	self.OriginsUnreachable = promauto.With(self.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "catchment_origins_unreachable_total",
			Help: "Number of origins from which no facility is reachable",
		},
	)
	self.RouteAllDuration = promauto.With(self.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catchment_route_all_duration_seconds",
			Help:    "Duration of routing a batch of origins",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)
	self.GraphNodes = promauto.With(self.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "catchment_graph_nodes",
			Help: "Number of nodes of the loaded road network",
		},
	)
	self.GraphEdges = promauto.With(self.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "catchment_graph_edges",
			Help: "Number of directed edges of the loaded road network",
		},
	)
}

func (self *Registry) initHTTPMetrics() {
	self.HTTPRequestsTotal = promauto.With(self.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchment_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	self.HTTPRequestDuration = promauto.With(self.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catchment_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
}

// RecordRouteAll records the outcome of one batch.
func (self *Registry) RecordRouteAll(routed, unreachable int, duration time.Duration) {
	self.OriginsRouted.Add(float64(routed))
	self.OriginsUnreachable.Add(float64(unreachable))
	self.RouteAllDuration.Observe(duration.Seconds())
}

func (self *Registry) SetGraphSize(nodes, edges int) {
	self.GraphNodes.Set(float64(nodes))
	self.GraphEdges.Set(float64(edges))
}

func (self *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	self.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	self.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (self *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{Registry: self.registry})
}
