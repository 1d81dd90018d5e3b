package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ttpr0/go-catchment/graph"
	"github.com/ttpr0/go-catchment/metrics"
	"github.com/ttpr0/go-catchment/sites"
	"github.com/ttpr0/go-catchment/usage"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// catchment service
//**********************************************************

type CatchmentService struct {
	network  *Network
	registry *metrics.Registry
	workers  int
}

func NewCatchmentService(network *Network, registry *metrics.Registry, workers int) *CatchmentService {
	return &CatchmentService{
		network:  network,
		registry: registry,
		workers:  workers,
	}
}

func (self *CatchmentService) HandleCatchmentRequest(req CatchmentRequest) Result {
	if len(req.Facilities) == 0 {
		return BadRequest("no facilities given")
	}
	origins := NewArray[sites.OriginSite](len(req.Origins))
	for i, o := range req.Origins {
		id := o.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		origins[i] = sites.OriginSite{ID: id, Loc: o.Loc}
	}
	facilities := NewArray[sites.FacilitySite](len(req.Facilities))
	for i, f := range req.Facilities {
		label := f.Label
		if label == "" {
			label = sites.DefaultFacilityLabel(i)
		}
		facilities[i] = sites.FacilitySite{Label: label, Loc: f.Loc}
	}

	run, err := Catchment(self.network, origins, facilities, self.workers, self.registry)
	if errors.Is(err, graph.ErrNoNodeFound) || errors.Is(err, graph.ErrConfiguration) || errors.Is(err, usage.ErrEmptyUsage) {
		return BadRequest(err.Error())
	}
	if err != nil {
		slog.Error("catchment request failed: " + err.Error())
		return InternalError(err.Error())
	}
	return OK(NewCatchmentResponse(run))
}

func (self *CatchmentService) HandleHealthRequest() Result {
	return OK(HealthResponse{
		Status: "ok",
		Nodes:  self.network.Graph.NodeCount(),
		Edges:  self.network.Graph.EdgeCount(),
	})
}

func NewRouter(service *CatchmentService, registry *metrics.Registry) *mux.Router {
	app := mux.NewRouter()
	app.Use(MetricsMiddleware(registry))
	MapPost(app, "/v0/catchment", service.HandleCatchmentRequest)
	MapGet(app, "/v0/health", service.HandleHealthRequest)
	app.Handle("/metrics", registry.Handler()).Methods(http.MethodGet)
	return app
}
