package main

import (
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/report"
	. "github.com/ttpr0/go-catchment/util"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type CatchmentResponse struct {
	RunID       string                       `json:"run_id"`
	Assignments Array[assign.Assignment]     `json:"assignments"`
	Facilities  List[report.FacilitySummary] `json:"facilities"`
	Unreachable int                          `json:"unreachable"`
	MaxUsage    int                          `json:"max_usage"`
	Edges       *geojson.FeatureCollection   `json:"edges"`
}

func NewCatchmentResponse(run *report.Run) CatchmentResponse {
	summary := report.BuildSummary(run)
	return CatchmentResponse{
		RunID:       summary.RunID,
		Assignments: run.Assignments,
		Facilities:  summary.Facilities,
		Unreachable: summary.Unreachable,
		MaxUsage:    summary.MaxUsage,
		Edges:       report.TieredEdges(run),
	}
}

type HealthResponse struct {
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}
