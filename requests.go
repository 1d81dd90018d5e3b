package main

import (
	"github.com/ttpr0/go-catchment/geo"
)

type CatchmentRequest struct {
	Origins    []RequestOrigin   `json:"origins"`
	Facilities []RequestFacility `json:"facilities"`
}

type RequestOrigin struct {
	// defaults to the position in the request
	ID  string    `json:"id"`
	Loc geo.Coord `json:"loc"`
}

type RequestFacility struct {
	// defaults to "Facility <position+1>"
	Label string    `json:"label"`
	Loc   geo.Coord `json:"loc"`
}
