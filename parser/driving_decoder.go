package parser

import (
	. "github.com/ttpr0/go-catchment/util"
)

// Keeps the roads a car may use.
type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

var blocked_access = Dict[string, bool]{"no": true, "private": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("area") == "yes" {
		return false
	}
	if blocked_access.ContainsKey(tags.Get("access")) || blocked_access.ContainsKey(tags.Get("motor_vehicle")) {
		return false
	}
	return true
}
func (self *DrivingDecoder) DecodeWay(tags Dict[string, string]) WayAttribs {
	typ := RoadTypeFromString(tags.Get("highway"))
	return WayAttribs{
		Type:      typ,
		Direction: _GetDirection(tags.Get("oneway"), tags.Get("junction"), typ),
	}
}
