package parser

import "encoding/json"

//*******************************************
// road types
//*******************************************

type RoadType int8

const (
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
	SERVICE        RoadType = 16
)

var road_type_names = [...]string{
	MOTORWAY:       "motorway",
	MOTORWAY_LINK:  "motorway_link",
	TRUNK:          "trunk",
	TRUNK_LINK:     "trunk_link",
	PRIMARY:        "primary",
	PRIMARY_LINK:   "primary_link",
	SECONDARY:      "secondary",
	SECONDARY_LINK: "secondary_link",
	TERTIARY:       "tertiary",
	TERTIARY_LINK:  "tertiary_link",
	RESIDENTIAL:    "residential",
	LIVING_STREET:  "living_street",
	UNCLASSIFIED:   "unclassified",
	ROAD:           "road",
	TRACK:          "track",
	SERVICE:        "service",
}

func (self RoadType) String() string {
	if self <= 0 || int(self) >= len(road_type_names) {
		return ""
	}
	return road_type_names[self]
}

func (self RoadType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

// Returns 0 for highway values that are not part of the drive network.
func RoadTypeFromString(typ string) RoadType {
	for i, name := range road_type_names {
		if name != "" && name == typ {
			return RoadType(i)
		}
	}
	return 0
}

// Motorways and trunk roads are oneway without an explicit tag.
func (self RoadType) IsImplicitOneway() bool {
	switch self {
	case MOTORWAY, MOTORWAY_LINK, TRUNK, TRUNK_LINK:
		return true
	}
	return false
}
