package report

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/usage"
)

//*******************************************
// feature collections
//*******************************************

// One line per used directed node pair, in a stable order.
func TieredEdges(run *Run) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, key := range usage.SortedKeys(run.Usage) {
		from, ok_a := run._NodeCoord(key.From)
		to, ok_b := run._NodeCoord(key.To)
		if !ok_a || !ok_b {
			continue
		}
		tier := run.Tiers[key]
		f := geojson.NewFeature(geo.CoordArray{from, to}.LineString())
		f.Properties["from"] = int64(key.From)
		f.Properties["to"] = int64(key.To)
		f.Properties["usage"] = run.Usage[key]
		f.Properties["tier"] = tier.String()
		f.Properties["color"] = tier.Color()
		fc.Append(f)
	}
	return fc
}

func FacilityFeatures(run *Run) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, facility := range run.Facilities {
		info := run.FacilityInfo(facility)
		f := geojson.NewFeature(orb.Point(facility.Loc))
		f.Properties["label"] = facility.Label
		f.Properties["name"] = info.Name
		f.Properties["municipality"] = info.Municipality
		f.Properties["assigned"] = run.Counts[facility.Label]
		fc.Append(f)
	}
	return fc
}

func OriginFeatures(run *Run) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, origin := range run.Origins {
		a := run.Assignments[i]
		f := geojson.NewFeature(orb.Point(origin.Loc))
		f.Properties["id"] = origin.ID
		f.Properties["reachable"] = a.Reachable
		if a.Reachable {
			f.Properties["facility"] = a.Facility
			f.Properties["length"] = a.Route.Length
		}
		fc.Append(f)
	}
	return fc
}

// One point per network node colored by its nearest facility.
func NodeCatchmentFeatures(run *Run) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range run.NodeCatchments {
		loc, ok := run._NodeCoord(c.Node)
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.Point(loc))
		f.Properties["node"] = int64(c.Node)
		f.Properties["reachable"] = c.Reachable
		if c.Reachable {
			f.Properties["facility"] = c.Facility
			f.Properties["distance"] = c.Distance
		}
		fc.Append(f)
	}
	return fc
}
