package sites

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/go-catchment/geo"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// sites
//*******************************************

// Point of demand to be routed from.
type OriginSite struct {
	ID  string    `json:"id"`
	Loc geo.Coord `json:"loc"`
}

// Candidate destination. Name and Municipality are display metadata only.
type FacilitySite struct {
	Label        string    `json:"label"`
	Loc          geo.Coord `json:"loc"`
	Name         string    `json:"name,omitempty"`
	Municipality string    `json:"municipality,omitempty"`
}

// Label given to the facility at position i (0-based) if none is set.
func DefaultFacilityLabel(i int) string {
	return fmt.Sprintf("Facility %d", i+1)
}

func OriginCoords(origins Array[OriginSite]) geo.CoordArray {
	coords := make(geo.CoordArray, origins.Length())
	for i, o := range origins {
		coords[i] = o.Loc
	}
	return coords
}

func FacilityCoords(facilities Array[FacilitySite]) geo.CoordArray {
	coords := make(geo.CoordArray, facilities.Length())
	for i, f := range facilities {
		coords[i] = f.Loc
	}
	return coords
}

//*******************************************
// loading
//*******************************************

// Reads origins from a GeoJSON point collection (.geojson, .json) or a csv
// file with id, lon and lat columns. Missing ids default to the position in
// the file.
func LoadOrigins(file string) (Array[OriginSite], error) {
	slog.Info("Reading origins from " + file)
	if _IsCSV(file) {
		return _LoadOriginsCSV(file)
	}
	fc, err := _ReadFeatureCollection(file)
	if err != nil {
		return nil, err
	}
	origins := NewList[OriginSite](len(fc.Features))
	for i, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("origin %d in %s is not a point", i, file)
		}
		id := feature.Properties.MustString("id", "")
		if id == "" {
			id = _FeatureID(feature.ID, i)
		}
		origins.Add(OriginSite{ID: id, Loc: geo.FromPoint(point)})
	}
	return Array[OriginSite](origins), nil
}

// Reads facilities from a GeoJSON point collection (.geojson, .json) or a
// csv file with label, lon and lat columns. Missing labels default to
// DefaultFacilityLabel. The order of the file is kept.
func LoadFacilities(file string) (Array[FacilitySite], error) {
	slog.Info("Reading facilities from " + file)
	if _IsCSV(file) {
		return _LoadFacilitiesCSV(file)
	}
	fc, err := _ReadFeatureCollection(file)
	if err != nil {
		return nil, err
	}
	facilities := NewList[FacilitySite](len(fc.Features))
	for i, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("facility %d in %s is not a point", i, file)
		}
		label := feature.Properties.MustString("label", "")
		if label == "" {
			label = DefaultFacilityLabel(i)
		}
		facilities.Add(FacilitySite{
			Label:        label,
			Loc:          geo.FromPoint(point),
			Name:         feature.Properties.MustString("name", ""),
			Municipality: feature.Properties.MustString("municipality", ""),
		})
	}
	return Array[FacilitySite](facilities), nil
}

func _ReadFeatureCollection(file string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return fc, nil
}

func _FeatureID(id any, i int) string {
	switch v := id.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.Itoa(i)
}

func _IsCSV(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".csv")
}

//*******************************************
// csv
//*******************************************

type _OriginRow struct {
	ID  string  `csv:"id"`
	Lon float64 `csv:"lon"`
	Lat float64 `csv:"lat"`
}

type _FacilityRow struct {
	Label        string  `csv:"label"`
	Lon          float64 `csv:"lon"`
	Lat          float64 `csv:"lat"`
	Name         string  `csv:"name"`
	Municipality string  `csv:"municipality"`
}

func _LoadOriginsCSV(file string) (Array[OriginSite], error) {
	rows, err := ReadCSVFromFile[_OriginRow](file, ',')
	if err != nil {
		return nil, err
	}
	origins := NewArray[OriginSite](rows.Length())
	for i, row := range rows {
		id := row.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		origins[i] = OriginSite{ID: id, Loc: geo.Coord{row.Lon, row.Lat}}
	}
	return origins, nil
}

func _LoadFacilitiesCSV(file string) (Array[FacilitySite], error) {
	rows, err := ReadCSVFromFile[_FacilityRow](file, ',')
	if err != nil {
		return nil, err
	}
	facilities := NewArray[FacilitySite](rows.Length())
	for i, row := range rows {
		label := row.Label
		if label == "" {
			label = DefaultFacilityLabel(i)
		}
		facilities[i] = FacilitySite{
			Label:        label,
			Loc:          geo.Coord{row.Lon, row.Lat},
			Name:         row.Name,
			Municipality: row.Municipality,
		}
	}
	return facilities, nil
}
