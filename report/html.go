package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
)

var map_template = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Catchment {{.RunID}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
table.counts { border-collapse: collapse; background: white; font-size: 12px; }
table.counts td, table.counts th { border: 1px solid black; padding: 5px; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Lat}}, {{.Lon}}], {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
	attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
L.geoJSON({{.Edges}}, {
	style: function (f) { return { color: f.properties.color, weight: 5 }; }
}).addTo(map);
L.geoJSON({{.Origins}}, {
	pointToLayer: function (f, latlng) {
		return L.circleMarker(latlng, { radius: 4, color: "green" });
	}
}).addTo(map);
L.geoJSON({{.Facilities}}, {
	pointToLayer: function (f, latlng) {
		return L.marker(latlng).bindPopup("<b>" + f.properties.name + "</b><br>Municipality: " + f.properties.municipality);
	}
}).addTo(map);
var legend = L.control({ position: "topright" });
legend.onAdd = function () {
	var div = L.DomUtil.create("div");
	div.innerHTML = {{.Table}};
	return div;
};
legend.addTo(map);
</script>
</body>
</html>
`))

var table_template = template.Must(template.New("table").Parse(`<table class="counts"><thead><tr><th>Facility</th><th>Closest origins</th></tr></thead><tbody>
{{range .}}<tr><td>{{.Name}}</td><td>{{.Assigned}}</td></tr>
{{end}}</tbody></table>`))

type _MapData struct {
	RunID      string
	Lat        float64
	Lon        float64
	Zoom       int
	Edges      template.JS
	Origins    template.JS
	Facilities template.JS
	Table      string
}

// Renders a Leaflet page showing the tiered edges, origins and facilities.
func WriteHTMLMap(w io.Writer, run *Run) error {
	edges, err := _MarshalJS(TieredEdges(run))
	if err != nil {
		return err
	}
	origins, err := _MarshalJS(OriginFeatures(run))
	if err != nil {
		return err
	}
	facilities, err := _MarshalJS(FacilityFeatures(run))
	if err != nil {
		return err
	}
	summary := BuildSummary(run)
	var table strings.Builder
	if err := table_template.Execute(&table, summary.Facilities); err != nil {
		return err
	}

	center := run._MapCenter()
	zoom := run.Options.Zoom
	if zoom <= 0 {
		zoom = 12
	}
	return map_template.Execute(w, _MapData{
		RunID:      summary.RunID,
		Lat:        center.Lat(),
		Lon:        center.Lon(),
		Zoom:       zoom,
		Edges:      edges,
		Origins:    origins,
		Facilities: facilities,
		Table:      table.String(),
	})
}

func _MarshalJS(fc *geojson.FeatureCollection) (template.JS, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}
