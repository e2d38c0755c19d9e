package osmnet

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// MapOptions Interactive map settings
type MapOptions struct {
	// Center Initial map center. Zero value means center of features bound
	Center orb.Point
	Title  string
	Color  string
	Zoom   int
	Weight float64
}

// DefaultMapOptions returns blue 3px lines at zoom 13
func DefaultMapOptions() MapOptions {
	return MapOptions{
		Title:  "osmnet",
		Color:  "blue",
		Zoom:   13,
		Weight: 3,
	}
}

type mapPage struct {
	Title   string
	Color   string
	GeoJSON string
	Lat     float64
	Lon     float64
	Zoom    int
	Weight  float64
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{html .Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
</style>
</head>
<body>
<div id="map"></div>
<script type="text/javascript">
var map = L.map("map").setView([{{.Lat}}, {{.Lon}}], {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
	attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var data = {{.GeoJSON}};
L.geoJSON(data, {
	style: function () {
		return { color: "{{js .Color}}", weight: {{.Weight}} };
	},
	onEachFeature: function (feature, layer) {
		layer.bindPopup(feature.id + " (" + feature.properties.geom_type + ")");
	}
}).addTo(map);
</script>
</body>
</html>
`))

// ExportHTML writes minified Leaflet page rendering features
func ExportHTML(w io.Writer, features FeatureCollection, opts MapOptions) error {
	data, err := ToGeoJSON(features).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal features")
	}
	center := opts.Center
	if center == (orb.Point{}) && len(features) != 0 {
		bound := features[0].Geometry.Bound()
		for _, feature := range features[1:] {
			bound = bound.Union(feature.Geometry.Bound())
		}
		center = bound.Center()
	}
	page := mapPage{
		Title:   opts.Title,
		Color:   opts.Color,
		GeoJSON: scriptSafe(string(data)),
		Lat:     center.Lat(),
		Lon:     center.Lon(),
		Zoom:    opts.Zoom,
		Weight:  opts.Weight,
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, page); err != nil {
		return errors.Wrap(err, "Can't execute map template")
	}

	// Inline script is not minified
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	if err := m.Minify("text/html", w, &buf); err != nil {
		return errors.Wrap(err, "Can't minify map page")
	}
	return nil
}

// scriptSafe prevents JSON text from closing inline <script> element
func scriptSafe(data string) string {
	replacer := strings.NewReplacer("<", `\u003c`, ">", `\u003e`)
	return replacer.Replace(data)
}
