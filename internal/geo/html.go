package geo

import (
	"html/template"
	"io"

	"github.com/filatov87/SEO-BOG/internal/model"
)

// HTMLMap is an interactive route map page.
type HTMLMap struct {
	Departure   string
	Destination string
	From        model.Coordinate
	To          model.Coordinate
	APIKey      string
	Language    string
	Size        int
}

var htmlMapTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Departure}} - {{.Destination}}</title>
<style>
body, html { margin: 0; padding: 0; height: 100%; overflow: hidden; }
#map { width: {{.Size}}px; height: {{.Size}}px; }
</style>
<script src="https://maps.googleapis.com/maps/api/js?key={{.APIKey}}&language={{.Language}}"></script>
</head>
<body>
<div id="map"></div>
<script>
function initMap() {
  var map = new google.maps.Map(document.getElementById('map'), {mapTypeId: 'roadmap', disableDefaultUI: true});
  var from = {lat: {{.From.Lat}}, lng: {{.From.Lng}}};
  var to = {lat: {{.To.Lat}}, lng: {{.To.Lng}}};
  var bounds = new google.maps.LatLngBounds();
  bounds.extend(from);
  bounds.extend(to);
  map.fitBounds(bounds);
  new google.maps.Polyline({
    path: [from, to],
    geodesic: true,
    strokeColor: '#0000FF',
    strokeOpacity: 1.0,
    strokeWeight: 2,
    map: map
  });
}
document.addEventListener('DOMContentLoaded', initMap);
</script>
</body>
</html>
`))

// RenderHTMLMap writes a self-contained page drawing the route with the
// Maps JavaScript API.
func RenderHTMLMap(w io.Writer, m HTMLMap) error {
	return htmlMapTmpl.Execute(w, m)
}
