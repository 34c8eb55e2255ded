package widget

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/securewave/securewave_backend/config"
)

const (
	leafletStylesheet = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletScript     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

var (
	mapHead = template.Must(template.New("map-head").Parse(
		`<link rel="stylesheet" href="{{.Stylesheet}}">`))
	mapBody = template.Must(template.New("map-body").Parse(
		`<script src="{{.Script}}"></script>
<script>
document.addEventListener('DOMContentLoaded', function () {
  var el = document.getElementById({{.ContainerID}});
  if (!el) { return; }
  var center = [{{.Latitude}}, {{.Longitude}}];
  var map = L.map({{.ContainerID}}).setView(center, {{.Zoom}});
  L.tileLayer({{.TileURL}}, {maxZoom: {{.MaxZoom}}, attribution: {{.Attribution}}}).addTo(map);
  {{- if .Popup}}
  L.marker(center).addTo(map).bindPopup({{.Popup}}).openPopup();
  {{- else}}
  L.marker(center).addTo(map);
  {{- end}}
  window.addEventListener('resize', function () { map.invalidateSize(); });
});
</script>`))
)

// MapSettings locate the office marker and the tile source.
type MapSettings struct {
	ContainerID string  `json:"container_id"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	Zoom        int     `json:"zoom"`
	MaxZoom     int     `json:"max_zoom"`
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
	// Popup is the marker popup as HTML; title and text are escaped.
	Popup string `json:"popup,omitempty"`
}

type Map struct {
	cfg config.MapWidgetConfig
}

func NewMap(cfg config.MapWidgetConfig) *Map {
	return &Map{cfg: cfg}
}

func (m *Map) Name() string { return "map" }

func (m *Map) Initialize() (*Handle, error) {
	s := MapSettings{
		ContainerID: strings.TrimSpace(m.cfg.ContainerID),
		Latitude:    m.cfg.Latitude,
		Longitude:   m.cfg.Longitude,
		Zoom:        m.cfg.Zoom,
		MaxZoom:     m.cfg.MaxZoom,
		TileURL:     strings.TrimSpace(m.cfg.TileURL),
		Attribution: m.cfg.Attribution,
		Popup:       popupHTML(m.cfg.PopupTitle, m.cfg.PopupText),
	}
	if s.MaxZoom == 0 {
		s.MaxZoom = 19
	}

	switch {
	case s.ContainerID == "":
		return nil, invalid(m.Name(), "container id is required")
	case s.TileURL == "":
		return nil, invalid(m.Name(), "tile url is required")
	case s.Latitude < -90 || s.Latitude > 90:
		return nil, invalid(m.Name(), "latitude %v out of range", s.Latitude)
	case s.Longitude < -180 || s.Longitude > 180:
		return nil, invalid(m.Name(), "longitude %v out of range", s.Longitude)
	case s.MaxZoom < 0 || s.MaxZoom > 22:
		return nil, invalid(m.Name(), "max zoom %d out of range [0, 22]", s.MaxZoom)
	case s.Zoom < 0 || s.Zoom > s.MaxZoom:
		return nil, invalid(m.Name(), "zoom %d out of range [0, %d]", s.Zoom, s.MaxZoom)
	}

	head, err := render(mapHead, map[string]string{"Stylesheet": leafletStylesheet})
	if err != nil {
		return nil, err
	}
	body, err := render(mapBody, struct {
		MapSettings
		Script string
	}{s, leafletScript})
	if err != nil {
		return nil, err
	}
	return &Handle{Name: m.Name(), Head: head, Body: body, Settings: s}, nil
}

func popupHTML(title, text string) string {
	title, text = strings.TrimSpace(title), strings.TrimSpace(text)
	switch {
	case title == "" && text == "":
		return ""
	case text == "":
		return fmt.Sprintf("<b>%s</b>", html.EscapeString(title))
	case title == "":
		return html.EscapeString(text)
	}
	return fmt.Sprintf("<b>%s</b><br>%s", html.EscapeString(title), html.EscapeString(text))
}
