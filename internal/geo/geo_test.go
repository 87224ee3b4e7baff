package geo

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/model"
)

func TestGeocode(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "k" {
			t.Errorf("missing key")
		}
		switch r.URL.Query().Get("address") {
		case "Lima, Peru":
			w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":-12.04,"lng":-77.03}}}]}`))
		case "Atlantis":
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		default:
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`))
		}
	}))
	defer srv.Close()

	g := &Geocoder{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()}
	ctx := context.Background()

	c, err := g.Geocode(ctx, Place("Lima", "Peru"))
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if c != (model.Coordinate{Lat: -12.04, Lng: -77.03}) {
		t.Errorf("unexpected coordinate %+v", c)
	}
	if _, err := g.Geocode(ctx, "Lima, Peru"); err != nil || calls != 1 {
		t.Errorf("expected memoized result, calls=%d err=%v", calls, err)
	}

	if _, err := g.Geocode(ctx, "Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = g.Geocode(ctx, "Paris, France")
	if err == nil || errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), "REQUEST_DENIED") {
		t.Errorf("expected service error, got %v", err)
	}
}

func TestLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == "Cusco" {
			w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":-13.5,"lng":-71.9}}}]}`))
			return
		}
		w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":-12,"lng":-77}}}]}`))
	}))
	defer srv.Close()

	g := &Geocoder{BaseURL: srv.URL, HTTPClient: srv.Client()}
	dep, dest, err := g.Locate(context.Background(), model.CityPair{DepartureCity: "Lima", DepartureCountry: "Peru", DestinationCity: "Cusco"})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if dep.Lat != -12 || dest.Lat != -13.5 {
		t.Errorf("unexpected coordinates %+v %+v", dep, dest)
	}
}

func TestStaticMapURL(t *testing.T) {
	opts := StaticMapOptionsFrom(config.Defaults().Maps, "secret")
	raw := StaticMapURL(model.Coordinate{Lat: 40.7128, Lng: -74.006}, model.Coordinate{Lat: 51.5074, Lng: -0.1278}, opts)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing URL: %v", err)
	}
	if u.Host != "maps.googleapis.com" || u.Path != "/maps/api/staticmap" {
		t.Errorf("unexpected endpoint %s", raw)
	}
	q := u.Query()
	want := map[string]string{
		"size":    "1000x1000",
		"maptype": "roadmap",
		"path":    "color:0x0000ff|weight:5|geodesic:true|40.7128,-74.006|51.5074,-0.1278",
		"key":     "secret",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("%s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "nope", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG"))
	}))
	defer srv.Close()

	c := &MapClient{HTTPClient: srv.Client()}
	data, err := c.Fetch(context.Background(), srv.URL+"/map")
	if err != nil || string(data) != "\x89PNG" {
		t.Errorf("fetch = %q, %v", data, err)
	}
	if _, err := c.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := FileName("New York", "London", now, ".png"); got != "New York_London_map_0703.png" {
		t.Errorf("FileName = %q", got)
	}
}

func TestRenderHTMLMap(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHTMLMap(&buf, HTMLMap{
		Departure:   "Lima",
		Destination: "<Cusco>",
		From:        model.Coordinate{Lat: -12.04, Lng: -77.03},
		To:          model.Coordinate{Lat: -13.53, Lng: -71.96},
		APIKey:      "k",
		Language:    "es",
		Size:        1000,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`lang="es"`, "-12.04", "-71.96", "&lt;Cusco&gt;", "width: 1000px", "new google.maps.Polyline"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered map missing %q", want)
		}
	}
}
