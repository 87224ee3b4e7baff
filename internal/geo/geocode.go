// Package geo geocodes cities and renders route maps between them.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/ratelimit"
)

// ErrNotFound is returned when the geocoding service has no result for a place.
var ErrNotFound = errors.New("place not found")

// Geocoder resolves place names through the Google Geocoding API.
type Geocoder struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter

	cache map[string]model.Coordinate
}

// APIKey reads GOOGLE_MAPS_API_KEY from the environment.
func APIKey() (string, error) {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		return "", fmt.Errorf("GOOGLE_MAPS_API_KEY environment variable not set")
	}
	return key, nil
}

// NewGeocoder creates a Geocoder using the GOOGLE_MAPS_API_KEY env var.
func NewGeocoder(cfg config.MapsConfig) (*Geocoder, error) {
	key, err := APIKey()
	if err != nil {
		return nil, err
	}
	return &Geocoder{
		APIKey:     key,
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Limiter:    ratelimit.New(cfg.RateLimit),
	}, nil
}

// Place formats the geocoding query for a city.
func Place(city, country string) string {
	if country == "" {
		return city
	}
	return city + ", " + country
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location model.Coordinate `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the coordinate of the first result for place. Results are
// memoized for the lifetime of the Geocoder.
func (g *Geocoder) Geocode(ctx context.Context, place string) (model.Coordinate, error) {
	if c, ok := g.cache[place]; ok {
		return c, nil
	}

	if err := g.Limiter.Wait(ctx); err != nil {
		return model.Coordinate{}, err
	}

	q := url.Values{}
	q.Set("address", place)
	q.Set("key", g.APIKey)
	req, err := http.NewRequestWithContext(ctx, "GET", g.BaseURL+"/maps/api/geocode/json?"+q.Encode(), nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("geocoding %q: %w", place, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("geocoding %q: status %d", place, resp.StatusCode)
	}

	var gr geocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return model.Coordinate{}, fmt.Errorf("parsing response: %w", err)
	}

	switch {
	case gr.Status == "ZERO_RESULTS" || (gr.Status == "OK" && len(gr.Results) == 0):
		return model.Coordinate{}, fmt.Errorf("%w: %q", ErrNotFound, place)
	case gr.Status != "OK":
		return model.Coordinate{}, fmt.Errorf("geocoding %q: %s %s", place, gr.Status, gr.ErrorMessage)
	}

	c := gr.Results[0].Geometry.Location
	if g.cache == nil {
		g.cache = make(map[string]model.Coordinate)
	}
	g.cache[place] = c
	return c, nil
}

// Locate geocodes both ends of a city pair.
func (g *Geocoder) Locate(ctx context.Context, p model.CityPair) (dep, dest model.Coordinate, err error) {
	if dep, err = g.Geocode(ctx, Place(p.DepartureCity, p.DepartureCountry)); err != nil {
		return dep, dest, err
	}
	dest, err = g.Geocode(ctx, Place(p.DestinationCity, p.DestinationCountry))
	return dep, dest, err
}
