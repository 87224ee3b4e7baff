package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/ratelimit"
)

// StaticMapOptions styles a static route map.
type StaticMapOptions struct {
	BaseURL string
	Size    int
	Color   string
	Weight  int
	APIKey  string
}

// StaticMapOptionsFrom builds options from the maps config.
func StaticMapOptionsFrom(cfg config.MapsConfig, key string) StaticMapOptions {
	return StaticMapOptions{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Size:    cfg.Size,
		Color:   cfg.Color,
		Weight:  cfg.Weight,
		APIKey:  key,
	}
}

// StaticMapURL returns the Static Maps URL of a geodesic path between two points.
func StaticMapURL(dep, dest model.Coordinate, opts StaticMapOptions) string {
	size := strconv.Itoa(opts.Size)
	path := fmt.Sprintf("color:%s|weight:%d|geodesic:true|%s|%s", opts.Color, opts.Weight, latLng(dep), latLng(dest))

	q := url.Values{}
	q.Set("size", size+"x"+size)
	q.Set("maptype", "roadmap")
	q.Set("path", path)
	q.Set("key", opts.APIKey)
	return opts.BaseURL + "/maps/api/staticmap?" + q.Encode()
}

func latLng(c model.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// MapClient downloads rendered map images.
type MapClient struct {
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
}

// NewMapClient creates a MapClient paced by the maps rate limit.
func NewMapClient(cfg config.MapsConfig) *MapClient {
	return &MapClient{
		HTTPClient: &http.Client{Timeout: time.Minute},
		Limiter:    ratelimit.New(cfg.RateLimit),
	}
}

// Fetch downloads the image at url.
func (c *MapClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching map: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching map: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	return data, nil
}

// FileName returns <dep>_<dest>_map_<ddmm><ext>.
func FileName(departure, destination string, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_map_%s%s", departure, destination, now.Format("0201"), ext)
}

// RouteName identifies a route in the map ledger.
func RouteName(departure, destination string) string {
	return departure + "_" + destination
}
