package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"communitypulse/internal/cache"
	"communitypulse/internal/observability"
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a free-text location into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*Coordinates, error)
}

// NominatimGeocoder resolves locations against a Nominatim-compatible
// search endpoint. Results are cached; Nominatim's usage policy asks for
// a descriptive User-Agent and low request rates.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatimGeocoder creates a geocoder against the given base URL.
func NewNominatimGeocoder(baseURL, userAgent string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks the location up, serving repeats from the cache.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) (*Coordinates, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("location is empty")
	}

	key := cache.GeocodeKey(strings.ToLower(location))
	coords, err := cache.Aside(ctx, key, cache.GeocodeTTL, func(ctx context.Context) (*Coordinates, error) {
		return g.lookup(ctx, location)
	})
	if err != nil {
		observability.GeocodeLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.GeocodeLookups.WithLabelValues("ok").Inc()
	return coords, nil
}

func (g *NominatimGeocoder) lookup(ctx context.Context, location string) (*Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(location))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocode response malformed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for location %q", location)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode latitude malformed: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode longitude malformed: %w", err)
	}
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
