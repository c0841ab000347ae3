// Package geo implements forward geocoding against the Nominatim
// (OpenStreetMap) search API. The geocoder is strictly best-effort: every
// failure mode maps to an error the workflow absorbs.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sharebite/donation-system/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the Nominatim client.
type Config struct {
	// BaseURL of the Nominatim instance, e.g. https://nominatim.openstreetmap.org.
	BaseURL string
	// UserAgent identifies this application; Nominatim's usage policy
	// requires a meaningful value.
	UserAgent string
	Timeout   time.Duration
}

// NominatimGeocoder resolves free-text addresses to coordinates.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatimGeocoder creates a geocoder from config. A default timeout is
// applied when none is provided.
func NewNominatimGeocoder(cfg Config) *NominatimGeocoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &NominatimGeocoder{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// searchResult is the subset of the Nominatim response we read. Lat/lon come
// back as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address. A nil result with a nil error means the
// address matched nothing.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode parse lon: %w", err)
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
