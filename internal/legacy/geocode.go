// Package legacy holds thin clients for the endpoints still served by the
// old REST API.
package legacy

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/OyhamburoDev/luna-backend/internal/platform/httpclient"
)

// GeocodeResult is the input/output contract with the legacy geocoder. Its
// internals (provider, precision) are not this service's concern.
type GeocodeResult struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address"`
}

// GeocodeClient calls the legacy geocoding endpoints.
type GeocodeClient struct {
	http *httpclient.Client
}

// NewGeocodeClient creates a GeocodeClient against baseURL. An empty baseURL
// yields a client whose calls fail with a configuration error.
func NewGeocodeClient(baseURL string) *GeocodeClient {
	return &GeocodeClient{http: httpclient.New(baseURL, httpclient.DefaultTimeout)}
}

// IsConfigured reports whether a base URL was provided.
func (c *GeocodeClient) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// Forward resolves a free-text address to coordinates.
func (c *GeocodeClient) Forward(ctx context.Context, address string) (GeocodeResult, error) {
	if strings.TrimSpace(address) == "" {
		return GeocodeResult{}, fmt.Errorf("geocode: empty address")
	}
	var out GeocodeResult
	path := "/geocode?address=" + url.QueryEscape(address)
	if err := c.http.GetJSON(ctx, path, &out); err != nil {
		return GeocodeResult{}, err
	}
	return out, nil
}

// Reverse resolves coordinates to a display address.
func (c *GeocodeClient) Reverse(ctx context.Context, lat, lng float64) (GeocodeResult, error) {
	var out GeocodeResult
	path := fmt.Sprintf("/geocode/reverse?lat=%f&lng=%f", lat, lng)
	if err := c.http.GetJSON(ctx, path, &out); err != nil {
		return GeocodeResult{}, err
	}
	return out, nil
}
