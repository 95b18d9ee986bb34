package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://maps.googleapis.com"
	geocodePath                = "/maps/api/geocode/json"
	statusOK                   = "OK"
	statusZeroResults          = "ZERO_RESULTS"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var errAPIKeyRequired = errors.New("google maps api key is required")

// LatLng is the coordinate pair returned for a resolved address.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Cache stores resolved coordinates keyed by address.
type Cache interface {
	Get(ctx context.Context, address string) (LatLng, bool, error)
	Set(ctx context.Context, address string, location LatLng) error
}

// Client wraps the Google geocoding API used to place restaurant markers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      Cache
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the geocoding base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithCache attaches a result cache consulted before the remote call.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient builds the geocoding client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Geocode resolves a free-text address into coordinates. A ZERO_RESULTS
// answer maps to NotFound; every other non-OK answer is a dependency error.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	if c == nil {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeDependency, "geocode client not configured")
	}
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}

	if c.cache != nil {
		if location, ok, err := c.cache.Get(ctx, trimmed); err == nil && ok {
			return location, nil
		}
	}

	query := url.Values{}
	query.Set("address", trimmed)
	query.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.baseURL, "/"), geocodePath, query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return LatLng{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build geocode request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return LatLng{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return LatLng{}, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "geocode request failed")
	}

	var apiResp struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return LatLng{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode geocode response")
	}

	if apiResp.Status == statusZeroResults || (apiResp.Status == statusOK && len(apiResp.Results) == 0) {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeNotFound, "address could not be geocoded")
	}
	if apiResp.Status != statusOK {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("geocode service returned %s", apiResp.Status))
	}

	location := apiResp.Results[0].Geometry.Location

	if c.cache != nil {
		_ = c.cache.Set(ctx, trimmed, location)
	}

	return location, nil
}
