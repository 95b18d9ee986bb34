package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
)

type mapCache struct {
	values map[string]LatLng
	sets   int
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string]LatLng{}}
}

func (c *mapCache) Get(_ context.Context, address string) (LatLng, bool, error) {
	location, ok := c.values[address]
	return location, ok, nil
}

func (c *mapCache) Set(_ context.Context, address string, location LatLng) error {
	c.values[address] = location
	c.sets++
	return nil
}

func geocodeServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}

func TestGeocodeResolvesAddress(t *testing.T) {
	server := geocodeServer(t, `{
		"status": "OK",
		"results": [{"geometry": {"location": {"lat": 40.7128, "lng": -74.006}}}]
	}`)
	defer server.Close()

	client, err := NewClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	location, err := client.Geocode(context.Background(), "New York, NY")
	require.NoError(t, err)
	assert.InDelta(t, 40.7128, location.Lat, 0.0001)
	assert.InDelta(t, -74.006, location.Lng, 0.0001)
}

func TestGeocodeZeroResults(t *testing.T) {
	server := geocodeServer(t, `{"status": "ZERO_RESULTS", "results": []}`)
	defer server.Close()

	client, err := NewClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Geocode(context.Background(), "nowhere at all")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestGeocodeDeniedStatus(t *testing.T) {
	server := geocodeServer(t, `{"status": "REQUEST_DENIED", "results": []}`)
	defer server.Close()

	client, err := NewClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Geocode(context.Background(), "somewhere")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestGeocodeEmptyAddress(t *testing.T) {
	client, err := NewClient("test-key")
	require.NoError(t, err)

	_, err = client.Geocode(context.Background(), "   ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGeocodeUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 1.5, "lng": 2.5}}}]
		}`))
	}))
	defer server.Close()

	cache := newMapCache()
	client, err := NewClient("test-key", WithBaseURL(server.URL), WithCache(cache))
	require.NoError(t, err)

	first, err := client.Geocode(context.Background(), "123 Main St")
	require.NoError(t, err)
	second, err := client.Geocode(context.Background(), "123 Main St")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)
}
