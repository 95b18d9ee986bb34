package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/danielcarreno/foodrush-backend/pkg/redis"
)

// RedisCache caches geocode results in Redis with a TTL. Misses and transport
// errors both fall through to the remote lookup.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache builds a redis-backed geocode cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) (*RedisCache, error) {
	if client == nil {
		return nil, errors.New("redis client required for geocode cache")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns the cached coordinates for the address, if present.
func (c *RedisCache) Get(ctx context.Context, address string) (LatLng, bool, error) {
	raw, err := c.client.Get(ctx, redis.GeocodeKey(address))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return LatLng{}, false, nil
		}
		return LatLng{}, false, err
	}
	var location LatLng
	if err := json.Unmarshal([]byte(raw), &location); err != nil {
		return LatLng{}, false, err
	}
	return location, true, nil
}

// Set stores the coordinates for the address.
func (c *RedisCache) Set(ctx context.Context, address string, location LatLng) error {
	payload, err := json.Marshal(location)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redis.GeocodeKey(address), payload, c.ttl)
}
