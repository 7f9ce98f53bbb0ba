package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON-over-Redis cache used for read-heavy, slowly
// changing payloads like the leaderboard.
type Cache struct {
	client    *redis.Client
	keyPrefix string
}

func New(client *redis.Client, keyPrefix string) *Cache {
	if keyPrefix == "" {
		keyPrefix = "civicpulse:"
	}
	return &Cache{client: client, keyPrefix: keyPrefix}
}

// Get unmarshals the cached value at key into dest. Returns found=false on
// a cache miss.
func (c *Cache) Get(key string, dest interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value at key as JSON with the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err()
}

// Delete drops a cached key. Used to invalidate after writes that change
// the cached view.
func (c *Cache) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return c.client.Del(ctx, c.keyPrefix+key).Err()
}
