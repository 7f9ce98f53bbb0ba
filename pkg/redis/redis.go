package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"civicpulse-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with a health surface the API exposes.
type Client struct {
	client *redis.Client
	config config.RedisConfig
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

// NewClient creates a Redis client. A failed initial ping is logged but not
// fatal; rate limiting and caching degrade gracefully without Redis.
func NewClient(cfg config.RedisConfig) *Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	c := &Client{client: client, config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection test failed: %v", err)
	} else {
		log.Printf("Redis connected successfully at %s", cfg.Addr)
	}

	return c
}

// NewClientFromRedis wraps an existing go-redis client. Intended for tests
// backed by miniredis.
func NewClientFromRedis(client *redis.Client) *Client {
	return &Client{client: client}
}

// GetClient returns the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// HealthCheck pings Redis and reports connection status.
func (c *Client) HealthCheck() HealthStatus {
	status := HealthStatus{
		ConnectionInfo: c.config.Addr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := c.client.Ping(ctx).Err(); err != nil {
		status.Error = fmt.Sprintf("ping failed: %v", err)
		return status
	}

	status.IsConnected = true
	status.ResponseTime = time.Since(start)
	return status
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
