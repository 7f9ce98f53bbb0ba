package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter caps how many actions a user may perform per rolling day.
type Limiter interface {
	Allow(userID string) (bool, int, error)
}

// DailyLimiter implements Limiter using Redis counters with a 24h expiry.
type DailyLimiter struct {
	client    *redis.Client
	limit     int
	keyPrefix string
}

func NewDailyLimiter(client *redis.Client, limit int, keyPrefix string) *DailyLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:daily:"
	}
	return &DailyLimiter{
		client:    client,
		limit:     limit,
		keyPrefix: keyPrefix,
	}
}

// Allow increments the user's daily counter and reports whether the action
// is within the limit, along with how many submissions remain. The window
// starts at the user's first action and expires 24 hours later.
func (l *DailyLimiter) Allow(userID string) (bool, int, error) {
	if l.limit <= 0 {
		return true, 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := l.keyPrefix + userID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expiry failed: %w", err)
		}
	}

	if count > int64(l.limit) {
		return false, 0, nil
	}

	return true, l.limit - int(count), nil
}
