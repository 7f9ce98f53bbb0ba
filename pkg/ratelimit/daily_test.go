package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLimiter(t *testing.T, limit int) (*DailyLimiter, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDailyLimiter(client, limit, "test:daily:"), mr
}

func TestDailyLimiterAllowsUpToLimit(t *testing.T) {
	limiter, _ := setupTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		allowed, remaining, err := limiter.Allow("user1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, _, err := limiter.Allow("user1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestDailyLimiterPerUser(t *testing.T) {
	limiter, _ := setupTestLimiter(t, 1)

	allowed, _, err := limiter.Allow("user1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow("user1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, err = limiter.Allow("user2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDailyLimiterWindowReset(t *testing.T) {
	limiter, mr := setupTestLimiter(t, 1)

	allowed, _, err := limiter.Allow("user1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow("user1")
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(25 * time.Hour)

	allowed, _, err = limiter.Allow("user1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDailyLimiterDisabled(t *testing.T) {
	limiter, _ := setupTestLimiter(t, 0)

	for i := 0; i < 50; i++ {
		allowed, _, err := limiter.Allow("user1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
