package services

import (
	"testing"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRankingStore struct {
	users []*models.User
	calls int
}

func (f *fakeRankingStore) FindTopCitizens(limit int64) ([]*models.User, error) {
	f.calls++
	if int64(len(f.users)) > limit {
		return f.users[:limit], nil
	}
	return f.users, nil
}

func newTestLeaderboard(t *testing.T, users []*models.User) (*LeaderboardService, *fakeRankingStore) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := &fakeRankingStore{users: users}
	return NewLeaderboardService(store, cache.New(client, "test:")), store
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	svc, _ := newTestLeaderboard(t, []*models.User{
		{ID: primitive.NewObjectID(), Name: "Asha", Points: 120, Badges: []string{"Cleanliness Champ"}},
		{ID: primitive.NewObjectID(), Name: "Ravi", Points: 85, Badges: []string{}},
	})

	entries, err := svc.Top()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Asha", entries[0].Name)
	assert.Equal(t, 120, entries[0].Points)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboardServedFromCache(t *testing.T) {
	svc, store := newTestLeaderboard(t, []*models.User{
		{ID: primitive.NewObjectID(), Name: "Asha", Points: 120, Badges: []string{}},
	})

	first, err := svc.Top()
	require.NoError(t, err)
	second, err := svc.Top()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls, "second read must hit the cache")
}
