package services

import (
	"log"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/pkg/cache"
)

const (
	leaderboardSize     = 10
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
)

// LeaderboardEntry is one row of the citizen points ranking.
type LeaderboardEntry struct {
	Rank   int      `json:"rank"`
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

// RankingStore reads the citizen ranking from persistent storage.
type RankingStore interface {
	FindTopCitizens(limit int64) ([]*models.User, error)
}

type LeaderboardService struct {
	users RankingStore
	cache *cache.Cache
}

func NewLeaderboardService(users RankingStore, c *cache.Cache) *LeaderboardService {
	return &LeaderboardService{
		users: users,
		cache: c,
	}
}

// Top returns the ten highest scoring citizens. The ranking is served from
// cache when fresh; a miss falls through to Mongo and repopulates it.
func (s *LeaderboardService) Top() ([]LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []LeaderboardEntry
		found, err := s.cache.Get(leaderboardCacheKey, &cached)
		if err != nil {
			log.Printf("leaderboard cache read failed: %v", err)
		} else if found {
			return cached, nil
		}
	}

	users, err := s.users.FindTopCitizens(leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: user.ID.Hex(),
			Name:   user.Name,
			Points: user.Points,
			Badges: user.Badges,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
			log.Printf("leaderboard cache write failed: %v", err)
		}
	}

	return entries, nil
}
