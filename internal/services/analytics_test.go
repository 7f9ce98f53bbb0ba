package services

import (
	"testing"
	"time"

	"civicpulse-backend/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestFillTrendZeroFillsMissingDays(t *testing.T) {
	since := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	trend := fillTrend(since, 7, []repository.DayCount{
		{Date: "2026-08-24", Count: 3},
		{Date: "2026-08-27", Count: 1},
	})

	assert.Len(t, trend, 7)
	assert.Equal(t, TrendPoint{Date: "2026-08-24", Count: 3}, trend[0])
	assert.Equal(t, TrendPoint{Date: "2026-08-25", Count: 0}, trend[1])
	assert.Equal(t, TrendPoint{Date: "2026-08-27", Count: 1}, trend[3])
	assert.Equal(t, TrendPoint{Date: "2026-08-30", Count: 0}, trend[6])
}

func TestFillTrendEmptyCounts(t *testing.T) {
	since := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	trend := fillTrend(since, 7, nil)

	assert.Len(t, trend, 7)
	for _, point := range trend {
		assert.Zero(t, point.Count)
	}
}
