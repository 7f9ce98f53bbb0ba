package services

import (
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"
)

type AnalyticsService struct {
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
	toiletRepo    *repository.ToiletRepository
	binRepo       *repository.BinRepository
}

func NewAnalyticsService(complaintRepo *repository.ComplaintRepository, userRepo *repository.UserRepository, toiletRepo *repository.ToiletRepository, binRepo *repository.BinRepository) *AnalyticsService {
	return &AnalyticsService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		toiletRepo:    toiletRepo,
		binRepo:       binRepo,
	}
}

type DashboardStats struct {
	TotalComplaints    int64   `json:"totalComplaints"`
	ResolvedComplaints int64   `json:"resolvedComplaints"`
	PendingComplaints  int64   `json:"pendingComplaints"`
	TotalCitizens      int64   `json:"totalCitizens"`
	TotalOfficials     int64   `json:"totalOfficials"`
	TotalToilets       int64   `json:"totalToilets"`
	TotalBins          int64   `json:"totalBins"`
	AverageRating      float64 `json:"averageRating"`
}

func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	total, err := s.complaintRepo.Count()
	if err != nil {
		return nil, err
	}
	resolved, err := s.complaintRepo.CountByStatus(models.StatusResolved)
	if err != nil {
		return nil, err
	}
	pending, err := s.complaintRepo.CountNotStatus(models.StatusResolved)
	if err != nil {
		return nil, err
	}
	citizens, err := s.userRepo.CountByRole("citizen")
	if err != nil {
		return nil, err
	}
	officials, err := s.userRepo.CountByRole("official")
	if err != nil {
		return nil, err
	}
	toilets, err := s.toiletRepo.Count()
	if err != nil {
		return nil, err
	}
	bins, err := s.binRepo.Count()
	if err != nil {
		return nil, err
	}
	avgRating, err := s.toiletRepo.AverageRatingAcrossAll()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalComplaints:    total,
		ResolvedComplaints: resolved,
		PendingComplaints:  pending,
		TotalCitizens:      citizens,
		TotalOfficials:     officials,
		TotalToilets:       toilets,
		TotalBins:          bins,
		AverageRating:      avgRating,
	}, nil
}

func (s *AnalyticsService) CategoryBreakdown() ([]repository.CategoryCount, error) {
	return s.complaintRepo.CountByCategory()
}

// TrendPoint is one day of complaint volume.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklyTrend returns the last seven days of complaint counts, including
// zero entries for days with no complaints.
func (s *AnalyticsService) WeeklyTrend() ([]TrendPoint, error) {
	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	counts, err := s.complaintRepo.CountByDaySince(since)
	if err != nil {
		return nil, err
	}

	return fillTrend(since, 7, counts), nil
}

// fillTrend expands sparse per-day counts into a dense series, one point
// per day starting at since.
func fillTrend(since time.Time, days int, counts []repository.DayCount) []TrendPoint {
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.Date] = c.Count
	}

	trend := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, TrendPoint{Date: day, Count: byDay[day]})
	}

	return trend
}
