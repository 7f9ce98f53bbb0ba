package handlers

import (
	"net/http"

	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard returns the headline platform counters
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve dashboard stats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetCategoryBreakdown returns complaint counts per category
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	breakdown, err := h.analyticsService.CategoryBreakdown()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve category breakdown", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category breakdown retrieved successfully", breakdown)
}

// GetWeeklyTrend returns the 7-day complaint volume trend
func (h *AnalyticsHandler) GetWeeklyTrend(c *gin.Context) {
	trend, err := h.analyticsService.WeeklyTrend()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve weekly trend", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Weekly trend retrieved successfully", trend)
}
