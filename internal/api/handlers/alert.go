package handlers

import (
	"net/http"

	"civicpulse-backend/internal/api/middleware"
	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AlertHandler struct {
	alertService *services.AlertService
	validator    *validator.Validate
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		validator:    validator.New(),
	}
}

// CreateAlert publishes a city-wide alert banner
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req services.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	alert, err := h.alertService.Create(actor, &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Alert created successfully", alert)
}

// GetActiveAlerts lists unexpired alerts newest first
func (h *AlertHandler) GetActiveAlerts(c *gin.Context) {
	alerts, err := h.alertService.ListActive()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve alerts", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alerts retrieved successfully", alerts)
}
