package handlers

import (
	"net/http"
	"strings"

	"civicpulse-backend/internal/api/middleware"
	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type EventHandler struct {
	eventService *services.EventService
	validator    *validator.Validate
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator.New(),
	}
}

// CreateEvent schedules a community event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	event, err := h.eventService.Create(actor, &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create event", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Event created successfully", event)
}

// GetEvents lists events soonest first
func (h *EventHandler) GetEvents(c *gin.Context) {
	events, err := h.eventService.List()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve events", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Events retrieved successfully", events)
}

// JoinEvent signs the caller up as an attendee
func (h *EventHandler) JoinEvent(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	event, err := h.eventService.Join(actor, c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			status = http.StatusNotFound
		case strings.Contains(err.Error(), "already joined"):
			status = http.StatusConflict
		}
		utils.ErrorResponse(c, status, "Failed to join event", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Joined event successfully", event)
}
