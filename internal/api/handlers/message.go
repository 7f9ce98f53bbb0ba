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

type MessageHandler struct {
	messageService *services.MessageService
	validator      *validator.Validate
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator.New(),
	}
}

// PostMessage appends a message to a complaint thread
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req services.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	message, err := h.messageService.Post(actor, c.Param("id"), &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			status = http.StatusNotFound
		case strings.Contains(err.Error(), "not authorized"):
			status = http.StatusForbidden
		}
		utils.ErrorResponse(c, status, "Failed to post message", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Message posted successfully", message)
}

// GetThread lists a complaint's messages oldest first
func (h *MessageHandler) GetThread(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	messages, err := h.messageService.ListThread(actor, c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			status = http.StatusNotFound
		case strings.Contains(err.Error(), "not authorized"):
			status = http.StatusForbidden
		}
		utils.ErrorResponse(c, status, "Failed to retrieve messages", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", messages)
}
