package handlers

import (
	"net/http"

	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ChatHandler struct {
	chatService *services.ChatService
	validator   *validator.Validate
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
	}
}

// Chat proxies an assistant conversation turn to the upstream model
func (h *ChatHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "Assistant is unavailable, please try again later", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply generated successfully", gin.H{"reply": reply})
}
