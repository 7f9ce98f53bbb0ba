package handlers

import (
	"net/http"

	"civicpulse-backend/internal/triage"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TriageHandler struct {
	classifier *triage.Classifier
	validator  *validator.Validate
}

func NewTriageHandler(classifier *triage.Classifier) *TriageHandler {
	return &TriageHandler{
		classifier: classifier,
		validator:  validator.New(),
	}
}

type triageRequest struct {
	Text string `json:"text" validate:"required,min=3,max=2000"`
}

// Analyze classifies free-form complaint text into a category and severity.
// Public and side-effect free; clients use it to pre-fill the complaint form.
func (h *TriageHandler) Analyze(c *gin.Context) {
	var req triageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result := h.classifier.Analyze(req.Text)
	utils.SuccessResponse(c, http.StatusOK, "Text analyzed successfully", result)
}
