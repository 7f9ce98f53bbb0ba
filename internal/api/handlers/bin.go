package handlers

import (
	"net/http"
	"strings"

	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BinHandler struct {
	binService *services.BinService
	validator  *validator.Validate
}

func NewBinHandler(binService *services.BinService) *BinHandler {
	return &BinHandler{
		binService: binService,
		validator:  validator.New(),
	}
}

// CreateBin registers a new smart bin
func (h *BinHandler) CreateBin(c *gin.Context) {
	var req services.CreateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bin, err := h.binService.Create(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create bin", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bin created successfully", bin)
}

// GetBins lists all bins with their current fill state
func (h *BinHandler) GetBins(c *gin.Context) {
	bins, err := h.binService.List()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve bins", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bins retrieved successfully", bins)
}

// EmptyBin resets a bin after collection
func (h *BinHandler) EmptyBin(c *gin.Context) {
	bin, err := h.binService.Empty(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		utils.ErrorResponse(c, status, "Failed to empty bin", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bin emptied successfully", bin)
}
