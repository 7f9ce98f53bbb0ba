package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"civicpulse-backend/internal/api/middleware"
	"civicpulse-backend/internal/services"
	"civicpulse-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ToiletHandler struct {
	toiletService *services.ToiletService
	validator     *validator.Validate
}

func NewToiletHandler(toiletService *services.ToiletService) *ToiletHandler {
	return &ToiletHandler{
		toiletService: toiletService,
		validator:     validator.New(),
	}
}

// CreateToilet registers a public toilet
func (h *ToiletHandler) CreateToilet(c *gin.Context) {
	var req services.CreateToiletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	toilet, err := h.toiletService.Create(actor, &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create toilet", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Toilet added successfully", toilet)
}

// GetToilets lists toilets, optionally near ?lat=&lng=&radius= (km)
func (h *ToiletHandler) GetToilets(c *gin.Context) {
	lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
	lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	toilets, err := h.toiletService.List(lat, lng, radius)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve toilets", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Toilets retrieved successfully", toilets)
}

// GetToilet returns a single toilet by id
func (h *ToiletHandler) GetToilet(c *gin.Context) {
	toilet, err := h.toiletService.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		utils.ErrorResponse(c, status, "Failed to retrieve toilet", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Toilet retrieved successfully", toilet)
}

// CreateReview adds the caller's review of a toilet
func (h *ToiletHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	review, err := h.toiletService.AddReview(actor, c.Param("id"), &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			status = http.StatusNotFound
		case strings.Contains(err.Error(), "already reviewed"):
			status = http.StatusConflict
		}
		utils.ErrorResponse(c, status, "Failed to add review", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Review added successfully", review)
}

// GetReviews lists a toilet's reviews
func (h *ToiletHandler) GetReviews(c *gin.Context) {
	reviews, err := h.toiletService.ListReviews(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve reviews", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}
