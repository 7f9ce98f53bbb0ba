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

type ComplaintHandler struct {
	complaintService *services.ComplaintService
	validator        *validator.Validate
}

func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		validator:        validator.New(),
	}
}

// CreateComplaint files a new complaint for the authenticated citizen
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req services.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	complaint, err := h.complaintService.Create(actor, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			status = http.StatusBadRequest
		}
		utils.ErrorResponse(c, status, "Failed to create complaint", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Complaint filed successfully", complaint)
}

// GetComplaints lists the queue visible to the caller
func (h *ComplaintHandler) GetComplaints(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	complaints, err := h.complaintService.ListForActor(actor)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve complaints", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaints retrieved successfully", complaints)
}

// GetComplaint returns a single complaint by id
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	complaint, err := h.complaintService.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		utils.ErrorResponse(c, status, "Failed to retrieve complaint", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaint retrieved successfully", complaint)
}

// UpdateComplaintStatus moves a complaint through its lifecycle
func (h *ComplaintHandler) UpdateComplaintStatus(c *gin.Context) {
	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	complaint, err := h.complaintService.UpdateStatus(actor, c.Param("id"), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		utils.ErrorResponse(c, status, "Failed to update complaint", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaint updated successfully", complaint)
}
