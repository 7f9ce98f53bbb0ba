package services

import (
	"errors"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertService struct {
	alertRepo *repository.AlertRepository
}

func NewAlertService(alertRepo *repository.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

type CreateAlertRequest struct {
	Title     string    `json:"title" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Type      string    `json:"type" validate:"omitempty,oneof=Info Warning Critical Success"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AlertService) Create(actor models.Actor, req *CreateAlertRequest) (*models.Alert, error) {
	createdBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	alertType := req.Type
	if alertType == "" {
		alertType = "Info"
	}

	expiresAt := req.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(48 * time.Hour)
	}

	alert := &models.Alert{
		Title:     req.Title,
		Message:   req.Message,
		Type:      alertType,
		CreatedBy: createdBy,
		IsActive:  true,
		ExpiresAt: expiresAt,
	}

	return s.alertRepo.Create(alert)
}

func (s *AlertService) ListActive() ([]*models.Alert, error) {
	return s.alertRepo.FindActive()
}
