package services

import (
	"errors"
	"log"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pointsPerEventJoin = 2

type EventService struct {
	eventRepo *repository.EventRepository
	users     PointsStore
}

func NewEventService(eventRepo *repository.EventRepository, users PointsStore) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		users:     users,
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Type        string    `json:"type" validate:"omitempty,oneof='Cleanup Drive' 'Health Camp' 'Water Cut' Awareness Other"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required"`
}

func (s *EventService) Create(actor models.Actor, req *CreateEventRequest) (*models.Event, error) {
	createdBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	eventType := req.Type
	if eventType == "" {
		eventType = "Other"
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        eventType,
		Date:        req.Date,
		Location:    req.Location,
		CreatedBy:   createdBy,
		Attendees:   []primitive.ObjectID{},
	}

	return s.eventRepo.Create(event)
}

func (s *EventService) List() ([]*models.Event, error) {
	return s.eventRepo.FindAll()
}

// Join adds the user to the event's attendee list. Joining twice is
// rejected; a first join earns civic points.
func (s *EventService) Join(actor models.Actor, eventID string) (*models.Event, error) {
	userOID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	if err := s.eventRepo.AddAttendee(eventID, userOID); err != nil {
		return nil, err
	}

	if err := s.users.AddPoints(actor.ID, pointsPerEventJoin); err != nil {
		log.Printf("failed to award points to %s: %v", actor.ID, err)
	}

	return s.eventRepo.FindByID(eventID)
}
