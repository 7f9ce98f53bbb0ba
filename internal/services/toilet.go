package services

import (
	"errors"
	"log"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pointsPerReview = 5

type ToiletService struct {
	toiletRepo *repository.ToiletRepository
	reviewRepo *repository.ReviewRepository
	users      PointsStore
}

func NewToiletService(toiletRepo *repository.ToiletRepository, reviewRepo *repository.ReviewRepository, users PointsStore) *ToiletService {
	return &ToiletService{
		toiletRepo: toiletRepo,
		reviewRepo: reviewRepo,
		users:      users,
	}
}

type CreateToiletRequest struct {
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	Lat        float64  `json:"lat" validate:"latitude"`
	Lng        float64  `json:"lng" validate:"longitude"`
	Facilities []string `json:"facilities"`
	Status     string   `json:"status" validate:"omitempty,oneof=Operational Maintenance Closed"`
}

func (s *ToiletService) Create(actor models.Actor, req *CreateToiletRequest) (*models.Toilet, error) {
	addedBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	status := req.Status
	if status == "" {
		status = models.ToiletOperational
	}

	toilet := &models.Toilet{
		Name:    req.Name,
		Address: req.Address,
		Location: models.Location{
			Lat:     req.Lat,
			Lng:     req.Lng,
			Address: req.Address,
		},
		Facilities: req.Facilities,
		Status:     status,
		AddedBy:    addedBy,
	}

	return s.toiletRepo.Create(toilet)
}

// List returns toilets, optionally filtered to those within radiusKm of a
// point when lat/lng are given.
func (s *ToiletService) List(lat, lng, radiusKm float64) ([]*models.Toilet, error) {
	if lat != 0 || lng != 0 {
		if radiusKm <= 0 {
			radiusKm = 5
		}
		return s.toiletRepo.FindInRadius(lat, lng, radiusKm)
	}
	return s.toiletRepo.FindAll(0)
}

func (s *ToiletService) GetByID(id string) (*models.Toilet, error) {
	return s.toiletRepo.FindByID(id)
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// AddReview records a user's review of a toilet, one per user per toilet,
// and recomputes the toilet's aggregate rating.
func (s *ToiletService) AddReview(actor models.Actor, toiletID string, req *CreateReviewRequest) (*models.Review, error) {
	userOID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	toiletOID, err := primitive.ObjectIDFromHex(toiletID)
	if err != nil {
		return nil, errors.New("invalid toilet id")
	}

	if _, err := s.toiletRepo.FindByID(toiletID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.FindByUserAndToilet(userOID, toiletOID); err == nil {
		return nil, errors.New("you have already reviewed this toilet")
	}

	review := &models.Review{
		UserID:   userOID,
		ToiletID: toiletOID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	created, err := s.reviewRepo.Create(review)
	if err != nil {
		return nil, err
	}

	average, count, err := s.reviewRepo.RatingAggregate(toiletOID)
	if err != nil {
		log.Printf("failed to aggregate ratings for toilet %s: %v", toiletID, err)
	} else if err := s.toiletRepo.UpdateRating(toiletID, average, count); err != nil {
		log.Printf("failed to update rating for toilet %s: %v", toiletID, err)
	}

	if err := s.users.AddPoints(actor.ID, pointsPerReview); err != nil {
		log.Printf("failed to award points to %s: %v", actor.ID, err)
	}

	return created, nil
}

func (s *ToiletService) ListReviews(toiletID string) ([]*models.Review, error) {
	return s.reviewRepo.FindByToilet(toiletID)
}
