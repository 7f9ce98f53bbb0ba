package services

import (
	"errors"
	"log"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/triage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStore is the slice of the complaint repository the service needs.
type ComplaintStore interface {
	Create(complaint *models.Complaint) (*models.Complaint, error)
	FindByID(id string) (*models.Complaint, error)
	FindAll() ([]*models.Complaint, error)
	FindByCreator(userID string) ([]*models.Complaint, error)
	FindByCategories(categories []string) ([]*models.Complaint, error)
	Update(id string, complaint *models.Complaint) (*models.Complaint, error)
}

// PointsStore awards civic points to users.
type PointsStore interface {
	AddPoints(id string, points int) error
}

// Notifier delivers status-change notifications out of band.
type Notifier interface {
	NotifyStatusChange(complaintID string, userID string, category, status, resolution string)
}

const (
	pointsPerComplaint = 10
)

type ComplaintService struct {
	complaints ComplaintStore
	users      PointsStore
	classifier *triage.Classifier
	notifier   Notifier
}

func NewComplaintService(complaints ComplaintStore, users PointsStore, classifier *triage.Classifier, notifier Notifier) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		users:      users,
		classifier: classifier,
		notifier:   notifier,
	}
}

type CreateComplaintRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=10"`
	Category    string  `json:"category" validate:"omitempty"`
	Severity    string  `json:"severity" validate:"omitempty,oneof=Low Medium High"`
	Lat         float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         float64 `json:"lng" validate:"omitempty,longitude"`
	Address     string  `json:"address"`
	MediaURL    string  `json:"mediaUrl" validate:"omitempty,url"`
}

// Create files a complaint for the given citizen. When the client did not
// pre-fill category or severity the triage classifier fills them from the
// complaint text.
func (s *ComplaintService) Create(actor models.Actor, req *CreateComplaintRequest) (*models.Complaint, error) {
	creatorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	// Category is a closed set: free-text values would never match any
	// department mapping and the complaint would be invisible to every
	// official queue.
	if req.Category != "" && !triage.IsCategory(req.Category) {
		return nil, errors.New("invalid complaint category")
	}

	category := req.Category
	severity := req.Severity
	if category == "" || severity == "" {
		result := s.classifier.Analyze(req.Title + " " + req.Description)
		if category == "" {
			category = result.Category
		}
		if severity == "" {
			severity = result.Severity
		}
	}

	complaint := &models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Severity:    severity,
		Location: models.Location{
			Lat:     req.Lat,
			Lng:     req.Lng,
			Address: req.Address,
		},
		MediaURL:  req.MediaURL,
		Status:    models.StatusPending,
		CreatedBy: creatorID,
	}

	created, err := s.complaints.Create(complaint)
	if err != nil {
		return nil, err
	}

	if err := s.users.AddPoints(actor.ID, pointsPerComplaint); err != nil {
		// Points are best effort, the complaint is already filed
		log.Printf("failed to award points to %s: %v", actor.ID, err)
	}

	return created, nil
}

// ListForActor returns the complaint queue visible to the requesting user.
// Citizens see their own reports, admins see everything, officials see the
// categories mapped to their department. Officials of an unmapped
// department get an empty queue.
func (s *ComplaintService) ListForActor(actor models.Actor) ([]*models.Complaint, error) {
	switch actor.Role {
	case "admin":
		return s.complaints.FindAll()
	case "official":
		categories, ok := triage.CategoriesForDepartment(actor.Department)
		if !ok {
			return []*models.Complaint{}, nil
		}
		return s.complaints.FindByCategories(categories)
	default:
		return s.complaints.FindByCreator(actor.ID)
	}
}

func (s *ComplaintService) GetByID(id string) (*models.Complaint, error) {
	return s.complaints.FindByID(id)
}

type UpdateStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=Pending 'In Progress' Resolved Rejected"`
	ResolutionNote  string `json:"resolutionNote"`
	ResolutionImage string `json:"resolutionImage" validate:"omitempty,url"`
	VehicleNumber   string `json:"vehicleNumber"`
	DriverName      string `json:"driverName"`
}

// UpdateStatus moves a complaint through its lifecycle. Officials taking a
// complaint get assigned to it; resolving stamps the resolution date. The
// citizen who filed it is notified asynchronously.
func (s *ComplaintService) UpdateStatus(actor models.Actor, id string, req *UpdateStatusRequest) (*models.Complaint, error) {
	complaint, err := s.complaints.FindByID(id)
	if err != nil {
		return nil, err
	}

	complaint.Status = req.Status
	if req.ResolutionNote != "" {
		complaint.ResolutionNote = req.ResolutionNote
	}
	if req.ResolutionImage != "" {
		complaint.ResolutionImage = req.ResolutionImage
	}

	if req.Status == models.StatusResolved {
		now := time.Now()
		complaint.ResolutionDate = &now
	}

	if actor.Role == "official" && complaint.AssignedTo.IsZero() {
		if officialID, err := primitive.ObjectIDFromHex(actor.ID); err == nil {
			complaint.AssignedTo = officialID
		}
	}

	if req.VehicleNumber != "" {
		complaint.VehicleNumber = req.VehicleNumber
		complaint.DriverName = req.DriverName
		now := time.Now()
		complaint.DispatchTime = &now
	}

	updated, err := s.complaints.Update(id, complaint)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChange(
			updated.ID.Hex(),
			updated.CreatedBy.Hex(),
			updated.Category,
			updated.Status,
			updated.ResolutionNote,
		)
	}

	return updated, nil
}
