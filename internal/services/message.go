package services

import (
	"errors"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageService struct {
	messageRepo   *repository.MessageRepository
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, complaintRepo *repository.ComplaintRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// Post appends a message to a complaint's discussion thread. Only the
// citizen who filed the complaint and officials/admins may take part.
func (s *MessageService) Post(actor models.Actor, complaintID string, req *PostMessageRequest) (*models.Message, error) {
	complaint, err := s.complaintRepo.FindByID(complaintID)
	if err != nil {
		return nil, err
	}

	if actor.Role == "citizen" && complaint.CreatedBy.Hex() != actor.ID {
		return nil, errors.New("not authorized to message on this complaint")
	}

	sender, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	senderOID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	message := &models.Message{
		ComplaintID: complaint.ID,
		SenderID:    senderOID,
		SenderName:  sender.Name,
		SenderRole:  sender.Role,
		Content:     req.Content,
	}

	return s.messageRepo.Create(message)
}

func (s *MessageService) ListThread(actor models.Actor, complaintID string) ([]*models.Message, error) {
	complaint, err := s.complaintRepo.FindByID(complaintID)
	if err != nil {
		return nil, err
	}

	if actor.Role == "citizen" && complaint.CreatedBy.Hex() != actor.ID {
		return nil, errors.New("not authorized to view this thread")
	}

	return s.messageRepo.FindByComplaint(complaintID)
}
