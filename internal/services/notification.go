package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"civicpulse-backend/internal/repository"
	"civicpulse-backend/pkg/email"
	"civicpulse-backend/pkg/sms"
)

type statusChangeEvent struct {
	ComplaintID string
	UserID      string
	Category    string
	Status      string
	Resolution  string
}

// NotificationService delivers status-change notifications to citizens over
// email and SMS. Events are queued on a buffered channel and processed by a
// single worker so that complaint updates never wait on outbound delivery.
type NotificationService struct {
	userRepo *repository.UserRepository
	email    *email.EmailService
	sms      *sms.SMSService

	events   chan statusChangeEvent
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewNotificationService(userRepo *repository.UserRepository, emailService *email.EmailService, smsService *sms.SMSService) *NotificationService {
	return &NotificationService{
		userRepo: userRepo,
		email:    emailService,
		sms:      smsService,
		events:   make(chan statusChangeEvent, 64),
		stopChan: make(chan struct{}),
	}
}

func (s *NotificationService) Start() {
	s.wg.Add(1)
	go s.run()
	log.Println("Notification worker started")
}

func (s *NotificationService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	log.Println("Notification worker stopped")
}

// NotifyStatusChange enqueues a notification. Never blocks; if the queue is
// full the event is dropped with a log line.
func (s *NotificationService) NotifyStatusChange(complaintID, userID, category, status, resolution string) {
	event := statusChangeEvent{
		ComplaintID: complaintID,
		UserID:      userID,
		Category:    category,
		Status:      status,
		Resolution:  resolution,
	}

	select {
	case s.events <- event:
	default:
		log.Printf("Notification queue full, dropping status update for complaint %s", complaintID)
	}
}

func (s *NotificationService) run() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.events:
			s.deliver(event)
		case <-s.stopChan:
			return
		}
	}
}

func (s *NotificationService) deliver(event statusChangeEvent) {
	user, err := s.userRepo.FindByID(event.UserID)
	if err != nil {
		log.Printf("Notification skipped, user %s not found: %v", event.UserID, err)
		return
	}

	if s.email != nil && user.Email != "" {
		if err := s.email.SendStatusUpdateEmail(user.Email, user.Name, event.ComplaintID, event.Category, event.Status, event.Resolution); err != nil {
			log.Printf("Failed to email %s about complaint %s: %v", user.Email, event.ComplaintID, err)
		}
	}

	if s.sms != nil && user.Phone != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		message := fmt.Sprintf("CivicPulse: your %s complaint is now %s.", event.Category, event.Status)
		if err := s.sms.SendSMS(ctx, user.Phone, message); err != nil {
			log.Printf("Failed to SMS %s about complaint %s: %v", user.Phone, event.ComplaintID, err)
		}
		cancel()
	}
}
