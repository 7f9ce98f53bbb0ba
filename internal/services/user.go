package services

import (
	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List() ([]*models.AuthUser, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	result := make([]*models.AuthUser, 0, len(users))
	for _, user := range users {
		result = append(result, toAuthUser(user))
	}
	return result, nil
}

func (s *UserService) GetByID(id string) (*models.AuthUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user), nil
}
