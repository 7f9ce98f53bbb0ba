package services

import (
	"errors"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"
	"civicpulse-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo *repository.UserRepository
	jwtUtil  *jwt.JWTUtil
}

func NewAuthService(userRepo *repository.UserRepository, jwtUtil *jwt.JWTUtil) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=15"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *models.AuthUser `json:"user"`
	Token string           `json:"token"`
}

// Register creates a citizen account. Officials and admins are provisioned
// out of band.
func (s *AuthService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   string(hashed),
		Role:       "citizen",
		Department: "None",
		Points:     0,
		Badges:     []string{},
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtUtil.GenerateToken(created.ID.Hex(), created.Email, created.Role, created.Department)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{User: toAuthUser(created), Token: token}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	s.userRepo.UpdateLastLogin(user.ID.Hex())

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role, user.Department)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{User: toAuthUser(user), Token: token}, nil
}

func (s *AuthService) GetUserProfile(userID string) (*models.AuthUser, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return toAuthUser(user), nil
}

func toAuthUser(user *models.User) *models.AuthUser {
	return &models.AuthUser{
		ID:         user.ID.Hex(),
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Points:     user.Points,
	}
}
