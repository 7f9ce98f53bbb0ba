package services

import (
	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"
	"civicpulse-backend/internal/ws"
)

type BinService struct {
	binRepo   *repository.BinRepository
	wsManager *ws.Manager
}

func NewBinService(binRepo *repository.BinRepository, wsManager *ws.Manager) *BinService {
	return &BinService{
		binRepo:   binRepo,
		wsManager: wsManager,
	}
}

type CreateBinRequest struct {
	Code    string  `json:"code" validate:"required"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" validate:"longitude"`
	Address string  `json:"address" validate:"required"`
}

func (s *BinService) Create(req *CreateBinRequest) (*models.Bin, error) {
	bin := &models.Bin{
		Code: req.Code,
		Location: models.Location{
			Lat:     req.Lat,
			Lng:     req.Lng,
			Address: req.Address,
		},
		FillLevel: 0,
		Status:    models.BinStatusNormal,
	}
	return s.binRepo.Create(bin)
}

func (s *BinService) List() ([]*models.Bin, error) {
	return s.binRepo.FindAll()
}

func (s *BinService) GetByID(id string) (*models.Bin, error) {
	return s.binRepo.FindByID(id)
}

// Empty resets a bin after physical collection and pushes the new state to
// dashboard clients.
func (s *BinService) Empty(id string) (*models.Bin, error) {
	bin, err := s.binRepo.Empty(id)
	if err != nil {
		return nil, err
	}

	if s.wsManager != nil {
		s.wsManager.BroadcastBinUpdate(bin)
	}

	return bin, nil
}
