package service

import (
	"context"

	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// SectorService handles sector operations.
type SectorService interface {
	List(ctx context.Context) ([]model.Sector, error)
	Get(ctx context.Context, id uint) (*model.Sector, error)
	Create(ctx context.Context, sector *model.Sector) error
}

type sectorService struct {
	repos *repository.Repositories
}

// NewSectorService creates a new sector service.
func NewSectorService(repos *repository.Repositories) SectorService {
	return &sectorService{repos: repos}
}

func (s *sectorService) List(ctx context.Context) ([]model.Sector, error) {
	return s.repos.Sectors.List(ctx)
}

func (s *sectorService) Get(ctx context.Context, id uint) (*model.Sector, error) {
	sector, err := s.repos.Sectors.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSectorNotFound)
	}
	return sector, nil
}

func (s *sectorService) Create(ctx context.Context, sector *model.Sector) error {
	return s.repos.Sectors.Create(ctx, sector)
}
