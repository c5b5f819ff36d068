package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"stratify/internal/cache"
	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// PositionService handles position operations.
type PositionService interface {
	List(ctx context.Context, filter model.PositionFilter) ([]model.PositionView, error)
	Get(ctx context.Context, id uint) (*model.PositionDetail, error)
	Create(ctx context.Context, position *model.Position) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	Delete(ctx context.Context, id uint) error
}

type positionService struct {
	repos *repository.Repositories
	cache detailCache
}

// NewPositionService creates a new position service. Position writes
// invalidate the cached detail of the owning portfolio.
func NewPositionService(repos *repository.Repositories, cacheClient *cache.Client, ttl time.Duration) PositionService {
	return &positionService{repos: repos, cache: detailCache{client: cacheClient, ttl: ttl}}
}

func (s *positionService) List(ctx context.Context, filter model.PositionFilter) ([]model.PositionView, error) {
	return s.repos.Positions.List(ctx, filter)
}

func (s *positionService) Get(ctx context.Context, id uint) (*model.PositionDetail, error) {
	position, err := s.repos.Positions.FindDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrPositionNotFound)
	}
	return position, nil
}

// Create inserts a position after checking both parents and the
// (portfolio, asset) pair. The unique index catches a concurrent insert
// that slipped past the pair check.
func (s *positionService) Create(ctx context.Context, position *model.Position) error {
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, position.PortfolioID, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		if err := mustExist(ctx, tx.Assets.Exists, position.AssetID, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
		held, err := tx.Positions.ExistsForAsset(ctx, position.PortfolioID, position.AssetID)
		if err != nil {
			return err
		}
		if held {
			return apperrors.ErrPositionExists
		}
		return tx.Positions.Create(ctx, position)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrPositionExists
	}
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, position.PortfolioID)
	return nil
}

func (s *positionService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	var portfolioID uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		position, err := tx.Positions.FindByID(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrPositionNotFound)
		}
		portfolioID = position.PortfolioID
		cols, err := model.PositionPatch.Columns(body)
		if err != nil {
			return err
		}
		return tx.Positions.Updates(ctx, id, cols)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolioID)
	return nil
}

func (s *positionService) Delete(ctx context.Context, id uint) error {
	var portfolioID uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		position, err := tx.Positions.FindByID(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrPositionNotFound)
		}
		portfolioID = position.PortfolioID
		return tx.Positions.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolioID)
	return nil
}
