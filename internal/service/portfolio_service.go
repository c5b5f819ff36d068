package service

import (
	"context"
	"encoding/json"
	"time"

	"stratify/internal/cache"
	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// PortfolioService handles portfolio operations.
type PortfolioService interface {
	List(ctx context.Context, filter model.PortfolioFilter) ([]model.PortfolioView, error)
	Get(ctx context.Context, id uint) (*model.PortfolioDetail, error)
	Create(ctx context.Context, portfolio *model.Portfolio) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	Delete(ctx context.Context, id uint) error
}

type portfolioService struct {
	repos *repository.Repositories
	cache detailCache
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(repos *repository.Repositories, cacheClient *cache.Client, ttl time.Duration) PortfolioService {
	return &portfolioService{repos: repos, cache: detailCache{client: cacheClient, ttl: ttl}}
}

func (s *portfolioService) List(ctx context.Context, filter model.PortfolioFilter) ([]model.PortfolioView, error) {
	return s.repos.Portfolios.List(ctx, filter)
}

// Get retrieves a portfolio with its owner name and positions through the cache.
func (s *portfolioService) Get(ctx context.Context, id uint) (*model.PortfolioDetail, error) {
	return readThrough(ctx, s.cache, cacheKey(portfolioKeyPrefix, id), func() (*model.PortfolioDetail, error) {
		view, err := s.repos.Portfolios.FindView(ctx, id)
		if err != nil {
			return nil, notFound(err, apperrors.ErrPortfolioNotFound)
		}
		positions, err := s.repos.Positions.List(ctx, model.PositionFilter{PortfolioID: &id})
		if err != nil {
			return nil, err
		}
		return &model.PortfolioDetail{PortfolioView: *view, Positions: positions}, nil
	})
}

// Create inserts a portfolio for an existing user. DateCreated is set to server time.
func (s *portfolioService) Create(ctx context.Context, portfolio *model.Portfolio) error {
	portfolio.DateCreated = now()
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Users.Exists, portfolio.UserID, apperrors.ErrUserNotFound); err != nil {
			return err
		}
		return tx.Portfolios.Create(ctx, portfolio)
	})
}

func (s *portfolioService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, id, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		cols, err := model.PortfolioPatch.Columns(body)
		if err != nil {
			return err
		}
		return tx.Portfolios.Updates(ctx, id, cols)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, id)
	return nil
}

// Delete removes the portfolio row only. Its positions are left in place.
func (s *portfolioService) Delete(ctx context.Context, id uint) error {
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, id, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		return tx.Portfolios.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, id)
	return nil
}
