package service

import (
	"context"
	"encoding/json"

	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// WatchlistService handles watchlist operations.
type WatchlistService interface {
	List(ctx context.Context, filter model.WatchlistFilter) ([]model.Watchlist, error)
	Get(ctx context.Context, id uint) (*model.Watchlist, error)
	Create(ctx context.Context, item *model.Watchlist) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	Delete(ctx context.Context, id uint) error
}

type watchlistService struct {
	repos *repository.Repositories
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(repos *repository.Repositories) WatchlistService {
	return &watchlistService{repos: repos}
}

func (s *watchlistService) List(ctx context.Context, filter model.WatchlistFilter) ([]model.Watchlist, error) {
	return s.repos.Watchlists.List(ctx, filter)
}

func (s *watchlistService) Get(ctx context.Context, id uint) (*model.Watchlist, error) {
	item, err := s.repos.Watchlists.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrWatchlistNotFound)
	}
	return item, nil
}

// Create adds an asset to a user's watchlist. AddedDate is set to server time.
func (s *watchlistService) Create(ctx context.Context, item *model.Watchlist) error {
	item.AddedDate = now()
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Users.Exists, item.UserID, apperrors.ErrUserNotFound); err != nil {
			return err
		}
		if err := mustExist(ctx, tx.Assets.Exists, item.AssetID, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
		return tx.Watchlists.Create(ctx, item)
	})
}

func (s *watchlistService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Watchlists.Exists, id, apperrors.ErrWatchlistNotFound); err != nil {
			return err
		}
		cols, err := model.WatchlistPatch.Columns(body)
		if err != nil {
			return err
		}
		if assetID, ok := cols["asset_id"].(uint); ok {
			if err := mustExist(ctx, tx.Assets.Exists, assetID, apperrors.ErrAssetNotFound); err != nil {
				return err
			}
		}
		return tx.Watchlists.Updates(ctx, id, cols)
	})
}

func (s *watchlistService) Delete(ctx context.Context, id uint) error {
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Watchlists.Exists, id, apperrors.ErrWatchlistNotFound); err != nil {
			return err
		}
		return tx.Watchlists.Delete(ctx, id)
	})
}
