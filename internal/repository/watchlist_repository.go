package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// WatchlistRepository defines watchlist persistence operations.
type WatchlistRepository interface {
	Create(ctx context.Context, item *model.Watchlist) error
	FindByID(ctx context.Context, id uint) (*model.Watchlist, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter model.WatchlistFilter) ([]model.Watchlist, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type watchlistRepository struct {
	table[model.Watchlist]
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{table: table[model.Watchlist]{db: db}, db: db}
}

func (r *watchlistRepository) List(ctx context.Context, filter model.WatchlistFilter) ([]model.Watchlist, error) {
	items := []model.Watchlist{}
	q := whereID(r.db.WithContext(ctx), "user_id", filter.UserID)
	q = whereID(q, "asset_id", filter.AssetID)
	if err := q.Order("added_date DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
