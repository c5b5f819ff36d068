package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// PortfolioRepository defines portfolio persistence operations.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *model.Portfolio) error
	FindByID(ctx context.Context, id uint) (*model.Portfolio, error)
	FindView(ctx context.Context, id uint) (*model.PortfolioView, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter model.PortfolioFilter) ([]model.PortfolioView, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type portfolioRepository struct {
	table[model.Portfolio]
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{table: table[model.Portfolio]{db: db}, db: db}
}

func (r *portfolioRepository) view(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("portfolios").
		Select("portfolios.*, COALESCE(users.name, '') AS user_name").
		Joins("LEFT JOIN users ON users.id = portfolios.user_id")
}

func (r *portfolioRepository) FindView(ctx context.Context, id uint) (*model.PortfolioView, error) {
	var views []model.PortfolioView
	if err := r.view(ctx).Where("portfolios.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

func (r *portfolioRepository) List(ctx context.Context, filter model.PortfolioFilter) ([]model.PortfolioView, error) {
	portfolios := []model.PortfolioView{}
	q := whereID(r.view(ctx), "portfolios.user_id", filter.UserID)
	if err := q.Order("portfolios.date_created DESC").Order("portfolios.id DESC").Scan(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

// IDsByUser returns the ids of the portfolios owned by userID.
func (r *portfolioRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Portfolio{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
