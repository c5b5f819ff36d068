package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// PositionRepository defines position persistence operations.
type PositionRepository interface {
	Create(ctx context.Context, position *model.Position) error
	FindByID(ctx context.Context, id uint) (*model.Position, error)
	FindDetail(ctx context.Context, id uint) (*model.PositionDetail, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsForAsset(ctx context.Context, portfolioID, assetID uint) (bool, error)
	PortfolioIDsByAsset(ctx context.Context, assetID uint) ([]uint, error)
	List(ctx context.Context, filter model.PositionFilter) ([]model.PositionView, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type positionRepository struct {
	table[model.Position]
	db *gorm.DB
}

// NewPositionRepository creates a new position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{table: table[model.Position]{db: db}, db: db}
}

const positionViewColumns = `positions.*,
	COALESCE(assets.ticker_symbol, '') AS ticker_symbol,
	COALESCE(assets.asset_name, '') AS asset_name,
	COALESCE(assets.asset_type, '') AS asset_type,
	COALESCE(assets.current_price, 0) AS current_price,
	COALESCE(portfolios.name, '') AS portfolio_name`

func (r *positionRepository) view(ctx context.Context, extra ...string) *gorm.DB {
	cols := positionViewColumns
	for _, c := range extra {
		cols += ", " + c
	}
	return r.db.WithContext(ctx).
		Table("positions").
		Select(cols).
		Joins("LEFT JOIN assets ON assets.id = positions.asset_id").
		Joins("LEFT JOIN portfolios ON portfolios.id = positions.portfolio_id")
}

func (r *positionRepository) FindDetail(ctx context.Context, id uint) (*model.PositionDetail, error) {
	var details []model.PositionDetail
	err := r.view(ctx, "COALESCE(portfolios.description, '') AS portfolio_description").
		Where("positions.id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &details[0], nil
}

func (r *positionRepository) ExistsForAsset(ctx context.Context, portfolioID, assetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Position{}).
		Where("portfolio_id = ? AND asset_id = ?", portfolioID, assetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PortfolioIDsByAsset returns the distinct portfolios holding a position in assetID.
func (r *positionRepository) PortfolioIDsByAsset(ctx context.Context, assetID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Position{}).
		Where("asset_id = ?", assetID).
		Distinct().
		Pluck("portfolio_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *positionRepository) List(ctx context.Context, filter model.PositionFilter) ([]model.PositionView, error) {
	positions := []model.PositionView{}
	q := whereID(r.view(ctx), "positions.portfolio_id", filter.PortfolioID)
	q = whereID(q, "positions.asset_id", filter.AssetID)
	err := q.Order("positions.portfolio_id").
		Order("assets.ticker_symbol").
		Order("positions.id").
		Scan(&positions).Error
	if err != nil {
		return nil, err
	}
	return positions, nil
}
