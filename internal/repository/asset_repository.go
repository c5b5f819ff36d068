package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// AssetRepository defines asset and price history persistence operations.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, id uint) (*model.Asset, error)
	FindByTicker(ctx context.Context, ticker string) (*model.Asset, error)
	FindDetail(ctx context.Context, id uint) (*model.AssetDetail, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter model.AssetFilter) ([]model.AssetView, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ListPriceHistory(ctx context.Context, assetID uint, date model.DateRange) ([]model.PriceHistory, error)
	CreatePriceHistory(ctx context.Context, bars []model.PriceHistory) error
}

type assetRepository struct {
	table[model.Asset]
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{table: table[model.Asset]{db: db}, db: db}
}

func (r *assetRepository) view(ctx context.Context, extra ...string) *gorm.DB {
	cols := "assets.*, COALESCE(sectors.name, '') AS sector_name"
	for _, c := range extra {
		cols += ", " + c
	}
	return r.db.WithContext(ctx).
		Table("assets").
		Select(cols).
		Joins("LEFT JOIN sectors ON sectors.id = assets.sector_id")
}

func (r *assetRepository) FindByTicker(ctx context.Context, ticker string) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).Where("ticker_symbol = ?", ticker).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindDetail(ctx context.Context, id uint) (*model.AssetDetail, error) {
	var details []model.AssetDetail
	err := r.view(ctx, "COALESCE(sectors.description, '') AS sector_description").
		Where("assets.id = ?", id).
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

func (r *assetRepository) List(ctx context.Context, filter model.AssetFilter) ([]model.AssetView, error) {
	assets := []model.AssetView{}
	q := whereID(r.view(ctx), "assets.sector_id", filter.SectorID)
	q = whereEq(q, "assets.ticker_symbol", filter.Ticker)
	if err := q.Order("assets.ticker_symbol").Order("assets.id").Scan(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) ListPriceHistory(ctx context.Context, assetID uint, date model.DateRange) ([]model.PriceHistory, error) {
	bars := []model.PriceHistory{}
	q := r.db.WithContext(ctx).Where("asset_id = ?", assetID)
	q = whereRange(q, "date", date)
	if err := q.Order("date DESC").Find(&bars).Error; err != nil {
		return nil, err
	}
	return bars, nil
}

func (r *assetRepository) CreatePriceHistory(ctx context.Context, bars []model.PriceHistory) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(bars, 100).Error
}
