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

// AssetService handles asset, price history and sector listing operations.
type AssetService interface {
	List(ctx context.Context, filter model.AssetFilter) ([]model.AssetView, error)
	Get(ctx context.Context, id uint) (*model.AssetDetail, error)
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	Delete(ctx context.Context, id uint) error
	PriceHistory(ctx context.Context, id uint, date model.DateRange) ([]model.PriceHistory, error)
	BySector(ctx context.Context, sectorID uint) (*model.SectorAssets, error)
}

type assetService struct {
	repos *repository.Repositories
	cache detailCache
}

// NewAssetService creates a new asset service.
func NewAssetService(repos *repository.Repositories, cacheClient *cache.Client, ttl time.Duration) AssetService {
	return &assetService{repos: repos, cache: detailCache{client: cacheClient, ttl: ttl}}
}

func (s *assetService) List(ctx context.Context, filter model.AssetFilter) ([]model.AssetView, error) {
	return s.repos.Assets.List(ctx, filter)
}

// Get retrieves an asset with its sector through the cache.
func (s *assetService) Get(ctx context.Context, id uint) (*model.AssetDetail, error) {
	return readThrough(ctx, s.cache, cacheKey(assetKeyPrefix, id), func() (*model.AssetDetail, error) {
		asset, err := s.repos.Assets.FindDetail(ctx, id)
		if err != nil {
			return nil, notFound(err, apperrors.ErrAssetNotFound)
		}
		return asset, nil
	})
}

func (s *assetService) Create(ctx context.Context, asset *model.Asset) error {
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Sectors.Exists, asset.SectorID, apperrors.ErrSectorNotFound); err != nil {
			return err
		}
		return tx.Assets.Create(ctx, asset)
	})
}

// Update applies a partial update. Cached portfolios holding the asset are
// dropped along with the asset itself.
func (s *assetService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	var portfolios []uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Assets.Exists, id, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
		cols, err := model.AssetPatch.Columns(body)
		if err != nil {
			return err
		}
		if sectorID, ok := cols["sector_id"].(uint); ok {
			if err := mustExist(ctx, tx.Sectors.Exists, sectorID, apperrors.ErrSectorNotFound); err != nil {
				return err
			}
		}
		if portfolios, err = s.cache.affectedPortfolios(ctx, tx.Positions.PortfolioIDsByAsset, id); err != nil {
			return err
		}
		return tx.Assets.Updates(ctx, id, cols)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, assetKeyPrefix, id)
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolios...)
	return nil
}

func (s *assetService) Delete(ctx context.Context, id uint) error {
	var portfolios []uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Assets.Exists, id, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
		var err error
		if portfolios, err = s.cache.affectedPortfolios(ctx, tx.Positions.PortfolioIDsByAsset, id); err != nil {
			return err
		}
		return tx.Assets.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, assetKeyPrefix, id)
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolios...)
	return nil
}

// PriceHistory lists the daily bars of an existing asset, newest first.
func (s *assetService) PriceHistory(ctx context.Context, id uint, date model.DateRange) ([]model.PriceHistory, error) {
	if err := mustExist(ctx, s.repos.Assets.Exists, id, apperrors.ErrAssetNotFound); err != nil {
		return nil, err
	}
	return s.repos.Assets.ListPriceHistory(ctx, id, date)
}

// BySector returns a sector together with its assets.
func (s *assetService) BySector(ctx context.Context, sectorID uint) (*model.SectorAssets, error) {
	sector, err := s.repos.Sectors.FindByID(ctx, sectorID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSectorNotFound)
	}
	assets, err := s.repos.Assets.List(ctx, model.AssetFilter{SectorID: &sectorID})
	if err != nil {
		return nil, err
	}
	return &model.SectorAssets{Sector: *sector, Assets: assets}, nil
}
