package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stratify/internal/model"
)

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uint) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByTicker(ctx context.Context, ticker string) (*model.Asset, error) {
	args := m.Called(ctx, ticker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindDetail(ctx context.Context, id uint) (*model.AssetDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetDetail), args.Error(1)
}

func (m *MockAssetRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) List(ctx context.Context, filter model.AssetFilter) ([]model.AssetView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssetView), args.Error(1)
}

func (m *MockAssetRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	args := m.Called(ctx, id, columns)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) ListPriceHistory(ctx context.Context, assetID uint, date model.DateRange) ([]model.PriceHistory, error) {
	args := m.Called(ctx, assetID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceHistory), args.Error(1)
}

func (m *MockAssetRepository) CreatePriceHistory(ctx context.Context, bars []model.PriceHistory) error {
	args := m.Called(ctx, bars)
	return args.Error(0)
}

// MockSectorRepository is a mock implementation of SectorRepository.
type MockSectorRepository struct {
	mock.Mock
}

func (m *MockSectorRepository) Create(ctx context.Context, sector *model.Sector) error {
	args := m.Called(ctx, sector)
	return args.Error(0)
}

func (m *MockSectorRepository) FindByID(ctx context.Context, id uint) (*model.Sector, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sector), args.Error(1)
}

func (m *MockSectorRepository) FindByName(ctx context.Context, name string) (*model.Sector, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sector), args.Error(1)
}

func (m *MockSectorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSectorRepository) List(ctx context.Context) ([]model.Sector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Sector), args.Error(1)
}
