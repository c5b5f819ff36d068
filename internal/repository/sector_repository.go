package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// SectorRepository defines sector persistence operations.
type SectorRepository interface {
	Create(ctx context.Context, sector *model.Sector) error
	FindByID(ctx context.Context, id uint) (*model.Sector, error)
	FindByName(ctx context.Context, name string) (*model.Sector, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]model.Sector, error)
}

type sectorRepository struct {
	table[model.Sector]
	db *gorm.DB
}

// NewSectorRepository creates a new sector repository.
func NewSectorRepository(db *gorm.DB) SectorRepository {
	return &sectorRepository{table: table[model.Sector]{db: db}, db: db}
}

func (r *sectorRepository) FindByName(ctx context.Context, name string) (*model.Sector, error) {
	var sector model.Sector
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&sector).Error; err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepository) List(ctx context.Context) ([]model.Sector, error) {
	sectors := []model.Sector{}
	if err := r.db.WithContext(ctx).Order("name").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}
