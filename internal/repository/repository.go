package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// Repositories groups every entity repository bound to the same *gorm.DB.
type Repositories struct {
	Users        UserRepository
	Sectors      SectorRepository
	Assets       AssetRepository
	Portfolios   PortfolioRepository
	Positions    PositionRepository
	Transactions TransactionRepository
	Watchlists   WatchlistRepository
	Alerts       AlertRepository
	Scenarios    ScenarioRepository
	AuditEvents  AuditEventRepository

	db *gorm.DB
}

// New builds all repositories over db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Sectors:      NewSectorRepository(db),
		Assets:       NewAssetRepository(db),
		Portfolios:   NewPortfolioRepository(db),
		Positions:    NewPositionRepository(db),
		Transactions: NewTransactionRepository(db),
		Watchlists:   NewWatchlistRepository(db),
		Alerts:       NewAlertRepository(db),
		Scenarios:    NewScenarioRepository(db),
		AuditEvents:  NewAuditEventRepository(db),
		db:           db,
	}
}

// WithTransaction executes fn against repositories bound to a single database
// transaction. The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks the database connection.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// table implements the id-keyed operations every repository shares.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (t table[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t table[T]) Create(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Create(row).Error
}

func (t table[T]) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	return t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns).Error
}

func (t table[T]) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(new(T), id).Error
}

func whereID(q *gorm.DB, column string, id *uint) *gorm.DB {
	if id == nil {
		return q
	}
	return q.Where(column+" = ?", *id)
}

func whereEq(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

func whereRange(q *gorm.DB, column string, r model.DateRange) *gorm.DB {
	if r.From != nil {
		q = q.Where(column+" >= ?", *r.From)
	}
	if r.To != nil {
		q = q.Where(column+" <= ?", *r.To)
	}
	return q
}
