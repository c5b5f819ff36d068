package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// TransactionRepository defines transaction ledger persistence operations.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type transactionRepository struct {
	table[model.Transaction]
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{table: table[model.Transaction]{db: db}, db: db}
}

func (r *transactionRepository) List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	q := whereID(r.db.WithContext(ctx), "portfolio_id", filter.PortfolioID)
	q = whereID(q, "asset_id", filter.AssetID)
	q = whereEq(q, "transaction_type", string(filter.Type))
	q = whereRange(q, "transaction_date", filter.Date)
	if err := q.Order("transaction_date DESC").Order("id DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
