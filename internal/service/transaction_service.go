package service

import (
	"context"
	"encoding/json"

	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// TransactionService handles the transaction ledger.
//
// Recording a transaction does not adjust the matching position or any cash
// balance; positions are maintained through PositionService only.
type TransactionService interface {
	List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
	Get(ctx context.Context, id uint) (*model.Transaction, error)
	Create(ctx context.Context, transaction *model.Transaction) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	Delete(ctx context.Context, id uint) error
}

type transactionService struct {
	repos *repository.Repositories
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repos *repository.Repositories) TransactionService {
	return &transactionService{repos: repos}
}

func (s *transactionService) List(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.repos.Transactions.List(ctx, filter)
}

func (s *transactionService) Get(ctx context.Context, id uint) (*model.Transaction, error) {
	transaction, err := s.repos.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTransactionNotFound)
	}
	return transaction, nil
}

// Create records a transaction. A zero TransactionDate defaults to server time.
func (s *transactionService) Create(ctx context.Context, transaction *model.Transaction) error {
	if transaction.TransactionDate.IsZero() {
		transaction.TransactionDate = now()
	}
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, transaction.PortfolioID, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		if err := mustExist(ctx, tx.Assets.Exists, transaction.AssetID, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
		return tx.Transactions.Create(ctx, transaction)
	})
}

func (s *transactionService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Transactions.Exists, id, apperrors.ErrTransactionNotFound); err != nil {
			return err
		}
		cols, err := model.TransactionPatch.Columns(body)
		if err != nil {
			return err
		}
		return tx.Transactions.Updates(ctx, id, cols)
	})
}

func (s *transactionService) Delete(ctx context.Context, id uint) error {
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Transactions.Exists, id, apperrors.ErrTransactionNotFound); err != nil {
			return err
		}
		return tx.Transactions.Delete(ctx, id)
	})
}
