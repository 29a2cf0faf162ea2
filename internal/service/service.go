package service

import (
	"context"

	"github.com/carson-networks/spend-tracker/internal/operator/actions"
	"github.com/carson-networks/spend-tracker/internal/storage"
)

// processor runs a write action inside a database transaction.
type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Budget      *BudgetService
}

// NewService creates a new Service reading from store and writing through op.
func NewService(store *storage.Storage, op processor) *Service {
	return &Service{
		Transaction: NewTransactionService(store, op),
		Budget:      NewBudgetService(op),
	}
}
