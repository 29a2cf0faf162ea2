package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/operator/actions"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

// Budget represents the spending budget in the service layer.
type Budget struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	UpdatedAt time.Time
}

// BudgetService handles budget business logic.
type BudgetService struct {
	operator processor
}

func NewBudgetService(op processor) *BudgetService {
	return &BudgetService{operator: op}
}

// GetBudget returns the budget, creating a zero budget on first use.
func (s *BudgetService) GetBudget(ctx context.Context) (*Budget, error) {
	action := &actions.EnsureBudget{}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return budgetFromStorage(action.Budget), nil
}

// SetBudget overwrites the budget amount.
func (s *BudgetService) SetBudget(ctx context.Context, amount decimal.Decimal) (*Budget, error) {
	action := &actions.SetBudget{Amount: amount}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return budgetFromStorage(action.Budget), nil
}

func budgetFromStorage(row *sqlconfig.Budget) *Budget {
	return &Budget{
		ID:        row.ID,
		Amount:    row.Amount,
		UpdatedAt: row.UpdatedAt,
	}
}
