package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/storage"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

// EnsureBudget loads the budget, creating a zero budget when none exists.
type EnsureBudget struct {
	Budget *sqlconfig.Budget
	IAction
}

func (b *EnsureBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Budgets.Get(ctx, true)
	if err != nil {
		return err
	}
	if existing != nil {
		b.Budget = existing
		return nil
	}

	created, err := writer.Budgets.Insert(ctx, decimal.Zero)
	if err != nil {
		return err
	}
	b.Budget = created
	return nil
}

// SetBudget overwrites the budget amount, creating the budget if needed.
type SetBudget struct {
	Amount decimal.Decimal

	Budget *sqlconfig.Budget
	IAction
}

func (b *SetBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Budgets.Get(ctx, true)
	if err != nil {
		return err
	}

	var row *sqlconfig.Budget
	if existing == nil {
		row, err = writer.Budgets.Insert(ctx, b.Amount)
	} else {
		row, err = writer.Budgets.UpdateAmount(ctx, existing.ID, b.Amount)
	}
	if err != nil {
		return err
	}

	b.Budget = row
	return nil
}
