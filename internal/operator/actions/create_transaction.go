package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/storage"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	PaymentType string
	Location    string
	Date        time.Time

	// Created is set once Perform succeeds.
	Created *sqlconfig.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		PaymentType: t.PaymentType,
		Location:    t.Location,
		Date:        t.Date,
	})
	if err != nil {
		return err
	}

	t.Created = row
	return nil
}
