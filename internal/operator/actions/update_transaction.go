package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/storage"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

type UpdateTransaction struct {
	ID     uuid.UUID
	Update sqlconfig.TransactionUpdate

	Updated *sqlconfig.Transaction
	IAction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, t.ID, true)
	if err != nil {
		return err
	}
	if existing == nil {
		return storage.ErrNotFound
	}

	row, err := writer.Transactions.Update(ctx, t.ID, &t.Update)
	if err != nil {
		return err
	}
	if row == nil {
		return storage.ErrNotFound
	}

	t.Updated = row
	return nil
}
