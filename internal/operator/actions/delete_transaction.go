package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/storage"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

// DeleteTransaction removes a transaction and keeps the removed row in Deleted.
type DeleteTransaction struct {
	ID uuid.UUID

	Deleted *sqlconfig.Transaction
	IAction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, t.ID, true)
	if err != nil {
		return err
	}
	if existing == nil {
		return storage.ErrNotFound
	}

	if err := writer.Transactions.Delete(ctx, t.ID); err != nil {
		return err
	}

	t.Deleted = existing
	return nil
}
