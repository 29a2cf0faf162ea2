package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/service"
	"github.com/carson-networks/spend-tracker/internal/storage"
)

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}. It responds
// with the removed record.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*TransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.DeleteTransaction(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete transaction", err)
	}

	return &TransactionOutput{Body: fromService(*tx)}, nil
}
