package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/service"
	"github.com/carson-networks/spend-tracker/internal/storage"
)

// UpdateTransactionBody changes only the fields it carries.
type UpdateTransactionBody struct {
	Description *string  `json:"description,omitempty" minLength:"1"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty" minLength:"1"`
	PaymentType *string  `json:"paymentType,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Date        *string  `json:"date,omitempty" format:"date-time"`
}

type UpdateTransactionInput struct {
	TransactionIDInput
	Body UpdateTransactionBody
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, update service.TransactionUpdate) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Changes the supplied fields of a transaction and returns the updated record.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(body UpdateTransactionBody) (service.TransactionUpdate, error) {
	update := service.TransactionUpdate{
		Description: body.Description,
		Category:    body.Category,
		PaymentType: body.PaymentType,
		Location:    body.Location,
	}
	if body.Amount != nil {
		amount := decimal.NewFromFloat(*body.Amount)
		update.Amount = &amount
	}
	if body.Date != nil {
		date, err := time.Parse(time.RFC3339, *body.Date)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		update.Date = &date
	}
	if update.IsEmpty() {
		return update, huma.NewError(http.StatusBadRequest, "no fields to update")
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateTransactionInput(input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.UpdateTransaction(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update transaction", err)
	}

	return &TransactionOutput{Body: fromService(*tx)}, nil
}
