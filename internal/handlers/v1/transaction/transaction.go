package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	Description string  `json:"description" doc:"What the money was spent on"`
	Amount      float64 `json:"amount" doc:"Amount spent"`
	Category    string  `json:"category" doc:"Spending category"`
	PaymentType string  `json:"paymentType" doc:"Payment method"`
	Location    string  `json:"location" doc:"Where the transaction happened"`
	Date        string  `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount.InexactFloat64(),
		Category:    tx.Category,
		PaymentType: tx.PaymentType,
		Location:    tx.Location,
		Date:        tx.Date.UTC().Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// TransactionIDInput addresses one transaction by path.
type TransactionIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// TransactionOutput is the Huma output for a single transaction.
type TransactionOutput struct {
	Body Transaction
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}
	return id, nil
}
