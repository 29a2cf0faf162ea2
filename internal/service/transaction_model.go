package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    string
	PaymentType string
	Location    string
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionCreate is the input for recording a transaction.
type TransactionCreate struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	PaymentType string
	Location    string
	Date        time.Time
}

// TransactionUpdate changes only its non-nil fields.
type TransactionUpdate = sqlconfig.TransactionUpdate

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// CategoryTotal is the summed spending of one category.
type CategoryTotal struct {
	Category    string
	TotalAmount decimal.Decimal
}

func transactionFromStorage(row *sqlconfig.Transaction) *Transaction {
	return &Transaction{
		ID:          row.ID,
		Description: row.Description,
		Amount:      row.Amount,
		Category:    row.Category,
		PaymentType: row.PaymentType,
		Location:    row.Location,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
}
