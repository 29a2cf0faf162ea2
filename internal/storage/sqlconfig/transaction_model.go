package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	PaymentType string          `db:"payment_type"`
	Location    string          `db:"location"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	PaymentType string
	Location    string
	Date        time.Time
}

// TransactionUpdate changes only the non-nil fields.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	PaymentType *string
	Location    *string
	Date        *time.Time
}

func (u *TransactionUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil &&
		u.PaymentType == nil && u.Location == nil && u.Date == nil
}

// DateRange bounds transaction dates, both ends inclusive. Nil ends are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	DateRange
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category    string          `db:"category"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	LatestCreation(ctx context.Context) (*time.Time, error)
	CategoryTotals(ctx context.Context, dates DateRange) ([]*CategoryTotal, error)
}
