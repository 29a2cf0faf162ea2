package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget is the single spending budget. Only one row is ever kept.
type Budget struct {
	ID        uuid.UUID       `db:"id"`
	Amount    decimal.Decimal `db:"amount"`
	UpdatedAt time.Time       `db:"updated_at"`
}

//go:generate mockery --name IBudgetTable --output mock_IBudgetTable.go
type IBudgetTable interface {
	Get(ctx context.Context, forUpdate bool) (*Budget, error)
	Insert(ctx context.Context, amount decimal.Decimal) (*Budget, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Budget, error)
}
