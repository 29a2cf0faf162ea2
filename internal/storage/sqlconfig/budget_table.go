package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const budgetsTableName = "budgets"

var budgetColumns = []any{"id", "amount", "updated_at"}

var _ IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

// Get returns the budget row, or (nil, nil) when none has been created yet.
func (t *BudgetsTable) Get(ctx context.Context, forUpdate bool) (*Budget, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(budgetColumns...),
		sm.From(budgetsTableName),
		sm.OrderBy("updated_at").Asc(),
		sm.Limit(1),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t *BudgetsTable) Insert(ctx context.Context, amount decimal.Decimal) (*Budget, error) {
	query := psql.Insert(
		im.Into(budgetsTableName, "amount"),
		im.Values(psql.Arg(amount)),
		im.Returning(budgetColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Budget]())
}

func (t *BudgetsTable) UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Budget, error) {
	query := psql.Update(
		um.Table(budgetsTableName),
		um.SetCol("amount").ToArg(amount),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(budgetColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Budget]())
}
