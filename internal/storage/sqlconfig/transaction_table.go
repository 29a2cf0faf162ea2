package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const transactionsTableName = "transactions"

var transactionColumns = []any{
	"id", "description", "amount", "category", "payment_type", "location", "date", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key. A missing row is (nil, nil).
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into(transactionsTableName, "description", "amount", "category", "payment_type", "location", "date"),
		im.Values(
			psql.Arg(create.Description),
			psql.Arg(create.Amount),
			psql.Arg(create.Category),
			psql.Arg(create.PaymentType),
			psql.Arg(create.Location),
			psql.Arg(create.Date),
		),
		im.Returning(transactionColumns...),
	)

	return bob.One(ctx, t.exec, query, scan.StructMapper[*Transaction]())
}

// Update applies the non-nil fields of update. A missing row is (nil, nil).
func (t *TransactionsTable) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	if update.IsEmpty() {
		return t.FindByID(ctx, id, false)
	}

	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(transactionsTableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(transactionColumns...),
	}
	if update.Description != nil {
		queryMods = append(queryMods, um.SetCol("description").ToArg(*update.Description))
	}
	if update.Amount != nil {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(*update.Amount))
	}
	if update.Category != nil {
		queryMods = append(queryMods, um.SetCol("category").ToArg(*update.Category))
	}
	if update.PaymentType != nil {
		queryMods = append(queryMods, um.SetCol("payment_type").ToArg(*update.PaymentType))
	}
	if update.Location != nil {
		queryMods = append(queryMods, um.SetCol("location").ToArg(*update.Location))
	}
	if update.Date != nil {
		queryMods = append(queryMods, um.SetCol("date").ToArg(*update.Date))
	}

	row, err := bob.One(ctx, t.exec, psql.Update(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes a transaction. Deleting a missing row is not an error.
func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(transactionsTableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// List returns transactions matching the filter, newest date first. It
// fetches one row beyond Limit so callers can tell whether a next page exists.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
	}
	if filter != nil {
		var where []bob.Expression
		where = append(where, dateRangeWhere(filter.DateRange)...)
		if filter.MaxCreationTime != nil {
			where = append(where, psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime)))
		}
		if len(where) > 0 {
			queryMods = append(queryMods, sm.Where(psql.And(where...)))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("date").Desc(),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// LatestCreation returns the newest created_at in the table, or nil when the
// table is empty.
func (t *TransactionsTable) LatestCreation(ctx context.Context) (*time.Time, error) {
	query := psql.Select(
		sm.Columns("MAX(created_at)"),
		sm.From(transactionsTableName),
	)

	latest, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[sql.NullTime])
	if err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

// CategoryTotals sums amounts per category over the date range.
func (t *TransactionsTable) CategoryTotals(ctx context.Context, dates DateRange) ([]*CategoryTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("category", "COALESCE(SUM(amount), 0) AS total_amount"),
		sm.From(transactionsTableName),
		sm.GroupBy("category"),
		sm.OrderBy("category").Asc(),
	}
	if where := dateRangeWhere(dates); len(where) > 0 {
		queryMods = append(queryMods, sm.Where(psql.And(where...)))
	}

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*CategoryTotal]())
}

func dateRangeWhere(dates DateRange) []bob.Expression {
	var where []bob.Expression
	if dates.Start != nil {
		where = append(where, psql.Quote("date").GTE(psql.Arg(*dates.Start)))
	}
	if dates.End != nil {
		where = append(where, psql.Quote("date").LTE(psql.Arg(*dates.End)))
	}
	return where
}
