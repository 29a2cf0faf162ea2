package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

// Reader exposes the tables over any executor, pooled or transactional.
type Reader struct {
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable
}

func NewReader(exec bob.Executor) Reader {
	return Reader{
		Transactions: sqlconfig.NewTransactionsTable(exec),
		Budgets:      sqlconfig.NewBudgetsTable(exec),
	}
}
