package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/operator/actions"
	"github.com/carson-networks/spend-tracker/internal/storage"
	"github.com/carson-networks/spend-tracker/internal/storage/sqlconfig"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op processor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// CreateTransaction records a transaction and returns the stored record.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (*Transaction, error) {
	action := &actions.CreateTransaction{
		Description: create.Description,
		Amount:      create.Amount,
		Category:    create.Category,
		PaymentType: create.PaymentType,
		Location:    create.Location,
		Date:        create.Date,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return transactionFromStorage(action.Created), nil
}

// GetTransaction returns storage.ErrNotFound for an unknown id.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, storage.ErrNotFound
	}
	return transactionFromStorage(row), nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	action := &actions.UpdateTransaction{ID: id, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transactionFromStorage(action.Updated), nil
}

// DeleteTransaction removes a transaction and returns what was removed.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	action := &actions.DeleteTransaction{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transactionFromStorage(action.Deleted), nil
}

// ListTransactions returns a page of transactions using cursor-based pagination,
// newest date first. Nil date bounds are open and the end date covers its whole
// day. The first page locks in the newest creation time so rows recorded while
// paging never shift later pages; the same date bounds must accompany the cursor.
func (s *TransactionService) ListTransactions(ctx context.Context, startDate, endDate *time.Time, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	} else {
		latest, err := s.storage.Transactions.LatestCreation(ctx)
		if err != nil {
			return nil, nil, err
		}
		if latest == nil {
			return nil, nil, nil
		}
		maxCreationTime = latest
	}

	filter := &sqlconfig.TransactionFilter{
		DateRange:       sqlconfig.DateRange{Start: startDate},
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if endDate != nil {
		end := EndOfDay(*endDate)
		filter.End = &end
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: *maxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = *transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}

// CategoryStatistics sums spending per category. The end date covers its
// whole day. Nil bounds are open.
func (s *TransactionService) CategoryStatistics(ctx context.Context, startDate, endDate *time.Time) ([]CategoryTotal, error) {
	dates := sqlconfig.DateRange{Start: startDate}
	if endDate != nil {
		end := EndOfDay(*endDate)
		dates.End = &end
	}

	rows, err := s.storage.Transactions.CategoryTotals(ctx, dates)
	if err != nil {
		return nil, err
	}

	totals := make([]CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = CategoryTotal{Category: row.Category, TotalAmount: row.TotalAmount}
	}
	return totals, nil
}

// EndOfDay is 23:59:59.999 on t's calendar day, in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
