package service

import (
	"context"

	"github.com/carson-networks/spend-tracker/internal/parser"
)

// Submit records a confirmed candidate. It lets chat sessions use the
// service as their transaction sink.
func (s *TransactionService) Submit(ctx context.Context, candidate parser.Candidate) error {
	date, err := candidate.Timestamp()
	if err != nil {
		return err
	}

	_, err = s.CreateTransaction(ctx, TransactionCreate{
		Description: candidate.Description,
		Amount:      candidate.Amount,
		Category:    string(candidate.Category),
		PaymentType: candidate.PaymentType,
		Location:    candidate.Location,
		Date:        date,
	})
	return err
}
