package storage

import (
	"context"

	"github.com/stephenafamo/bob"
)

// Tx is the transactional executor a Writer runs on. bob.Tx satisfies it.
type Tx interface {
	bob.Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer gives actions table access inside one database transaction.
type Writer struct {
	tx Tx
	Reader
}

func NewWriter(tx Tx) *Writer {
	return &Writer{
		tx:     tx,
		Reader: NewReader(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
