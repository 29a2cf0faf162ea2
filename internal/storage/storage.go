package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/spend-tracker/internal/config"
)

// ErrNotFound is returned when a record addressed by ID does not exist.
var ErrNotFound = errors.New("storage: not found")

type Storage struct {
	DB *sql.DB
	db bob.DB
	Reader
}

// NewStorage opens the database and waits for it to accept connections,
// retrying with exponential backoff for up to connectTimeout.
func NewStorage(ctx context.Context, env *config.Config, logger *logrus.Logger, connectTimeout time.Duration) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout
	err = backoff.RetryNotify(func() error {
		return db.PingContext(ctx)
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		logger.WithError(err).WithField("retryIn", wait.String()).Warn("Storage.NewStorage.ping failed")
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	return New(db), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     db,
		db:     bobDB,
		Reader: NewReader(bobDB),
	}
}

// Write starts a database transaction for one operator action.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) PingContext(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
