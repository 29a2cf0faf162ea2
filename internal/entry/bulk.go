package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spend-tracker/internal/parser"
)

const (
	baseDelay = 800 * time.Millisecond
	stepDelay = 400 * time.Millisecond
)

// PacingDelay is the pause before saving the i-th (0-based) candidate.
func PacingDelay(i int) time.Duration {
	return baseDelay + time.Duration(i)*stepDelay
}

type sink interface {
	Submit(ctx context.Context, candidate parser.Candidate) error
}

// ItemResult is the outcome of saving one candidate.
type ItemResult struct {
	Index     int
	Candidate parser.Candidate
	Err       error
}

func (r ItemResult) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed to save transaction %d: %v", r.Index+1, r.Err)
	}
	return fmt.Sprintf("Saved transaction %d: %s", r.Index+1, r.Candidate.Summary())
}

// Report collects every item of a bulk run in input order.
type Report struct {
	Items []ItemResult
	Saved int
}

func (r Report) Summary() string {
	return fmt.Sprintf("🎉 Successfully saved %d transactions!", r.Saved)
}

func (r Report) Failed() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// BulkRecorder saves a batch of candidates one at a time. A failed item is
// reported and the run carries on with the next one.
type BulkRecorder struct {
	sink   sink
	logger *logrus.Logger

	// Progress, if set, is called after each item.
	Progress func(ItemResult)

	// Pacing is the pause before each item. Defaults to PacingDelay.
	Pacing func(i int) time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

func NewBulkRecorder(s sink, logger *logrus.Logger) *BulkRecorder {
	return &BulkRecorder{
		sink:   s,
		logger: logger,
		Pacing: PacingDelay,
		sleep:  sleepContext,
	}
}

// Record saves candidates in order. It only returns an error when ctx ends
// between items; the report then holds what was done so far.
func (b *BulkRecorder) Record(ctx context.Context, candidates []parser.Candidate) (Report, error) {
	report := Report{Items: make([]ItemResult, 0, len(candidates))}

	for i, candidate := range candidates {
		if err := b.sleep(ctx, b.Pacing(i)); err != nil {
			return report, err
		}

		result := ItemResult{Index: i, Candidate: candidate}
		result.Err = b.sink.Submit(ctx, candidate)
		if result.Err != nil {
			b.logger.WithError(result.Err).WithField("index", i).Warn("Entry.BulkRecorder.Record.item failed")
		} else {
			report.Saved++
		}

		report.Items = append(report.Items, result)
		if b.Progress != nil {
			b.Progress(result)
		}
	}

	b.logger.WithFields(logrus.Fields{
		"total": len(candidates),
		"saved": report.Saved,
	}).Info("Entry.BulkRecorder.Record.complete")

	return report, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
