package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spend-tracker/internal/logging"
)

// ErrInputMissing is returned for empty or whitespace-only input. The model
// is never called in that case.
var ErrInputMissing = errors.New("input text is required")

// completer is the model invoker as seen by the pipeline.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one parse request.
type Result struct {
	Input      string
	Candidates []Candidate
	Dropped    []Assessment
}

// Pipeline runs prompt building, model invocation, extraction and
// validation for a piece of free text.
type Pipeline struct {
	model     completer
	validator Validator
	logger    *logrus.Logger
	now       func() time.Time
}

func NewPipeline(model completer, validator Validator, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		model:     model,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// Parse turns input into candidates. Errors are ErrInputMissing, a wrapped
// model error, or *UnparseableResponseError. No candidates is a valid result.
func (p *Pipeline) Parse(ctx context.Context, input string) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrInputMissing
	}

	logData := logging.GetLogData(ctx)
	prompt := BuildPrompt(input, p.now())

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("modelMs")
	}
	raw, err := p.model.Complete(ctx, prompt)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, fmt.Errorf("parser: invoke model: %w", err)
	}

	value, err := Extract(raw)
	if err != nil {
		p.logger.WithError(err).WithField("rawResponse", raw).Warn("Parser.Parse.unparseable response")
		return nil, err
	}

	result := &Result{Input: input}
	for _, assessment := range p.validator.Assess(value) {
		if assessment.Accepted() {
			result.Candidates = append(result.Candidates, *assessment.Candidate)
			continue
		}
		result.Dropped = append(result.Dropped, assessment)
	}

	if len(result.Dropped) > 0 && p.logger.IsLevelEnabled(logrus.DebugLevel) {
		p.logger.WithField("dropped", spew.Sdump(result.Dropped)).Debug("Parser.Parse.dropped entries")
	}
	if logData != nil {
		logData.AddData("candidateCount", len(result.Candidates))
		logData.AddData("droppedCount", len(result.Dropped))
	}

	return result, nil
}
