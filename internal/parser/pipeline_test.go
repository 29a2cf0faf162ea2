package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spend-tracker/internal/logging"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newTestPipeline(model completer) *Pipeline {
	p := NewPipeline(model, Validator{StrictCategories: true}, logging.SetupLogging())
	p.now = func() time.Time { return time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestParse_BlankInputSkipsModel(t *testing.T) {
	model := new(mockCompleter)
	p := newTestPipeline(model)

	for _, input := range []string{"", "   ", "\n\t"} {
		result, err := p.Parse(context.Background(), input)
		assert.ErrorIs(t, err, ErrInputMissing)
		assert.Nil(t, result)
	}
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParse_TwoCandidates(t *testing.T) {
	model := new(mockCompleter)
	model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return assert.ObjectsAreEqual(BuildPrompt("lunch $12, coffee $5 today", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)), prompt)
	})).Return(`[
  {"description":"lunch","amount":12,"category":"Food","date":"2025-01-10"},
  {"description":"coffee","amount":5,"category":"Food","paymentType":"Unknown","date":"2025-01-10"}
]`, nil)

	result, err := newTestPipeline(model).Parse(context.Background(), "lunch $12, coffee $5 today")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	for _, c := range result.Candidates {
		assert.Equal(t, "2025-01-10", c.Date)
		assert.Equal(t, "Card", c.PaymentType)
		assert.Equal(t, "Unknown", c.Location)
	}
	assert.Equal(t, "lunch $12, coffee $5 today", result.Input)
	assert.Empty(t, result.Dropped)
	model.AssertExpectations(t)
}

func TestParse_DroppedEntriesReported(t *testing.T) {
	model := new(mockCompleter)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"description":"flight","amount":300,"category":"Travel","date":"2025-01-10"}]`, nil)

	result, err := newTestPipeline(model).Parse(context.Background(), "flight 300")
	require.NoError(t, err)

	assert.Empty(t, result.Candidates)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, DropUnknownCategory, result.Dropped[0].Reason)
}

func TestParse_ModelError(t *testing.T) {
	modelErr := errors.New("connection refused")
	model := new(mockCompleter)
	model.On("Complete", mock.Anything, mock.Anything).Return("", modelErr)

	result, err := newTestPipeline(model).Parse(context.Background(), "coffee 4")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, modelErr)
}

func TestParse_Unparseable(t *testing.T) {
	model := new(mockCompleter)
	model.On("Complete", mock.Anything, mock.Anything).Return("no idea, sorry", nil)

	_, err := newTestPipeline(model).Parse(context.Background(), "coffee 4")

	var unparseable *UnparseableResponseError
	require.ErrorAs(t, err, &unparseable)
	assert.Equal(t, "no idea, sorry", unparseable.Raw)
}

func TestParse_RecordsLogData(t *testing.T) {
	model := new(mockCompleter)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"description":"gas","amount":40,"category":"Utilities","date":"2025-01-10"}]`, nil)

	logData := logging.NewLogData(logging.SetupLogging())
	ctx := logging.WithLogData(context.Background(), logData)

	_, err := newTestPipeline(model).Parse(ctx, "gas 40")
	require.NoError(t, err)

	fields := logData.Log().Data
	assert.Equal(t, 1, fields["candidateCount"])
	assert.Contains(t, fields, "modelMs")
}
