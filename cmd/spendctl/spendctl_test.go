package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/entry"
	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

type mockParser struct {
	mock.Mock
}

func (m *mockParser) Parse(ctx context.Context, text string) (*parser.Result, error) {
	args := m.Called(ctx, text)
	result, _ := args.Get(0).(*parser.Result)
	return result, args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Submit(ctx context.Context, candidate parser.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func testCandidate(description, amount string) parser.Candidate {
	return parser.Candidate{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    parser.CategoryFood,
		PaymentType: parser.DefaultPaymentType,
		Location:    parser.DefaultLocation,
		Date:        "2025-01-10",
	}
}

func TestRunChat_ConfirmSingle(t *testing.T) {
	coffee := testCandidate("coffee", "4")
	p := new(mockParser)
	p.On("Parse", mock.Anything, "coffee 4").Return(&parser.Result{Candidates: []parser.Candidate{coffee}}, nil)
	sink := new(mockSink)
	sink.On("Submit", mock.Anything, coffee).Return(nil).Once()

	logger := logging.SetupLogging()
	session := chat.NewSession(p, logger)
	var out bytes.Buffer

	err := runChat(context.Background(), session, sink, strings.NewReader("coffee 4\ny\nquit\n"), &out, logger)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Saved")
	sink.AssertExpectations(t)
}

func TestRunChat_SelectionThenDecline(t *testing.T) {
	batch := []parser.Candidate{testCandidate("lunch", "12"), testCandidate("dinner", "30")}
	p := new(mockParser)
	p.On("Parse", mock.Anything, "lunch 12 dinner 30").Return(&parser.Result{Candidates: batch}, nil).Once()
	sink := new(mockSink)

	logger := logging.SetupLogging()
	session := chat.NewSession(p, logger)
	var out bytes.Buffer

	err := runChat(context.Background(), session, sink, strings.NewReader("lunch 12 dinner 30\n2\nn\n"), &out, logger)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "dinner")
	assert.Equal(t, chat.StateIdle, session.Snapshot().State)
	assert.Nil(t, session.Snapshot().Form)
	sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	p.AssertExpectations(t)
}

func TestRunRecord_ReportsFailures(t *testing.T) {
	batch := []parser.Candidate{testCandidate("lunch", "12"), testCandidate("taxi", "15")}
	p := new(mockParser)
	p.On("Parse", mock.Anything, "lunch 12 taxi 15").Return(&parser.Result{Candidates: batch}, nil)
	sink := new(mockSink)
	sink.On("Submit", mock.Anything, batch[0]).Return(errors.New("database unavailable")).Once()
	sink.On("Submit", mock.Anything, batch[1]).Return(nil).Once()

	logger := logging.SetupLogging()
	recorder := entry.NewBulkRecorder(sink, logger)
	recorder.Pacing = func(int) time.Duration { return 0 }
	var out bytes.Buffer

	err := runRecord(context.Background(), p, recorder, "lunch 12 taxi 15", &out, logger)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Failed to save transaction 1: database unavailable")
	assert.Contains(t, out.String(), "Successfully saved 1 transactions!")
	sink.AssertExpectations(t)
}

func TestRunRecord_NothingFound(t *testing.T) {
	p := new(mockParser)
	p.On("Parse", mock.Anything, "hello").Return(&parser.Result{}, nil)
	sink := new(mockSink)
	logger := logging.SetupLogging()
	var out bytes.Buffer

	err := runRecord(context.Background(), p, entry.NewBulkRecorder(sink, logger), "hello", &out, logger)

	require.NoError(t, err)
	assert.Contains(t, out.String(), chat.NoneFoundMessage)
	sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestRunParse_PrintsJSON(t *testing.T) {
	p := new(mockParser)
	p.On("Parse", mock.Anything, "lunch 12.50").
		Return(&parser.Result{Candidates: []parser.Candidate{testCandidate("lunch", "12.50")}}, nil)
	var out bytes.Buffer

	require.NoError(t, runParse(context.Background(), p, "lunch 12.50", &out))

	var printed []parsedCandidate
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	require.Len(t, printed, 1)
	assert.InDelta(t, 12.5, printed[0].Amount, 1e-9)
	assert.Equal(t, "Food", printed[0].Category)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"chat", "record", "parse"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
