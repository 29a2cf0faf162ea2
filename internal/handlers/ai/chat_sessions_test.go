package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spend-tracker/internal/chat"
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

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, candidate parser.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

type chatFixture struct {
	api    humatest.TestAPI
	store  *chat.Store
	parser *mockParser
	sink   *mockSubmitter
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	_, api := humatest.New(t)
	p := new(mockParser)
	sink := new(mockSubmitter)
	store := chat.NewStore(p, logging.SetupLogging(), time.Hour)
	NewChatHandler(store, sink).Register(api)
	return &chatFixture{api: api, store: store, parser: p, sink: sink}
}

func (f *chatFixture) open(t *testing.T) string {
	t.Helper()
	resp := f.api.Post("/api/ai/chat/sessions")
	require.Equal(t, http.StatusCreated, resp.Code)

	var reply ChatReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, chat.GreetingMessage, reply.Message)
	assert.Equal(t, "idle", reply.State)
	return reply.SessionID
}

func (f *chatFixture) send(t *testing.T, id, text string) (int, ChatReply) {
	t.Helper()
	resp := f.api.Post("/api/ai/chat/sessions/"+id+"/messages", map[string]any{"text": text})

	var reply ChatReply
	if resp.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	}
	return resp.Code, reply
}

func chatCandidate(description, amount string) parser.Candidate {
	return parser.Candidate{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    parser.CategoryFood,
		PaymentType: parser.DefaultPaymentType,
		Location:    parser.DefaultLocation,
		Date:        "2025-01-10",
	}
}

func TestHTTP_Chat_SelectThenConfirm(t *testing.T) {
	f := newChatFixture(t)
	id := f.open(t)

	batch := []parser.Candidate{chatCandidate("lunch", "12"), chatCandidate("dinner", "30")}
	f.parser.On("Parse", mock.Anything, "lunch 12 dinner 30").Return(&parser.Result{Candidates: batch}, nil).Once()

	code, reply := f.send(t, id, "lunch 12 dinner 30")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "awaiting_selection", reply.State)
	require.Len(t, reply.Pending, 2)
	assert.Nil(t, reply.Form)

	code, reply = f.send(t, id, "2")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "idle", reply.State)
	require.NotNil(t, reply.Form)
	assert.Equal(t, "dinner", reply.Form.Description)
	assert.Empty(t, reply.Pending)

	f.sink.On("Submit", mock.Anything, batch[1]).Return(nil).Once()
	resp := f.api.Post("/api/ai/chat/sessions/" + id + "/confirm")
	require.Equal(t, http.StatusOK, resp.Code)
	var saved ChatReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.Nil(t, saved.Form)
	assert.Contains(t, saved.Message, "dinner")

	f.parser.AssertExpectations(t)
	f.sink.AssertExpectations(t)
}

func TestHTTP_Chat_DiscardSingleCandidate(t *testing.T) {
	f := newChatFixture(t)
	id := f.open(t)

	f.parser.On("Parse", mock.Anything, "coffee 4").
		Return(&parser.Result{Candidates: []parser.Candidate{chatCandidate("coffee", "4")}}, nil)

	code, reply := f.send(t, id, "coffee 4")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "awaiting_single_confirmation", reply.State)
	require.NotNil(t, reply.Form)

	resp := f.api.Post("/api/ai/chat/sessions/" + id + "/discard")
	require.Equal(t, http.StatusOK, resp.Code)
	var discarded ChatReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&discarded))
	assert.Equal(t, "idle", discarded.State)
	assert.Nil(t, discarded.Form)

	resp = f.api.Post("/api/ai/chat/sessions/" + id + "/confirm")
	assert.Equal(t, http.StatusConflict, resp.Code)
	f.sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestHTTP_Chat_ConfirmFailureKeepsForm(t *testing.T) {
	f := newChatFixture(t)
	id := f.open(t)

	coffee := chatCandidate("coffee", "4")
	f.parser.On("Parse", mock.Anything, "coffee 4").
		Return(&parser.Result{Candidates: []parser.Candidate{coffee}}, nil)
	f.sink.On("Submit", mock.Anything, coffee).Return(errors.New("database unavailable")).Once()

	code, _ := f.send(t, id, "coffee 4")
	require.Equal(t, http.StatusOK, code)

	resp := f.api.Post("/api/ai/chat/sessions/" + id + "/confirm")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	session, ok := f.store.Get(uuid.FromStringOrNil(id))
	require.True(t, ok)
	assert.NotNil(t, session.Snapshot().Form)
}

func TestHTTP_Chat_BlankMessage(t *testing.T) {
	f := newChatFixture(t)
	id := f.open(t)

	code, _ := f.send(t, id, "  ")

	assert.Equal(t, http.StatusBadRequest, code)
	f.parser.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestHTTP_Chat_UnknownSession(t *testing.T) {
	f := newChatFixture(t)
	missing := uuid.Must(uuid.NewV4()).String()

	code, _ := f.send(t, missing, "coffee 4")
	assert.Equal(t, http.StatusNotFound, code)

	resp := f.api.Delete("/api/ai/chat/sessions/" + missing)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_Chat_CloseDropsBatch(t *testing.T) {
	f := newChatFixture(t)
	id := f.open(t)

	batch := []parser.Candidate{chatCandidate("a", "1"), chatCandidate("b", "2")}
	f.parser.On("Parse", mock.Anything, "a 1 b 2").Return(&parser.Result{Candidates: batch}, nil)
	code, _ := f.send(t, id, "a 1 b 2")
	require.Equal(t, http.StatusOK, code)

	resp := f.api.Delete("/api/ai/chat/sessions/" + id)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Zero(t, f.store.Len())

	code, _ = f.send(t, id, "1")
	assert.Equal(t, http.StatusNotFound, code)
	f.sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
