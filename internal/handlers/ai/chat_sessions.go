package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

// ChatReply is what the assistant says after each session operation.
type ChatReply struct {
	SessionID string      `json:"sessionId"`
	Message   string      `json:"message"`
	State     string      `json:"state" enum:"idle,awaiting_single_confirmation,awaiting_selection"`
	Form      *Candidate  `json:"form,omitempty" doc:"Candidate filled into the entry form, saved only on confirm"`
	Pending   []Candidate `json:"pending,omitempty" doc:"Numbered candidates awaiting a selection"`
}

type ChatReplyOutput struct {
	Body ChatReply
}

type CreateSessionOutput struct {
	Status int
	Body   ChatReply
}

type SessionInput struct {
	ID string `path:"id" format:"uuid" doc:"Session UUID"`
}

type SendMessageInput struct {
	SessionInput
	Body struct {
		Text string `json:"text" doc:"What the user typed"`
	}
}

type sessionStore interface {
	Open() *chat.Session
	Get(id uuid.UUID) (*chat.Session, bool)
	Close(id uuid.UUID) bool
}

// ChatHandler serves the disambiguation sessions under /api/ai/chat.
type ChatHandler struct {
	Sessions sessionStore
	Sink     chat.Submitter
}

func NewChatHandler(sessions sessionStore, sink chat.Submitter) *ChatHandler {
	return &ChatHandler{Sessions: sessions, Sink: sink}
}

func (h *ChatHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-chat-session",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat/sessions",
		Summary:     "Open chat session",
		Tags:        []string{"AI"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "send-chat-message",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat/sessions/{id}/messages",
		Summary:     "Send chat message",
		Description: "Parses the text, or answers a pending selection, and returns the assistant reply.",
		Tags:        []string{"AI"},
	}, h.message)

	huma.Register(api, huma.Operation{
		OperationID: "confirm-chat-transaction",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat/sessions/{id}/confirm",
		Summary:     "Save form transaction",
		Tags:        []string{"AI"},
	}, h.confirm)

	huma.Register(api, huma.Operation{
		OperationID: "discard-chat-transaction",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat/sessions/{id}/discard",
		Summary:     "Clear form transaction",
		Tags:        []string{"AI"},
	}, h.discard)

	huma.Register(api, huma.Operation{
		OperationID:   "close-chat-session",
		Method:        http.MethodDelete,
		Path:          "/api/ai/chat/sessions/{id}",
		Summary:       "Close chat session",
		Description:   "Abandons the session. Anything pending is dropped without saving.",
		Tags:          []string{"AI"},
		DefaultStatus: http.StatusNoContent,
	}, h.close)
}

func (h *ChatHandler) lookup(raw string) (*chat.Session, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid session id", err)
	}
	session, ok := h.Sessions.Get(id)
	if !ok {
		return nil, huma.NewError(http.StatusNotFound, "chat session not found")
	}
	return session, nil
}

func (h *ChatHandler) create(ctx context.Context, _ *struct{}) (*CreateSessionOutput, error) {
	session := h.Sessions.Open()
	reply := session.Snapshot()
	reply.Message = chat.GreetingMessage

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("sessionID", session.ID.String())
	}

	return &CreateSessionOutput{Status: http.StatusCreated, Body: toChatReply(session.ID, reply)}, nil
}

func (h *ChatHandler) message(ctx context.Context, input *SendMessageInput) (*ChatReplyOutput, error) {
	session, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	reply, err := session.Handle(ctx, input.Body.Text)
	switch {
	case errors.Is(err, parser.ErrInputMissing):
		return nil, huma.NewError(http.StatusBadRequest, "Input text is required")
	case errors.Is(err, chat.ErrBusy):
		return nil, huma.NewError(http.StatusConflict, "previous message still in progress")
	case err != nil:
		return nil, huma.NewError(http.StatusInternalServerError, "failed to handle message", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("sessionState", reply.State.String())
	}

	return &ChatReplyOutput{Body: toChatReply(session.ID, reply)}, nil
}

func (h *ChatHandler) confirm(ctx context.Context, input *SessionInput) (*ChatReplyOutput, error) {
	session, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	reply, err := session.Confirm(ctx, h.Sink)
	switch {
	case errors.Is(err, chat.ErrNothingToConfirm):
		return nil, huma.NewError(http.StatusConflict, "no transaction waiting for confirmation")
	case errors.Is(err, chat.ErrBusy):
		return nil, huma.NewError(http.StatusConflict, "previous message still in progress")
	case err != nil:
		return nil, huma.NewError(http.StatusInternalServerError, "failed to save transaction", err)
	}

	return &ChatReplyOutput{Body: toChatReply(session.ID, reply)}, nil
}

func (h *ChatHandler) discard(_ context.Context, input *SessionInput) (*ChatReplyOutput, error) {
	session, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &ChatReplyOutput{Body: toChatReply(session.ID, session.Discard())}, nil
}

func (h *ChatHandler) close(_ context.Context, input *SessionInput) (*struct{}, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid session id", err)
	}
	if !h.Sessions.Close(id) {
		return nil, huma.NewError(http.StatusNotFound, "chat session not found")
	}
	return nil, nil
}

func toChatReply(id uuid.UUID, reply chat.Reply) ChatReply {
	out := ChatReply{
		SessionID: id.String(),
		Message:   reply.Message,
		State:     reply.State.String(),
	}
	if reply.Form != nil {
		form := fromCandidate(*reply.Form)
		out.Form = &form
	}
	if len(reply.Pending) > 0 {
		out.Pending = fromCandidates(reply.Pending)
	}
	return out
}
