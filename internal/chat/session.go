package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spend-tracker/internal/llm"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

// State is the disambiguation state of a session.
type State int

const (
	StateIdle State = iota
	StateAwaitingSingleConfirmation
	StateAwaitingSelection
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSingleConfirmation:
		return "awaiting_single_confirmation"
	case StateAwaitingSelection:
		return "awaiting_selection"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a session is still handling a previous message.
	ErrBusy = errors.New("chat: previous message still in progress")

	ErrNothingToConfirm = errors.New("chat: no transaction waiting for confirmation")
)

type transactionParser interface {
	Parse(ctx context.Context, text string) (*parser.Result, error)
}

// Submitter persists a confirmed candidate.
type Submitter interface {
	Submit(ctx context.Context, candidate parser.Candidate) error
}

// Reply is what the assistant says back, plus the state it left behind.
type Reply struct {
	Message string
	State   State

	// Form is the candidate handed to the entry form, if any. It is never
	// saved until Confirm is called.
	Form *parser.Candidate

	// Pending is the numbered batch while a selection is outstanding.
	Pending []parser.Candidate
}

// Session holds the pending batch and form candidate for one user
// conversation. It is safe for concurrent use; overlapping messages are
// rejected with ErrBusy rather than queued.
type Session struct {
	ID uuid.UUID

	parser transactionParser
	logger *logrus.Logger

	inFlight sync.Mutex

	mu      sync.Mutex
	state   State
	pending []parser.Candidate
	form    *parser.Candidate
}

func NewSession(p transactionParser, logger *logrus.Logger) *Session {
	return &Session{
		ID:     uuid.Must(uuid.NewV4()),
		parser: p,
		logger: logger,
	}
}

// Handle feeds one user message to the session.
func (s *Session) Handle(ctx context.Context, text string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, parser.ErrInputMissing
	}
	if !s.inFlight.TryLock() {
		return Reply{}, ErrBusy
	}
	defer s.inFlight.Unlock()

	s.mu.Lock()
	if s.state == StateAwaitingSelection {
		defer s.mu.Unlock()
		return s.handleSelection(text), nil
	}
	s.mu.Unlock()

	result, err := s.parser.Parse(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).WithField("sessionID", s.ID.String()).Warn("Chat.Session.Handle.parse failed")
		return s.reply(failureMessage(err)), nil
	}

	switch len(result.Candidates) {
	case 0:
		return s.reply(NoneFoundMessage), nil
	case 1:
		candidate := result.Candidates[0]
		s.form = &candidate
		s.state = StateAwaitingSingleConfirmation
		return s.reply(foundMessage(candidate)), nil
	default:
		s.pending = result.Candidates
		s.form = nil
		s.state = StateAwaitingSelection
		return s.reply(listMessage(result.Candidates)), nil
	}
}

// handleSelection runs with mu held.
func (s *Session) handleSelection(text string) Reply {
	if k, ok := leadingInt(text); ok && k >= 1 && k <= len(s.pending) {
		selected := s.pending[k-1]
		s.form = &selected
		s.pending = nil
		s.state = StateIdle
		return s.reply(selectedMessage(selected))
	}

	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "cancel") || strings.Contains(lowered, "no") {
		s.pending = nil
		s.state = StateIdle
		return s.reply(CancelledMessage)
	}

	return s.reply(ReselectMessage)
}

// Confirm submits the form candidate. On failure the candidate stays on the
// form so the user can retry.
func (s *Session) Confirm(ctx context.Context, sink Submitter) (Reply, error) {
	if !s.inFlight.TryLock() {
		return Reply{}, ErrBusy
	}
	defer s.inFlight.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return Reply{}, ErrNothingToConfirm
	}

	candidate := *s.form
	if err := sink.Submit(ctx, candidate); err != nil {
		return Reply{}, fmt.Errorf("chat: submit transaction: %w", err)
	}

	s.clearForm()
	return s.reply(savedMessage(candidate)), nil
}

// Discard drops the form candidate without saving it.
func (s *Session) Discard() Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearForm()
	return s.reply("Okay, I've cleared the form.")
}

// Snapshot reports the current state without changing it.
func (s *Session) Snapshot() Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reply("")
}

func (s *Session) clearForm() {
	s.form = nil
	if s.state == StateAwaitingSingleConfirmation {
		s.state = StateIdle
	}
}

func (s *Session) reply(message string) Reply {
	r := Reply{Message: message, State: s.state}
	if s.form != nil {
		form := *s.form
		r.Form = &form
	}
	if len(s.pending) > 0 {
		r.Pending = append([]parser.Candidate(nil), s.pending...)
	}
	return r
}

func failureMessage(err error) string {
	var unparseable *parser.UnparseableResponseError
	switch {
	case errors.Is(err, llm.ErrModelUnavailable):
		return unavailableMessage
	case errors.As(err, &unparseable):
		return unparseableMessage
	default:
		return genericMessage
	}
}

// leadingInt reads an optionally signed integer prefix, so "2" and "2 please"
// both select the second entry.
func leadingInt(text string) (int, bool) {
	s := strings.TrimSpace(text)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
