package chat

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// Store keeps live sessions in memory. A session lives until it is closed or
// has been idle for longer than the store's idle timeout; a server restart
// drops every pending batch, which is never persisted.
type Store struct {
	parser transactionParser
	logger *logrus.Logger
	idle   time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*storedSession
}

type storedSession struct {
	session *Session
	touched time.Time
}

// NewStore creates a Store. An idle timeout of zero never expires sessions.
func NewStore(p transactionParser, logger *logrus.Logger, idle time.Duration) *Store {
	return &Store{
		parser:   p,
		logger:   logger,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*storedSession),
	}
}

// Open starts a session. Expired sessions are swept first.
func (s *Store) Open() *Session {
	session := NewSession(s.parser, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.sessions[session.ID] = &storedSession{session: session, touched: now}

	return session
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	now := s.now()
	if s.expired(stored, now) {
		delete(s.sessions, id)
		s.logger.WithField("sessionID", id.String()).Debug("Chat.Store.Get.session expired")
		return nil, false
	}
	stored.touched = now
	return stored.session, true
}

// Close abandons a session and whatever it had pending.
func (s *Store) Close(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *Store) expired(stored *storedSession, now time.Time) bool {
	return s.idle > 0 && now.Sub(stored.touched) > s.idle
}

// sweep must be called with mu held.
func (s *Store) sweep(now time.Time) {
	removed := 0
	for id, stored := range s.sessions {
		if s.expired(stored, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.WithField("removed", removed).Debug("Chat.Store.sweep.expired sessions")
	}
}
