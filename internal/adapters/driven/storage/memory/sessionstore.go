package memory

import (
	"context"
	"sync"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// session holds one conversation's turns behind its own lock, so
// appends to one session never block reads of another.
type session struct {
	mu    sync.Mutex
	turns []domain.ChatTurn
}

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
	}
}

// get returns the session for the ID, creating it when create is set.
func (s *SessionStore) get(id string, create bool) (*session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok || !create {
		return sess, ok
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess, true
	}
	sess = &session{}
	s.sessions[id] = sess
	return sess, true
}

// Create makes an empty session for the ID. Creating an existing
// session is a no-op.
func (s *SessionStore) Create(_ context.Context, id string) error {
	s.get(id, true)
	return nil
}

// AppendTurn appends a turn to the session, creating it if absent, and
// returns a copy of the full turn sequence.
func (s *SessionStore) AppendTurn(_ context.Context, id string, turn domain.ChatTurn) ([]domain.ChatTurn, error) {
	sess, _ := s.get(id, true)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = append(sess.turns, turn)

	out := make([]domain.ChatTurn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

// Turns returns a copy of the session's turn sequence.
func (s *SessionStore) Turns(_ context.Context, id string) ([]domain.ChatTurn, error) {
	sess, ok := s.get(id, false)
	if !ok {
		return nil, domain.ErrNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.ChatTurn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

// Len returns the number of sessions, for stats reporting.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
