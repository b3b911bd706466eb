package memory

import (
	"context"
	"sync"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps per-session history in fixed-capacity ring
// buffers. Appends are serialized per store, which makes them atomic
// per session identifier.
type SessionStore struct {
	mu           sync.RWMutex
	maxExchanges int
	sessions     map[string]*ring
}

// ring is a fixed-capacity window of exchanges.
type ring struct {
	exchanges []domain.Exchange
	capacity  int
}

func (r *ring) append(ex domain.Exchange) {
	if len(r.exchanges) == r.capacity {
		// Evict the oldest exchange.
		copy(r.exchanges, r.exchanges[1:])
		r.exchanges[len(r.exchanges)-1] = ex
		return
	}
	r.exchanges = append(r.exchanges, ex)
}

// NewSessionStore creates a session store holding at most maxExchanges
// exchanges per session. Non-positive values fall back to the default.
func NewSessionStore(maxExchanges int) *SessionStore {
	if maxExchanges <= 0 {
		maxExchanges = domain.DefaultMaxExchanges
	}
	return &SessionStore{
		maxExchanges: maxExchanges,
		sessions:     make(map[string]*ring),
	}
}

// Append adds one exchange, creating the session if needed and
// evicting the oldest exchange when the window is full.
func (s *SessionStore) Append(_ context.Context, sessionID string, exchange domain.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.sessions[sessionID]
	if !ok {
		r = &ring{capacity: s.maxExchanges}
		s.sessions[sessionID] = r
	}
	r.append(exchange)
	return nil
}

// History returns the session's messages in chronological order.
// Unknown sessions yield an empty history.
func (s *SessionStore) History(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	messages := make([]domain.Message, 0, len(r.exchanges)*2)
	for _, ex := range r.exchanges {
		messages = append(messages, ex.Messages()...)
	}
	return messages, nil
}

// Clear removes all sessions.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*ring)
	return nil
}
