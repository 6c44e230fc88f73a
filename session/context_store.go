package session

import (
	"sync"

	"github.com/cinemesh/cinemesh/a2a"
)

// ContextStore is a volatile, process-local store mapping context ids to
// their ordered message history. It is safe for concurrent access; each
// read returns a defensive copy so callers can never mutate internal state.
//
// Contract:
//   - Contexts are created lazily on first append or read
//   - Appends are idempotent by message id within one context
//   - History order is append-completion order, not message-arrival order;
//     two passes racing on one context interleave at their append points
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string][]a2a.Message
	seen     map[string]map[string]struct{}
}

// NewContextStore constructs an empty context store.
func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[string][]a2a.Message),
		seen:     make(map[string]map[string]struct{}),
	}
}

// Append adds a message to the context's history. Re-delivery of a message
// id already present in the context is a no-op; the return value reports
// whether the message was actually appended.
func (s *ContextStore) Append(contextID string, msg a2a.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.seen[contextID]
	if !ok {
		ids = make(map[string]struct{})
		s.seen[contextID] = ids
	}
	if _, dup := ids[msg.MessageID]; dup {
		return false
	}
	ids[msg.MessageID] = struct{}{}
	s.contexts[contextID] = append(s.contexts[contextID], msg)
	return true
}

// History returns a copy of the context's ordered message log. An unknown
// context yields an empty slice, not an error.
func (s *ContextStore) History(contextID string) []a2a.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.contexts[contextID]
	out := make([]a2a.Message, len(history))
	copy(out, history)
	return out
}

// Len reports the number of messages stored for a context.
func (s *ContextStore) Len(contextID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts[contextID])
}
