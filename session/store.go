// Package session persists per-chat conversation history behind a small
// store interface, with an in-memory implementation and a JSON-file one.
package session

import (
	"sync"

	"courtside/model"
)

// Store holds the append-only conversation log per chat session. Get must
// return a copy: callers snapshot history before running concurrent turns
// and must never share a mutable reference with the store.
type Store interface {
	// Get returns a copy of the session's history, empty for an unknown id.
	Get(sessionID string) ([]model.Message, error)

	// Append adds messages to the end of the session's history, creating
	// the session on first use.
	Append(sessionID string, messages ...model.Message) error

	// Trim drops all but the last keep messages. keep <= 0 is a no-op.
	Trim(sessionID string, keep int) error

	// Reset discards the session's history.
	Reset(sessionID string) error
}

// MemoryStore is the in-process Store used by default and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]model.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]model.Message)}
}

// Get implements Store.
func (s *MemoryStore) Get(sessionID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneHistory(s.sessions[sessionID]), nil
}

// Append implements Store.
func (s *MemoryStore) Append(sessionID string, messages ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)
	return nil
}

// Trim implements Store.
func (s *MemoryStore) Trim(sessionID string, keep int) error {
	if keep <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.sessions[sessionID]
	if len(history) > keep {
		trimmed := make([]model.Message, keep)
		copy(trimmed, history[len(history)-keep:])
		s.sessions[sessionID] = trimmed
	}
	return nil
}

// Reset implements Store.
func (s *MemoryStore) Reset(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
