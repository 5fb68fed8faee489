package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"courtside/model"
)

// fileSession is the on-disk shape of one session.
type fileSession struct {
	ID        string          `json:"id"`
	UpdatedAt time.Time       `json:"updated_at"`
	Messages  []model.Message `json:"messages"`
}

// FileStore persists each session as one JSON file under a sessions
// directory. A single process-wide mutex serializes writes; history files
// are small and turns are infrequent.
type FileStore struct {
	mu          sync.Mutex
	sessionsDir string
}

// NewFileStore creates the sessions directory (user-only access) and
// returns a store over it.
func NewFileStore(dataDir string) (*FileStore, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FileStore{sessionsDir: sessionsDir}, nil
}

func (s *FileStore) path(sessionID string) string {
	return filepath.Join(s.sessionsDir, sessionID+".json")
}

func (s *FileStore) load(sessionID string) (*fileSession, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if os.IsNotExist(err) {
		return &fileSession{ID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var sess fileSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *FileStore) save(sess *fileSession) error {
	sess.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	// 0600: session files hold conversation history.
	if err := os.WriteFile(s.path(sess.ID), data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(sessionID string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return model.CloneHistory(sess.Messages), nil
}

// Append implements Store.
func (s *FileStore) Append(sessionID string, messages ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(sessionID)
	if err != nil {
		return err
	}
	sess.Messages = append(sess.Messages, messages...)
	return s.save(sess)
}

// Trim implements Store.
func (s *FileStore) Trim(sessionID string, keep int) error {
	if keep <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(sessionID)
	if err != nil {
		return err
	}
	if len(sess.Messages) <= keep {
		return nil
	}
	sess.Messages = sess.Messages[len(sess.Messages)-keep:]
	return s.save(sess)
}

// Reset implements Store.
func (s *FileStore) Reset(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(sessionID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
