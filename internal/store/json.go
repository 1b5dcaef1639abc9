package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thead76/PathFinder/internal/chat"
)

// JSONStore persists the session list as one JSON array in a single file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON blob store at path, creating the parent
// directory if needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Load() ([]*chat.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session store: %w", err)
	}

	sessions, ok := decodeSnapshot(data)
	if !ok {
		// Unparseable or not an array: discard the blob so the next start
		// is clean. Partial data is never resurrected.
		_ = os.Remove(s.path)
		return nil, nil
	}
	return sessions, nil
}

func (s *JSONStore) Save(sessions []*chat.Session) error {
	if sessions == nil {
		sessions = []*chat.Session{}
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}

	// Write-then-rename so the blob is replaced atomically, never half-written.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session store: %w", err)
	}
	return nil
}

func (s *JSONStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session store: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

// decodeSnapshot parses the raw blob. ok=false means the blob as a whole is
// unusable (not valid JSON, or not an array).
func decodeSnapshot(data []byte) ([]*chat.Session, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}

	sessions := make([]*chat.Session, 0, len(raw))
	for _, el := range raw {
		if sess, ok := decodeSession(el); ok {
			sessions = append(sessions, sess)
		}
	}
	return sessions, true
}

// decodeSession validates a single element: id and title must be strings
// and messages must be an array. Elements failing validation are dropped,
// not repaired.
func decodeSession(data []byte) (*chat.Session, bool) {
	var rec struct {
		ID        *string         `json:"id"`
		Title     *string         `json:"title"`
		Messages  *[]chat.Message `json:"messages"`
		CreatedAt time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	if rec.ID == nil || rec.Title == nil || rec.Messages == nil {
		return nil, false
	}
	return &chat.Session{
		ID:        *rec.ID,
		Title:     *rec.Title,
		Messages:  *rec.Messages,
		CreatedAt: rec.CreatedAt,
	}, true
}
