package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thead76/PathFinder/internal/chat"
	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    messages   TEXT NOT NULL DEFAULT '[]',
    position   INTEGER NOT NULL,
    created_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sessions_position ON sessions(position);
`

// SQLiteStore implements Store backed by a SQLite database. The snapshot
// contract is preserved: Save replaces every row in one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]*chat.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, title, messages, created_at
		FROM sessions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*chat.Session
	for rows.Next() {
		var sess chat.Session
		var msgJSON, createdAt string
		if err := rows.Scan(&sess.ID, &sess.Title, &msgJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var msgs []chat.Message
		if err := json.Unmarshal([]byte(msgJSON), &msgs); err != nil {
			// Row with an unreadable message payload: drop it, same as the
			// blob store's validation filter.
			continue
		}
		sess.Messages = msgs
		sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) Save(sessions []*chat.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("replace sessions: %w", err)
	}

	for i, sess := range sessions {
		msgs := sess.Messages
		if msgs == nil {
			msgs = []chat.Message{}
		}
		msgJSON, err := json.Marshal(msgs)
		if err != nil {
			return fmt.Errorf("marshal messages: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO sessions (id, title, messages, position, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			sess.ID, sess.Title, string(msgJSON), i,
			sess.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
