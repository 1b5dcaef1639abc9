// Package store persists the full session list as a single durable
// snapshot. Two drivers exist: a JSON blob file (default) and SQLite.
// Both implement the same contract: Load returns every stored session in
// order, Save atomically replaces the whole snapshot.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thead76/PathFinder/internal/chat"
)

// Driver names accepted in configuration.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Store is the persistence boundary for sessions. Implementations carry no
// state of their own beyond the last-written snapshot.
type Store interface {
	// Load reads the persisted snapshot. A missing snapshot yields an empty
	// list. A corrupted snapshot is discarded and also yields an empty list;
	// corruption never fails startup.
	Load() ([]*chat.Session, error)

	// Save serializes sessions and replaces the prior snapshot in full.
	Save(sessions []*chat.Session) error

	// Clear removes the snapshot entirely.
	Clear() error

	Close() error
}

// Open creates a Store for the given driver. An empty path selects the
// default location under ~/.local/share/pathfinder.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverJSON:
		if path == "" {
			p, err := DefaultJSONPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewJSONStore(path)
	case DriverSQLite:
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q (want %q or %q)", driver, DriverJSON, DriverSQLite)
	}
}

// DefaultJSONPath returns the default blob path (~/.local/share/pathfinder/sessions.json).
func DefaultJSONPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.json"), nil
}

// DefaultDBPath returns the default database path (~/.local/share/pathfinder/sessions.db).
func DefaultDBPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "pathfinder"), nil
}
