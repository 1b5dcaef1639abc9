package chat

import (
	"fmt"
	"os"
)

// Store is the persistence boundary the registry writes through. It is
// satisfied by the drivers in internal/store.
type Store interface {
	Load() ([]*Session, error)
	Save(sessions []*Session) error
	Clear() error
}

// Registry owns the in-memory session list (most-recently-created first)
// and the current-session pointer. Every mutation is persisted through the
// store before returning; persistence is best-effort and never fails the
// mutation itself.
//
// Registry is not safe for concurrent use. The Controller serializes all
// access to it.
type Registry struct {
	store    Store
	sessions []*Session
	current  string // session id; "" = no session bound
}

// NewRegistry loads the persisted sessions and binds the current pointer
// to the first one, if any. An unreadable store starts the registry empty
// rather than failing startup.
func NewRegistry(st Store) *Registry {
	sessions, err := st.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathfinder: load sessions: %v\n", err)
		sessions = nil
	}

	r := &Registry{store: st, sessions: sessions}
	if len(sessions) > 0 {
		r.current = sessions[0].ID
	}
	return r
}

// Sessions returns the session list, most recent first.
func (r *Registry) Sessions() []*Session {
	out := make([]*Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// CurrentID returns the bound session id, or "" when none is bound.
func (r *Registry) CurrentID() string { return r.current }

// Current returns the bound session, or nil when none is bound.
func (r *Registry) Current() *Session { return r.find(r.current) }

// Messages returns the message sequence of the session with the given id,
// or nil if it does not exist.
func (r *Registry) Messages(id string) []Message {
	sess := r.find(id)
	if sess == nil {
		return nil
	}
	return sess.Messages
}

// EnsureActive binds a session, synthesizing a fresh one if none is bound.
// Idempotent when already bound. Returns the bound session id.
func (r *Registry) EnsureActive() string {
	if r.current != "" {
		return r.current
	}
	sess := NewSession()
	r.sessions = append([]*Session{sess}, r.sessions...)
	r.current = sess.ID
	r.persist()
	return sess.ID
}

// Select binds the pointer to id if that session exists. Returns whether
// the pointer moved.
func (r *Registry) Select(id string) bool {
	if r.find(id) == nil {
		return false
	}
	r.current = id
	return true
}

// Unbind clears the current pointer without touching any session. The next
// send synthesizes a fresh session lazily.
func (r *Registry) Unbind() {
	r.current = ""
}

// Restart clears the entire store, persisted and in-memory, and unbinds
// the pointer.
func (r *Registry) Restart() {
	r.sessions = nil
	r.current = ""
	if err := r.store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "pathfinder: clear sessions: %v\n", err)
	}
}

// RenameIfDefault sets the session's title derived from candidate, but only
// while the title is still the sentinel. Returns whether the title changed.
func (r *Registry) RenameIfDefault(id, candidate string) bool {
	sess := r.find(id)
	if sess == nil || sess.Title != DefaultTitle {
		return false
	}
	sess.Title = TitleFrom(candidate)
	r.persist()
	return true
}

// Append adds a message to the session with the given id. Returns false if
// no such session exists.
func (r *Registry) Append(id string, msg Message) bool {
	sess := r.find(id)
	if sess == nil {
		return false
	}
	sess.Messages = append(sess.Messages, msg)
	r.persist()
	return true
}

// ReplaceMessages swaps the session's message sequence wholesale, as done
// on history reconciliation. Returns false if no such session exists.
func (r *Registry) ReplaceMessages(id string, msgs []Message) bool {
	sess := r.find(id)
	if sess == nil {
		return false
	}
	sess.Messages = msgs
	r.persist()
	return true
}

func (r *Registry) find(id string) *Session {
	if id == "" {
		return nil
	}
	for _, s := range r.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// persist writes the full session list through the store. Failures are
// warned, never propagated: in-memory state stays authoritative.
func (r *Registry) persist() {
	if err := r.store.Save(r.sessions); err != nil {
		fmt.Fprintf(os.Stderr, "pathfinder: save sessions: %v\n", err)
	}
}
