package chat

import (
	"errors"
	"testing"
)

// fakeStore is an in-memory Store for registry and controller tests.
type fakeStore struct {
	sessions []*Session
	saves    int
	clears   int
	loadErr  error
	saveErr  error
}

func (f *fakeStore) Load() ([]*Session, error) { return f.sessions, f.loadErr }

func (f *fakeStore) Save(sessions []*Session) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions = append([]*Session(nil), sessions...)
	return nil
}

func (f *fakeStore) Clear() error {
	f.clears++
	f.sessions = nil
	return nil
}

func TestNewRegistry_BindsFirstSession(t *testing.T) {
	st := &fakeStore{sessions: []*Session{
		{ID: "b", Title: "second"},
		{ID: "a", Title: "first"},
	}}
	r := NewRegistry(st)
	if got := r.CurrentID(); got != "b" {
		t.Errorf("expected current session 'b', got %q", got)
	}
}

func TestNewRegistry_EmptyStore(t *testing.T) {
	r := NewRegistry(&fakeStore{})
	if got := r.CurrentID(); got != "" {
		t.Errorf("expected no bound session, got %q", got)
	}
	if len(r.Sessions()) != 0 {
		t.Errorf("expected no sessions, got %d", len(r.Sessions()))
	}
}

func TestNewRegistry_LoadErrorStartsEmpty(t *testing.T) {
	st := &fakeStore{loadErr: errors.New("disk gone")}
	r := NewRegistry(st)
	if len(r.Sessions()) != 0 {
		t.Errorf("expected empty registry on load error, got %d sessions", len(r.Sessions()))
	}
}

func TestEnsureActive_CreatesAndPrepends(t *testing.T) {
	st := &fakeStore{sessions: []*Session{{ID: "old", Title: "older chat"}}}
	r := NewRegistry(st)
	r.Unbind()

	id := r.EnsureActive()
	if id == "" || id == "old" {
		t.Fatalf("expected fresh session id, got %q", id)
	}
	sessions := r.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != id {
		t.Error("new session should be first (most-recent-first ordering)")
	}
	if sessions[0].Title != DefaultTitle {
		t.Errorf("new session title = %q, want sentinel", sessions[0].Title)
	}
	if st.saves == 0 {
		t.Error("expected a persist after session creation")
	}
}

func TestEnsureActive_Idempotent(t *testing.T) {
	r := NewRegistry(&fakeStore{})
	first := r.EnsureActive()
	second := r.EnsureActive()
	if first != second {
		t.Errorf("EnsureActive not idempotent: %q then %q", first, second)
	}
	if len(r.Sessions()) != 1 {
		t.Errorf("expected 1 session, got %d", len(r.Sessions()))
	}
}

func TestSelect(t *testing.T) {
	st := &fakeStore{sessions: []*Session{{ID: "a"}, {ID: "b"}}}
	r := NewRegistry(st)

	if !r.Select("b") {
		t.Error("expected Select of existing session to succeed")
	}
	if r.CurrentID() != "b" {
		t.Errorf("expected current 'b', got %q", r.CurrentID())
	}
	if r.Select("nope") {
		t.Error("expected Select of unknown session to be a no-op")
	}
	if r.CurrentID() != "b" {
		t.Errorf("pointer moved on failed select: %q", r.CurrentID())
	}
}

func TestRestart(t *testing.T) {
	st := &fakeStore{sessions: []*Session{{ID: "a"}, {ID: "b"}}}
	r := NewRegistry(st)

	r.Restart()
	if r.CurrentID() != "" {
		t.Errorf("expected unbound pointer after restart, got %q", r.CurrentID())
	}
	if len(r.Sessions()) != 0 {
		t.Errorf("expected no sessions after restart, got %d", len(r.Sessions()))
	}
	if st.clears != 1 {
		t.Errorf("expected 1 store clear, got %d", st.clears)
	}
}

func TestRenameIfDefault(t *testing.T) {
	st := &fakeStore{sessions: []*Session{{ID: "a", Title: DefaultTitle}}}
	r := NewRegistry(st)

	if !r.RenameIfDefault("a", "How do I become a data scientist?") {
		t.Fatal("expected rename of sentinel title")
	}
	if got := r.Sessions()[0].Title; got != "How do I become a data scientist?" {
		t.Errorf("title = %q", got)
	}

	// Second rename is a no-op.
	if r.RenameIfDefault("a", "something else") {
		t.Error("expected rename to be one-shot")
	}
	if got := r.Sessions()[0].Title; got != "How do I become a data scientist?" {
		t.Errorf("title changed again: %q", got)
	}
}

func TestAppendAndReplace(t *testing.T) {
	st := &fakeStore{sessions: []*Session{{ID: "a", Title: "t"}}}
	r := NewRegistry(st)

	if !r.Append("a", Message{Role: RoleHuman, Content: "hi"}) {
		t.Fatal("append failed")
	}
	if r.Append("missing", Message{Role: RoleHuman, Content: "hi"}) {
		t.Error("append to unknown session should fail")
	}
	if got := len(r.Messages("a")); got != 1 {
		t.Fatalf("expected 1 message, got %d", got)
	}

	canon := []Message{
		{Role: RoleHuman, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}
	if !r.ReplaceMessages("a", canon) {
		t.Fatal("replace failed")
	}
	got := r.Messages("a")
	if len(got) != 2 || got[1].Content != "hello" {
		t.Errorf("unexpected messages after replace: %+v", got)
	}
	if st.saves < 2 {
		t.Errorf("expected persist after each mutation, got %d saves", st.saves)
	}
}

func TestPersist_SaveErrorDoesNotFailMutation(t *testing.T) {
	st := &fakeStore{saveErr: errors.New("disk full")}
	r := NewRegistry(st)

	id := r.EnsureActive()
	if id == "" {
		t.Fatal("mutation should succeed despite save failure")
	}
	if !r.Append(id, Message{Role: RoleHuman, Content: "hi"}) {
		t.Error("append should succeed despite save failure")
	}
	if got := len(r.Messages(id)); got != 1 {
		t.Errorf("in-memory state diverged: %d messages", got)
	}
}
