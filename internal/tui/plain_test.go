package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/thead76/PathFinder/internal/chat"
)

type stubStore struct {
	sessions []*chat.Session
}

func (s *stubStore) Load() ([]*chat.Session, error) { return s.sessions, nil }
func (s *stubStore) Save([]*chat.Session) error     { return nil }
func (s *stubStore) Clear() error                   { return nil }

type stubBackend struct{}

func (stubBackend) Ask(context.Context, string, string) (string, error) {
	return "", nil
}

func (stubBackend) History(context.Context, string) ([]chat.Message, error) {
	return nil, nil
}

func TestPrintSessions(t *testing.T) {
	st := &stubStore{sessions: []*chat.Session{
		{ID: "a", Title: "career pivot", Messages: []chat.Message{
			{Role: chat.RoleHuman, Content: "hi"},
			{Role: chat.RoleAssistant, Content: "hello"},
		}},
		{ID: "b", Title: chat.DefaultTitle},
	}}
	ctrl := chat.NewController(context.Background(), chat.NewRegistry(st), stubBackend{}, nil)

	var sb strings.Builder
	printSessions(&sb, ctrl)
	out := sb.String()

	if !strings.Contains(out, "1. career pivot (2 messages)") {
		t.Errorf("missing first session line: %q", out)
	}
	if !strings.Contains(out, "2. New Chat (0 messages)") {
		t.Errorf("missing second session line: %q", out)
	}
	if !strings.HasPrefix(out, "*") {
		t.Errorf("current session should be marked: %q", out)
	}
}

func TestPrintSessions_Empty(t *testing.T) {
	ctrl := chat.NewController(context.Background(), chat.NewRegistry(&stubStore{}), stubBackend{}, nil)

	var sb strings.Builder
	printSessions(&sb, ctrl)
	if got := sb.String(); got != "No sessions yet.\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
