package chat

import (
	"strings"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if !strings.HasPrefix(s.ID, "sess_") {
		t.Errorf("expected sess_ prefix, got %q", s.ID)
	}
	if s.Title != DefaultTitle {
		t.Errorf("expected sentinel title %q, got %q", DefaultTitle, s.Title)
	}
	if len(s.Messages) != 0 {
		t.Errorf("expected empty messages, got %d", len(s.Messages))
	}
	if s.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSession().ID
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "Hello"},
		{"", ""},
		{strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{strings.Repeat("a", 51), strings.Repeat("a", 50)},
		{strings.Repeat("世", 60), strings.Repeat("世", 50)},
	}
	for _, tt := range tests {
		if got := TitleFrom(tt.in); got != tt.want {
			t.Errorf("TitleFrom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
