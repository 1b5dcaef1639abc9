// Package chat implements the session and conversation core: the in-memory
// session registry, the send/sync orchestration against the assistant
// backend, and the observable state consumed by the presentation shell.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role tags who authored a message.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a session's conversation. Content is treated
// as an opaque string here; the shell renders it as markdown.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DefaultTitle is the sentinel title a session carries until its first
// user message is sent.
const DefaultTitle = "New Chat"

// maxTitleLen caps derived session titles at 50 characters.
const maxTitleLen = 50

// Session is one independent conversation thread with its own identity,
// title and message history.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewSession creates an empty session with a fresh unique id and the
// sentinel title.
func NewSession() *Session {
	return &Session{
		ID:        "sess_" + uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: time.Now(),
	}
}

// TitleFrom derives a session title from the first user message: a prefix
// of at most 50 characters.
func TitleFrom(text string) string {
	r := []rune(text)
	if len(r) > maxTitleLen {
		r = r[:maxTitleLen]
	}
	return string(r)
}
