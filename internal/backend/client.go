// Package backend is the HTTP client for the remote assistant service.
// The service exposes two operations: fetch the canonical history for a
// session id, and submit a query for a session id. It is treated as an
// opaque, possibly-slow, possibly-failing dependency.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thead76/PathFinder/internal/chat"
)

// Client talks to the assistant backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client. timeout bounds each request; zero
// means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// wireMessage is the backend's message shape. Roles other than "human"
// (the service emits "ai") normalize to the assistant role.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (w wireMessage) toMessage() chat.Message {
	role := chat.RoleAssistant
	if w.Role == string(chat.RoleHuman) {
		role = chat.RoleHuman
	}
	return chat.Message{Role: role, Content: w.Content}
}

// History fetches the canonical message history for a session. A well-formed
// response without a chat_history field is not an error: it returns
// (nil, nil), meaning "no update".
func (c *Client) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	u := c.baseURL + "/history?session_id=" + url.QueryEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build history request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history: backend returned %s", resp.Status)
	}

	var body struct {
		ChatHistory []wireMessage `json:"chat_history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if body.ChatHistory == nil {
		return nil, nil
	}

	msgs := make([]chat.Message, 0, len(body.ChatHistory))
	for _, m := range body.ChatHistory {
		msgs = append(msgs, m.toMessage())
	}
	return msgs, nil
}

// Ask submits a query for a session and returns the generated answer.
// A response lacking the answer field returns ("", nil); the caller
// substitutes its placeholder.
func (c *Client) Ask(ctx context.Context, sessionID, query string) (string, error) {
	form := url.Values{
		"query":      {query},
		"session_id": {sessionID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ask: backend returned %s", resp.Status)
	}

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode answer: %w", err)
	}
	return body.Answer, nil
}
