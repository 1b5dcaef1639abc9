// Package eventlog writes a structured JSONL trace of chat activity.
// The log is diagnostic only: every write is best-effort and a nil
// *Logger is a valid no-op logger.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EventType classifies an event in the event stream.
type EventType string

const (
	EventSessionStart     EventType = "session_start"
	EventSessionSelect    EventType = "session_select"
	EventUserMessage      EventType = "user_message"
	EventAssistantReply   EventType = "assistant_reply"
	EventSendError        EventType = "send_error"
	EventHistorySync      EventType = "history_sync"
	EventHistorySyncError EventType = "history_sync_error"
	EventRestart          EventType = "restart"
)

// Event is a single structured event in the event stream.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"ts"`
	SessionID string    `json:"session_id,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Logger appends structured JSONL events to a file.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	logPath string
}

// New creates an event logger writing to chat.jsonl in the first writable
// events directory.
func New() (*Logger, error) {
	var lastErr error
	for _, dir := range eventLogDirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			lastErr = fmt.Errorf("create events directory %s: %w", dir, err)
			continue
		}

		logPath := filepath.Join(dir, "chat.jsonl")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			lastErr = fmt.Errorf("open event log %s: %w", logPath, err)
			continue
		}

		return &Logger{
			file:    f,
			enc:     json.NewEncoder(f),
			logPath: logPath,
		}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no writable events directory found")
	}
	return nil, lastErr
}

// eventLogDirs returns candidate directories in priority order.
// 1) PATHFINDER_EVENTS_DIR (explicit override)
// 2) ~/.local/share/pathfinder/events (default)
// 3) $TMPDIR/pathfinder/events (fallback for restricted environments)
func eventLogDirs() []string {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) {
		dir = strings.TrimSpace(dir)
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	add(os.Getenv("PATHFINDER_EVENTS_DIR"))

	if home, err := os.UserHomeDir(); err == nil {
		add(filepath.Join(home, ".local", "share", "pathfinder", "events"))
	}

	add(filepath.Join(os.TempDir(), "pathfinder", "events"))
	return dirs
}

// Log writes an event to the JSONL file. Safe on a nil Logger.
func (l *Logger) Log(evtType EventType, sessionID string, data any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	evt := Event{
		Type:      evtType,
		Timestamp: time.Now(),
		SessionID: sessionID,
		Data:      data,
	}
	_ = l.enc.Encode(evt)
}

// Close flushes and closes the event log file.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// ReadRecent reads the last n events from the log file.
func (l *Logger) ReadRecent(n int) ([]Event, error) {
	l.mu.Lock()
	path := l.logPath
	l.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
	for scanner.Scan() {
		var evt Event
		if json.Unmarshal(scanner.Bytes(), &evt) == nil {
			events = append(events, evt)
		}
	}

	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// FormatEvents formats events for display.
func FormatEvents(events []Event, title string) string {
	if len(events) == 0 {
		return "No events recorded."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d events):\n", title, len(events)))
	for _, evt := range events {
		ts := evt.Timestamp.Format("15:04:05")
		dataStr := ""
		if evt.Data != nil {
			switch d := evt.Data.(type) {
			case string:
				dataStr = truncate(d, 80)
			default:
				raw, _ := json.Marshal(d)
				dataStr = truncate(string(raw), 80)
			}
		}
		id := evt.SessionID
		if len(id) > 13 {
			id = id[:13]
		}
		if dataStr != "" {
			sb.WriteString(fmt.Sprintf("  %s  %-13s  %-18s  %s\n", ts, id, evt.Type, dataStr))
		} else {
			sb.WriteString(fmt.Sprintf("  %s  %-13s  %s\n", ts, id, evt.Type))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
