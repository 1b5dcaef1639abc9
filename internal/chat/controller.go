package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/thead76/PathFinder/internal/eventlog"
)

// Reply text used when the backend fails or returns nothing useful.
// Matches what users of the web widget see.
const (
	ErrorReply    = "⚠️ Error contacting backend."
	NoAnswerReply = "(no answer)"
)

// CaptionInterval is the cadence at which the shell rotates loading
// captions while a send is in flight.
const CaptionInterval = 1500 * time.Millisecond

// loadingCaptions rotate under the spinner while waiting on the backend.
var loadingCaptions = []string{
	"Charting your career course...",
	"Crafting a path to success...",
	"Unlocking career insights...",
	"Aligning your professional stars...",
	"Mapping your future...",
}

// SamplePrompts are starter questions offered on an empty session.
var SamplePrompts = []string{
	"What are the key skills for an AI Engineer?",
	"How can I prepare for a software engineering interview?",
	"Provide a detailed roadmap for a successful entrepreneur.",
}

// EventKind classifies a state-change notification sent to the shell.
type EventKind int

const (
	// EventSessions: the session list, titles, or current pointer changed.
	EventSessions EventKind = iota

	// EventMessages: a session's message sequence changed.
	EventMessages

	// EventLoading: a session's loading state flipped.
	EventLoading
)

// Event notifies the shell that observable state changed. SessionID is the
// affected session; empty when the change is not tied to one session.
type Event struct {
	Kind      EventKind
	SessionID string
}

// Backend is the remote assistant service the controller dispatches to.
type Backend interface {
	// History returns the canonical message sequence for a session, or
	// (nil, nil) when the service has no update to offer.
	History(ctx context.Context, sessionID string) ([]Message, error)

	// Ask submits a query and returns the generated answer. An empty
	// answer with nil error means the response lacked one.
	Ask(ctx context.Context, sessionID, query string) (string, error)
}

// Controller orchestrates the send path and history reconciliation over
// the registry. All registry and store mutations funnel through its mutex,
// so async completions can land in any order without corrupting state.
//
// Completions are applied to the session they were issued for, by id, never
// to "whatever is current", so a session switch mid-request cannot cross-wire
// conversations.
type Controller struct {
	mu       sync.Mutex
	reg      *Registry
	backend  Backend
	log      *eventlog.Logger
	ctx      context.Context
	notify   func(Event)
	inflight map[string]bool // session id → send outstanding
	caption  int
}

// NewController wires the registry, backend and event log together.
// ctx bounds all outgoing backend requests.
func NewController(ctx context.Context, reg *Registry, be Backend, log *eventlog.Logger) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Controller{
		reg:      reg,
		backend:  be,
		log:      log,
		ctx:      ctx,
		inflight: make(map[string]bool),
	}
}

// SetNotifier registers the shell's state-change callback. It is invoked
// from controller goroutines and must not block for long.
func (c *Controller) SetNotifier(fn func(Event)) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

// Start logs the session start and, when a session is already bound from a
// prior run, kicks off its history sync. Call after SetNotifier.
func (c *Controller) Start() {
	c.mu.Lock()
	id := c.reg.CurrentID()
	c.mu.Unlock()

	c.log.Log(eventlog.EventSessionStart, id, nil)
	if id != "" {
		go c.syncHistory(id)
	}
}

// ---------- observable state ----------

// Sessions returns a snapshot of the session list, most recent first. The
// returned sessions are copies: shells read them outside the controller
// mutex while background completions mutate the live ones under it.
func (c *Controller) Sessions() []*Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions := c.reg.Sessions()
	out := make([]*Session, len(sessions))
	for i, s := range sessions {
		cp := *s
		cp.Messages = append([]Message(nil), s.Messages...)
		out[i] = &cp
	}
	return out
}

// CurrentID returns the bound session id, or "" when none is bound.
func (c *Controller) CurrentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.CurrentID()
}

// CurrentMessages returns a snapshot of the active session's message
// sequence, safe to read while completions land.
func (c *Controller) CurrentMessages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.reg.Messages(c.reg.CurrentID())
	if msgs == nil {
		return nil
	}
	return append([]Message(nil), msgs...)
}

// Loading reports whether a send is outstanding for the session id.
func (c *Controller) Loading(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[id]
}

// LoadingCurrent reports whether a send is outstanding for the active session.
func (c *Controller) LoadingCurrent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[c.reg.CurrentID()]
}

// Caption returns the current loading caption.
func (c *Controller) Caption() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loadingCaptions[c.caption]
}

// AdvanceCaption rotates to the next loading caption and returns it. The
// shell calls this on its CaptionInterval tick.
func (c *Controller) AdvanceCaption() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caption = (c.caption + 1) % len(loadingCaptions)
	return loadingCaptions[c.caption]
}

// ---------- commands ----------

// Send runs the send path: optimistic local append, best-effort persist,
// then an async dispatch to the backend. It reports false without side
// effects when text is blank or a send is already in flight for the target
// session.
//
// The user's message is always visible (and persisted) before the request
// is dispatched; the eventual reply or error marker is appended strictly
// after it, to the same session, looked up by id.
func (c *Controller) Send(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	c.mu.Lock()
	id := c.reg.CurrentID()
	if id != "" && c.inflight[id] {
		c.mu.Unlock()
		return false
	}
	id = c.reg.EnsureActive()
	c.reg.Append(id, Message{Role: RoleHuman, Content: text})
	c.reg.RenameIfDefault(id, text)
	c.inflight[id] = true
	c.mu.Unlock()

	c.log.Log(eventlog.EventUserMessage, id, text)
	c.emit(Event{EventSessions, id})
	c.emit(Event{EventMessages, id})
	c.emit(Event{EventLoading, id})

	go c.dispatch(id, text)
	return true
}

// dispatch performs the backend round trip for one send and applies the
// outcome to the originating session.
func (c *Controller) dispatch(id, query string) {
	answer, err := c.backend.Ask(c.ctx, id, query)

	reply := Message{Role: RoleAssistant}
	switch {
	case err != nil:
		reply.Content = ErrorReply
		c.log.Log(eventlog.EventSendError, id, err.Error())
	case answer == "":
		reply.Content = NoAnswerReply
	default:
		reply.Content = answer
	}

	c.mu.Lock()
	c.reg.Append(id, reply)
	delete(c.inflight, id)
	c.mu.Unlock()

	if err == nil {
		c.log.Log(eventlog.EventAssistantReply, id, len(reply.Content))
	}
	c.emit(Event{EventMessages, id})
	c.emit(Event{EventLoading, id})
}

// Select binds the current pointer to id if that session exists, then
// fires a history sync for it.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	ok := c.reg.Select(id)
	c.mu.Unlock()
	if !ok {
		return
	}

	c.log.Log(eventlog.EventSessionSelect, id, nil)
	c.emit(Event{EventSessions, id})
	go c.syncHistory(id)
}

// StartNewChat unbinds the current session so the view is empty; the next
// send synthesizes a fresh session.
func (c *Controller) StartNewChat() {
	c.mu.Lock()
	c.reg.Unbind()
	c.mu.Unlock()
	c.emit(Event{Kind: EventSessions})
}

// Restart clears every session, persisted and in-memory, and unbinds the
// pointer. Used for the explicit "start over" action.
func (c *Controller) Restart() {
	c.mu.Lock()
	c.reg.Restart()
	c.mu.Unlock()

	c.log.Log(eventlog.EventRestart, "", nil)
	c.emit(Event{Kind: EventSessions})
	c.emit(Event{Kind: EventMessages})
}

// syncHistory pulls the canonical history for a session and replaces that
// session's messages wholesale. Best-effort: any failure leaves local state
// untouched and is never surfaced to the user, since local state is
// authoritative for anything already seen.
//
// The result is applied to the session it was requested for even if the
// pointer moved while the fetch was in flight.
func (c *Controller) syncHistory(id string) {
	msgs, err := c.backend.History(c.ctx, id)
	if err != nil {
		c.log.Log(eventlog.EventHistorySyncError, id, err.Error())
		return
	}
	if msgs == nil {
		return
	}

	c.mu.Lock()
	ok := c.reg.ReplaceMessages(id, msgs)
	c.mu.Unlock()
	if !ok {
		return
	}

	c.log.Log(eventlog.EventHistorySync, id, len(msgs))
	c.emit(Event{EventMessages, id})
}

func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
