// Package tui is the presentation shell: it renders the core's observable
// state (session list, active message sequence, loading flag and caption)
// and forwards user intents to the Conversation Controller.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/thead76/PathFinder/internal/chat"
)

// ---------- messages ----------

// coreEventMsg wraps a state-change notification from the controller,
// delivered via program.Send from controller goroutines.
type coreEventMsg struct {
	ev chat.Event
}

// captionTickMsg drives the loading caption rotation.
type captionTickMsg struct{}

const (
	headerHeight    = 1
	statusBarHeight = 1
	inputHeight     = 1
	sidebarWidth    = 26
)

// Model is the bubbletea model managing the full TUI state.
type Model struct {
	ctrl *chat.Controller

	viewport  viewport.Model
	textinput textinput.Model
	spinner   spinner.Model
	width     int
	height    int

	version  string
	ticking  bool // caption tick loop is scheduled
	quitting bool
}

// NewModel creates the initial bubbletea model bound to the controller.
func NewModel(ctrl *chat.Controller, version string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your question..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 24)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctrl:      ctrl,
		viewport:  vp,
		textinput: ti,
		spinner:   sp,
		version:   version,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func captionTick() tea.Cmd {
	return tea.Tick(chat.CaptionInterval, func(time.Time) tea.Msg {
		return captionTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - headerHeight - statusBarHeight - inputHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.viewport.Width = m.chatWidth()
		m.viewport.Height = vpHeight
		m.textinput.Width = m.width - 4
		m.refreshViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.ctrl.LoadingCurrent() {
			m.refreshViewport()
		}
		cmds = append(cmds, cmd)

	case captionTickMsg:
		if m.ctrl.LoadingCurrent() {
			m.ctrl.AdvanceCaption()
			m.refreshViewport()
			cmds = append(cmds, captionTick())
		} else {
			m.ticking = false
		}

	case coreEventMsg:
		m.refreshViewport()
		if !m.ticking && m.ctrl.LoadingCurrent() {
			m.ticking = true
			cmds = append(cmds, captionTick())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			// Cleared as soon as the send is accepted, rather than when the
			// reply lands; a rejected send keeps the draft for editing.
			if m.ctrl.Send(m.textinput.Value()) {
				m.textinput.SetValue("")
			}
			return m, nil
		case "ctrl+n":
			m.ctrl.StartNewChat()
			return m, nil
		case "ctrl+r":
			m.ctrl.Restart()
			return m, nil
		case "tab":
			m.cycleSession(1)
			return m, nil
		case "shift+tab":
			m.cycleSession(-1)
			return m, nil
		case "1", "2", "3":
			// Sample prompts are live only on the empty welcome view with
			// nothing typed; otherwise digits go to the input.
			if m.showingWelcome() && m.textinput.Value() == "" {
				n := int(msg.String()[0] - '1')
				m.ctrl.Send(chat.SamplePrompts[n])
				return m, nil
			}
		}

		var cmd tea.Cmd
		m.textinput, cmd = m.textinput.Update(msg)
		cmds = append(cmds, cmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Width(m.width).Render("PathFinder — AI Career Advisor " + m.version)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.viewport.View())

	status := fmt.Sprintf(" %d session(s)", len(m.ctrl.Sessions()))
	if m.ctrl.LoadingCurrent() {
		status += " | " + m.ctrl.Caption()
	}
	status += " | enter send • tab switch • ctrl+n new • ctrl+r restart • ctrl+c quit"
	bar := statusBarStyle.Width(m.width).Render(status)

	return header + "\n" + body + "\n" + bar + "\n" + m.textinput.View()
}

// ---------- rendering ----------

func (m *Model) chatWidth() int {
	w := m.width - sidebarWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) showingWelcome() bool {
	return len(m.ctrl.CurrentMessages()) == 0 && !m.ctrl.LoadingCurrent()
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m *Model) renderSidebar() string {
	height := m.viewport.Height
	var lines []string
	lines = append(lines, sidebarCurrentStyle.Render("Chats"))
	lines = append(lines, "")

	current := m.ctrl.CurrentID()
	for _, sess := range m.ctrl.Sessions() {
		title := runewidth.Truncate(sess.Title, sidebarWidth-4, "…")
		if sess.ID == current {
			lines = append(lines, sidebarCurrentStyle.Render("▸ "+title))
		} else {
			lines = append(lines, sidebarItemStyle.Render("  "+title))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return sidebarStyle.Height(height).Width(sidebarWidth - 1).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConversation() string {
	msgs := m.ctrl.CurrentMessages()
	if len(msgs) == 0 && !m.ctrl.LoadingCurrent() {
		return m.renderWelcome()
	}

	width := m.chatWidth()
	var sb strings.Builder
	for _, msg := range msgs {
		if msg.Role == chat.RoleHuman {
			bubble := humanStyle.MaxWidth(width * 3 / 4).Render(msg.Content)
			sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
			sb.WriteString("\n")
		} else {
			sb.WriteString(renderMarkdown(msg.Content, width))
			sb.WriteString("\n")
		}
	}

	if m.ctrl.LoadingCurrent() {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(captionStyle.Render(m.ctrl.Caption()))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderWelcome() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(welcomeTitleStyle.Render("Your Buddy for Career Guidance"))
	sb.WriteString("\n\n")
	sb.WriteString(welcomeHintStyle.Render("Ask anything about career, interviews & skills."))
	sb.WriteString("\n\n")
	for i, p := range chat.SamplePrompts {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p))
	}
	sb.WriteString("\n")
	sb.WriteString(welcomeHintStyle.Render("Press 1-3 to try a sample question, or just start typing."))
	return sb.String()
}

// renderMarkdown renders assistant text with glamour, falling back to the
// raw string on renderer errors.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

// cycleSession moves the current pointer through the session list.
func (m *Model) cycleSession(delta int) {
	sessions := m.ctrl.Sessions()
	if len(sessions) == 0 {
		return
	}
	current := m.ctrl.CurrentID()
	idx := 0
	for i, s := range sessions {
		if s.ID == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(sessions)) % len(sessions)
	m.ctrl.Select(sessions[idx].ID)
}
