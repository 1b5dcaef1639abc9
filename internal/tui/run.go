package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thead76/PathFinder/internal/chat"
)

// Run starts the bubbletea program in alt-screen mode and blocks until the
// user quits. Controller notifications are forwarded into the program's
// message loop, so async completions re-render like any other event.
func Run(ctrl *chat.Controller, version string) error {
	model := NewModel(ctrl, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctrl.SetNotifier(func(ev chat.Event) {
		p.Send(coreEventMsg{ev: ev})
	})
	ctrl.Start()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
