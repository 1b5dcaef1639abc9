package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thead76/PathFinder/internal/store"
)

var (
	sessionTitleStyle = lipgloss.NewStyle().Bold(true)
	sessionMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()

			st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
			if err != nil {
				fmt.Fprintln(os.Stderr, "open session store:", err)
				os.Exit(1)
			}
			defer st.Close()

			sessions, err := st.Load()
			if err != nil {
				return fmt.Errorf("load sessions: %w", err)
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions yet.")
				return nil
			}

			for i, sess := range sessions {
				id := sess.ID
				if len(id) > 13 {
					id = id[:13]
				}
				fmt.Printf("%2d. %s\n", i+1, sessionTitleStyle.Render(sess.Title))
				meta := fmt.Sprintf("    %s • %d message(s)", id, len(sess.Messages))
				if !sess.CreatedAt.IsZero() {
					meta += " • " + sess.CreatedAt.Format("2006-01-02 15:04")
				}
				fmt.Println(sessionMetaStyle.Render(meta))
			}
			return nil
		},
	}
}
