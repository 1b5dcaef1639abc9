package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thead76/PathFinder/internal/eventlog"
	"github.com/thead76/PathFinder/internal/store"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all saved sessions and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()

			st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
			if err != nil {
				fmt.Fprintln(os.Stderr, "open session store:", err)
				os.Exit(1)
			}
			defer st.Close()

			if err := st.Clear(); err != nil {
				return fmt.Errorf("reset sessions: %w", err)
			}

			if cfg.EventLog {
				if elog, err := eventlog.New(); err == nil {
					elog.Log(eventlog.EventRestart, "", "cli reset")
					elog.Close()
				}
			}

			fmt.Println("All sessions cleared.")
			return nil
		},
	}
}
