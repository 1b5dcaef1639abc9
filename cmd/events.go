package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thead76/PathFinder/internal/eventlog"
)

func newEventsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent chat activity from the event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			elog, err := eventlog.New()
			if err != nil {
				return fmt.Errorf("open event log: %w", err)
			}
			defer elog.Close()

			events, err := elog.ReadRecent(count)
			if err != nil {
				return err
			}
			fmt.Println(eventlog.FormatEvents(events, "Recent activity"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of events to show")

	return cmd
}
