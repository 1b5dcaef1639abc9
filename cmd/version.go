package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pathfinder %s\n", version)
			if commit != "" && commit != "none" {
				fmt.Printf("  commit: %s\n", commit)
			}
			if date != "" && date != "unknown" {
				fmt.Printf("  built:  %s\n", date)
			}
		},
	}
}
