package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thead76/PathFinder/internal/config"
)

var (
	cfgFile     string
	backendFlag string
	storeFlag   string
	driverFlag  string
	timeoutFlag int
	useTUI      bool

	// Package-level version info, set by Execute().
	appVersion string
	appCommit  string
	appDate    string
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd := &cobra.Command{
		Use:   "pathfinder",
		Short: "AI career advisor chat client",
		Long:  "pathfinder is a terminal chat client for the PathFinder career assistant, with durable local sessions.",
		// Running pathfinder with no subcommand starts chat mode.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Default TUI on when stdout is a terminal and --tui was not explicitly set.
			if !cmd.Root().PersistentFlags().Changed("tui") && term.IsTerminal(int(os.Stdout.Fd())) {
				useTUI = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/pathfinder/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "override backend base URL")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "override session store path")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "session store driver: json (default) or sqlite")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "backend request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "tui", false, "use bubbletea TUI mode (default: auto-detect terminal)")

	// Subcommands
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// displayVersion returns a formatted version string for the TUI header,
// e.g. "v0.2.0 (abc1234)".
func displayVersion() string {
	v := "v" + appVersion
	if appCommit != "" && appCommit != "none" {
		v += " (" + appCommit + ")"
	}
	return v
}

// initConfig loads configuration, applying CLI flag overrides.
func initConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config values
	if backendFlag != "" {
		cfg.Backend.BaseURL = backendFlag
	}
	if storeFlag != "" {
		cfg.Storage.Path = storeFlag
	}
	if driverFlag != "" {
		cfg.Storage.Driver = driverFlag
	}
	if timeoutFlag > 0 {
		cfg.Backend.TimeoutSeconds = timeoutFlag
	}

	return cfg
}
