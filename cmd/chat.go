package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thead76/PathFinder/internal/backend"
	"github.com/thead76/PathFinder/internal/chat"
	"github.com/thead76/PathFinder/internal/config"
	"github.com/thead76/PathFinder/internal/eventlog"
	"github.com/thead76/PathFinder/internal/store"
	"github.com/thead76/PathFinder/internal/tui"
)

// runChat starts the interactive chat, TUI or plain depending on terminal.
func runChat() error {
	cfg := initConfig()

	ctrl, cleanup, err := buildController(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	if useTUI {
		return tui.Run(ctrl, displayVersion())
	}
	return tui.RunPlain(ctrl)
}

// buildController wires the store, registry, backend client and event log
// into a controller. The returned cleanup closes the store and event log.
func buildController(parent context.Context, cfg *config.Config) (*chat.Controller, func(), error) {
	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	var elog *eventlog.Logger
	if cfg.EventLog {
		elog, err = eventlog.New()
		if err != nil {
			// Diagnostics only; the chat works without it.
			fmt.Fprintf(os.Stderr, "pathfinder: event log disabled: %v\n", err)
		}
	}

	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	reg := chat.NewRegistry(st)
	be := backend.NewClient(cfg.Backend.BaseURL, cfg.Timeout())
	ctrl := chat.NewController(ctx, reg, be, elog)

	cleanup := func() {
		cancel()
		signal.Stop(sigCh)
		elog.Close()
		if err := st.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "pathfinder: close store: %v\n", err)
		}
	}
	return ctrl, cleanup, nil
}
