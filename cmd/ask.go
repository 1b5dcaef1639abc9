package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thead76/PathFinder/internal/chat"
)

func newAskCmd() *cobra.Command {
	var newSession bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Send a single question and print the reply",
		Example: `  pathfinder ask "What are the key skills for an AI Engineer?"
  pathfinder ask --new "How do I switch careers into data science?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return askOnce(strings.Join(args, " "), newSession)
		},
	}

	cmd.Flags().BoolVar(&newSession, "new", false, "start a fresh session instead of continuing the most recent one")

	return cmd
}

// askOnce sends one query through the conversation core and prints the
// reply. The session is persisted like any interactive exchange, so a later
// `pathfinder` run continues the same conversation.
func askOnce(question string, newSession bool) error {
	cfg := initConfig()

	ctrl, cleanup, err := buildController(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	events := make(chan chat.Event, 32)
	ctrl.SetNotifier(func(ev chat.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	if newSession {
		ctrl.StartNewChat()
	}

	if !ctrl.Send(question) {
		return fmt.Errorf("nothing to send")
	}
	id := ctrl.CurrentID()

	for ev := range events {
		if ev.Kind == chat.EventLoading && ev.SessionID == id && !ctrl.Loading(id) {
			break
		}
	}

	msgs := ctrl.CurrentMessages()
	if len(msgs) == 0 {
		return fmt.Errorf("no reply received")
	}
	last := msgs[len(msgs)-1]
	fmt.Println(last.Content)
	return nil
}
