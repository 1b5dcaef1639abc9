package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thead76/PathFinder/internal/chat"
)

// RunPlain is the line-oriented shell used when the terminal does not
// support the TUI (pipes, dumb terminals). Sends block until the reply
// lands, which keeps the transcript readable.
func RunPlain(ctrl *chat.Controller) error {
	events := make(chan chat.Event, 32)
	ctrl.SetNotifier(func(ev chat.Event) {
		// Never block a controller goroutine on a slow shell.
		select {
		case events <- ev:
		default:
		}
	})
	ctrl.Start()

	fmt.Println("PathFinder — AI Career Advisor")
	fmt.Println("Commands: /sessions  /select <n>  /new  /restart  /quit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil // EOF
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/sessions":
			printSessions(os.Stdout, ctrl)
			continue
		case strings.HasPrefix(line, "/select"):
			selectByNumber(ctrl, strings.TrimSpace(strings.TrimPrefix(line, "/select")))
			continue
		case line == "/new":
			ctrl.StartNewChat()
			fmt.Println("Started a new chat.")
			continue
		case line == "/restart":
			ctrl.Restart()
			fmt.Println("All sessions cleared.")
			continue
		}

		if !ctrl.Send(line) {
			if line != "" {
				fmt.Println("(a request is already in flight for this session)")
			}
			continue
		}

		id := ctrl.CurrentID()
		waitForReply(ctrl, events, id)

		msgs := ctrl.CurrentMessages()
		if len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			if last.Role == chat.RoleAssistant {
				fmt.Println()
				fmt.Println(last.Content)
			}
		}
	}
}

// waitForReply blocks until the in-flight send for id completes.
func waitForReply(ctrl *chat.Controller, events <-chan chat.Event, id string) {
	for ev := range events {
		if ev.Kind == chat.EventLoading && ev.SessionID == id && !ctrl.Loading(id) {
			return
		}
	}
}

func printSessions(w io.Writer, ctrl *chat.Controller) {
	sessions := ctrl.Sessions()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions yet.")
		return
	}
	current := ctrl.CurrentID()
	for i, sess := range sessions {
		marker := " "
		if sess.ID == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %2d. %s (%d messages)\n", marker, i+1, sess.Title, len(sess.Messages))
	}
}

func selectByNumber(ctrl *chat.Controller, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Println("Usage: /select <n> (see /sessions)")
		return
	}
	sessions := ctrl.Sessions()
	if n > len(sessions) {
		fmt.Printf("No session %d; only %d exist.\n", n, len(sessions))
		return
	}
	ctrl.Select(sessions[n-1].ID)
	fmt.Printf("Switched to %q.\n", sessions[n-1].Title)
}
