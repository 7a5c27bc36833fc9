package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"igfollowers/pkg/auth"
	"igfollowers/pkg/method"
	"igfollowers/pkg/ui"
)

func (a *app) newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage saved Instagram sessions",
		Long: `Manage saved Instagram session cookies.

Sessions are stored in the system keychain when available and in an
encrypted file otherwise. Use a saved session with --account <name>.

Never share your session ID!`,
	}

	var sessionID, csrfToken string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a session under a name",
		Example: `  # Interactive, the session ID is read without echo
  igfollowers session save main

  # Non interactive
  igfollowers session save main --session-id "$SESSION"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSessionSave(args[0], sessionID, csrfToken)
		},
	}
	save.Flags().StringVar(&sessionID, "session-id", "", "session ID (the sessionid cookie)")
	save.Flags().StringVar(&csrfToken, "csrf-token", "", "CSRF token (the csrftoken cookie)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSessionList()
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSessionDelete(args[0])
		},
	}

	cmd.AddCommand(save, list, del)
	return cmd
}

func (a *app) runSessionSave(name, sessionID, csrfToken string) error {
	p := ui.NewPrinter(a.stderr)

	manager, err := a.sessionManager()
	if err != nil {
		p.Error("Failed to initialize session storage", err)
		return &exitError{code: 1}
	}

	if sessionID == "" {
		auth.CookieGuide(a.stderr)
		reader := bufio.NewReader(a.stdin)

		p.Prompt("Session ID: ")
		if sessionID, err = a.readSecret(reader); err != nil {
			p.Error("Failed to read session ID", err)
			return &exitError{code: 1}
		}
		if csrfToken == "" {
			p.Prompt("CSRF token (optional): ")
			csrfToken, _ = a.readSecret(reader)
		}
	}

	s := &auth.Session{
		Name:      name,
		SessionID: method.ParseSessionID(sessionID),
		CSRFToken: strings.TrimSpace(csrfToken),
	}
	if err := manager.Save(s); err != nil {
		p.Error("Failed to save session", err)
		return &exitError{code: 1}
	}

	p.Success(fmt.Sprintf("Session %q saved", name))
	p.Dim("Use it with: igfollowers --account " + name + " method2 <username>")
	return nil
}

// readSecret reads one value without echo on a terminal and as a plain
// line otherwise
func (a *app) readSecret(reader *bufio.Reader) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" && err == io.EOF {
		return "", io.ErrUnexpectedEOF
	}
	return line, nil
}

func (a *app) runSessionList() error {
	p := ui.NewPrinter(a.stderr)

	manager, err := a.sessionManager()
	if err != nil {
		p.Error("Failed to initialize session storage", err)
		return &exitError{code: 1}
	}

	sessions, err := manager.List()
	if err != nil {
		p.Error("Failed to list sessions", err)
		return &exitError{code: 1}
	}
	if len(sessions) == 0 {
		p.Warning("No saved sessions. Run 'igfollowers session save <name>' to add one.")
		return nil
	}

	p.Title(fmt.Sprintf("Saved sessions (%d)", len(sessions)))
	for _, s := range sessions {
		masked := s.Masked()
		p.Info(s.Name, fmt.Sprintf("%s  saved %s", masked.SessionID, humanize.Time(s.SavedAt)))
	}
	return nil
}

func (a *app) runSessionDelete(name string) error {
	p := ui.NewPrinter(a.stderr)

	manager, err := a.sessionManager()
	if err != nil {
		p.Error("Failed to initialize session storage", err)
		return &exitError{code: 1}
	}

	if err := manager.Delete(name); err != nil {
		p.Error("Failed to delete session", err)
		return &exitError{code: 1}
	}
	p.Success(fmt.Sprintf("Session %q deleted", name))
	return nil
}
