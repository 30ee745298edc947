package app

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"sitewiz/internal/state"
)

const submittedNotice = "Your website configuration has been saved."

type notifyMessage struct {
	Title string
	Site  string
	Body  string
}

type notifySender interface {
	Send(msg notifyMessage) error
}

type stdoutNotifySender struct {
	out io.Writer
}

func (s *stdoutNotifySender) Send(msg notifyMessage) error {
	_, err := fmt.Fprintf(s.out, "✓ %s\n", msg.Body)
	return err
}

type osascriptNotifySender struct {
	runCommand func(name string, args ...string) (string, error)
}

func (s *osascriptNotifySender) Send(msg notifyMessage) error {
	script := fmt.Sprintf("display notification %s with title %s subtitle %s", applescriptQuote(msg.Body), applescriptQuote(msg.Title), applescriptQuote(msg.Site))
	out, err := s.runCommand("osascript", "-e", script)
	if err != nil {
		return fmt.Errorf("osascript notify failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

type noopNotifySender struct{}

func (noopNotifySender) Send(notifyMessage) error {
	return nil
}

func defaultRunCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func newNotifySender(backend string, out io.Writer, runCommand func(name string, args ...string) (string, error)) (notifySender, error) {
	switch backend {
	case state.NotifyBackendStdout:
		return &stdoutNotifySender{out: out}, nil
	case state.NotifyBackendOSAScript:
		if runCommand == nil {
			runCommand = defaultRunCommand
		}
		return &osascriptNotifySender{runCommand: runCommand}, nil
	case state.NotifyBackendNone:
		return noopNotifySender{}, nil
	default:
		return nil, fmt.Errorf("invalid notify backend %q (supported: %s, %s, %s)", backend, state.NotifyBackendStdout, state.NotifyBackendOSAScript, state.NotifyBackendNone)
	}
}

func (a *App) notifySender(backend string) (notifySender, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = state.NotifyBackendStdout
	}
	if a.NewNotifySender != nil {
		return a.NewNotifySender(backend)
	}
	return newNotifySender(backend, a.Stdout, nil)
}

func applescriptQuote(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", "\\n",
		"\r", "",
	)
	return `"` + replacer.Replace(value) + `"`
}
