package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitewiz/internal/app"
	"sitewiz/internal/state"
)

type fakeApp struct {
	verbose   bool
	verbosity int

	startOpts   *app.StartOptions
	promptOpts  *app.StartOptions
	summaryOpts *app.SummaryOptions
	optionsArg  *string

	code int
	err  error
}

func (f *fakeApp) SetVerbose(verbose bool) { f.verbose = verbose }
func (f *fakeApp) SetVerbosity(v int)      { f.verbosity = v }

func (f *fakeApp) RunStart(_ context.Context, opts app.StartOptions) error {
	f.startOpts = &opts
	return f.err
}

func (f *fakeApp) RunPrompt(_ context.Context, opts app.StartOptions) error {
	f.promptOpts = &opts
	return f.err
}

func (f *fakeApp) RunSummary(_ context.Context, opts app.SummaryOptions) (int, error) {
	f.summaryOpts = &opts
	return f.code, f.err
}

func (f *fakeApp) RunOptions(field string) (int, error) {
	f.optionsArg = &field
	return f.code, f.err
}

func runFake(t *testing.T, fake *fakeApp, args ...string) (int, string, string) {
	t.Helper()
	home := t.TempDir()
	deps := runDeps{
		userHomeDir: func() (string, error) { return home, nil },
		newApp: func(state.Paths, io.Writer, io.Writer) appRunner {
			return fake
		},
		loadSettings: state.LoadSettings,
	}
	var stdout, stderr bytes.Buffer
	code := runWithDeps(context.Background(), args, &stdout, &stderr, deps)
	return code, stdout.String(), stderr.String()
}

func TestRunWithoutCommandIsUsageError(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runFake(t, &fakeApp{})
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stdout, "sitewiz") {
		t.Fatalf("help not printed: %q", stdout)
	}
	if !strings.Contains(stderr, "a command is required") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	code, _, stderr := runFake(t, &fakeApp{}, "summary", "--frobnicate")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "frobnicate") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestStartPassesFlagsThroughSettings(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{}
	code, _, stderr := runFake(t, fake, "start", "--answers", "a.yaml", "--notify", "none", "--output", "yaml", "--alt-screen=false")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, stderr)
	}
	if fake.startOpts == nil {
		t.Fatal("RunStart not called")
	}
	got := fake.startOpts.Settings
	want := state.Settings{NotifyBackend: "none", Output: "yaml", AltScreen: false}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
	if fake.startOpts.AnswersPath != "a.yaml" {
		t.Fatalf("answers = %q", fake.startOpts.AnswersPath)
	}
}

func TestPromptAccessibleFlag(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{}
	code, _, _ := runFake(t, fake, "prompt", "--accessible")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if fake.promptOpts == nil || !fake.promptOpts.Settings.Accessible {
		t.Fatalf("prompt options = %+v", fake.promptOpts)
	}
	if !fake.promptOpts.Settings.AltScreen {
		t.Fatal("alt screen default lost")
	}
}

func TestVerbosityAndQuietFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          []string
		wantVerbose   bool
		wantVerbosity int
	}{
		{name: "default", args: []string{"options"}, wantVerbose: true, wantVerbosity: 0},
		{name: "quiet", args: []string{"-q", "options"}, wantVerbose: false, wantVerbosity: 0},
		{name: "double verbose", args: []string{"options", "-vv"}, wantVerbose: true, wantVerbosity: 2},
		{name: "summary verbose", args: []string{"summary", "--answers", "x.yaml", "--verbose"}, wantVerbose: true, wantVerbosity: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeApp{}
			if code, _, stderr := runFake(t, fake, tt.args...); code != 0 {
				t.Fatalf("exit code = %d, stderr=%q", code, stderr)
			}
			if fake.verbose != tt.wantVerbose {
				t.Fatalf("verbose = %v, want %v", fake.verbose, tt.wantVerbose)
			}
			if fake.verbosity != tt.wantVerbosity {
				t.Fatalf("verbosity = %d, want %d", fake.verbosity, tt.wantVerbosity)
			}
		})
	}
}

func TestSummaryExitCodeComesFromApp(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{code: 1, err: fmt.Errorf("%w: 3 step(s) missing", app.ErrIncomplete)}
	code, _, stderr := runFake(t, fake, "summary", "--answers", "partial.yaml", "--submit")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "3 step(s) missing") {
		t.Fatalf("stderr = %q", stderr)
	}
	if fake.summaryOpts == nil || !fake.summaryOpts.Submit || fake.summaryOpts.AnswersPath != "partial.yaml" {
		t.Fatalf("summary options = %+v", fake.summaryOpts)
	}
}

func TestStartErrorMapsToExitTwo(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{err: errors.New("sitewiz start requires an interactive terminal")}
	code, _, stderr := runFake(t, fake, "start")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "interactive terminal") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestInvalidNotifyBackendIsRejectedBeforeRunning(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{}
	code, _, stderr := runFake(t, fake, "summary", "--answers", "a.yaml", "--notify", "pager")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "invalid notify backend") {
		t.Fatalf("stderr = %q", stderr)
	}
	if fake.summaryOpts != nil {
		t.Fatal("RunSummary called with invalid settings")
	}
}

func TestConfigFileFeedsSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("output: none\nverbosity: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fake := &fakeApp{}
	code, _, stderr := runFake(t, fake, "--config", path, "summary", "--answers", "a.yaml")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, stderr)
	}
	if got := fake.summaryOpts.Settings.Output; got != state.OutputNone {
		t.Fatalf("output = %q, want none", got)
	}
	if fake.verbosity != 1 {
		t.Fatalf("verbosity = %d, want 1", fake.verbosity)
	}
}

func TestMissingConfigFileIsError(t *testing.T) {
	t.Parallel()

	code, _, stderr := runFake(t, &fakeApp{}, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "start")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "read settings") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestOptionsForwardsField(t *testing.T) {
	t.Parallel()

	fake := &fakeApp{}
	if code, _, _ := runFake(t, fake, "options", "pageCount"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if fake.optionsArg == nil || *fake.optionsArg != "pageCount" {
		t.Fatalf("options arg = %v", fake.optionsArg)
	}

	code, _, _ := runFake(t, &fakeApp{}, "options", "a", "b")
	if code != 2 {
		t.Fatalf("exit code for two args = %d, want 2", code)
	}
}

func TestCompletionScripts(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		shell := shell
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runFake(t, &fakeApp{}, "completion", shell)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr=%q", code, stderr)
			}
			if !strings.Contains(stdout, "sitewiz") {
				t.Fatalf("%s completion does not mention sitewiz", shell)
			}
		})
	}
	if code, _, _ := runFake(t, &fakeApp{}, "completion", "tcsh"); code != 2 {
		t.Fatalf("exit code for tcsh = %d, want 2", code)
	}
}

func TestNewRootCommandListsCommands(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(io.Discard, io.Discard)
	want := map[string]bool{"start": false, "prompt": false, "summary": false, "options": false, "completion": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("command %q missing", name)
		}
	}
}
