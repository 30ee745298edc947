package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"sitewiz/internal/app"
	"sitewiz/internal/domain"
	"sitewiz/internal/state"
)

type appRunner interface {
	SetVerbose(verbose bool)
	SetVerbosity(v int)
	RunStart(ctx context.Context, opts app.StartOptions) error
	RunPrompt(ctx context.Context, opts app.StartOptions) error
	RunSummary(ctx context.Context, opts app.SummaryOptions) (int, error)
	RunOptions(field string) (int, error)
}

type runDeps struct {
	userHomeDir  func() (string, error)
	newApp       func(paths state.Paths, stdout io.Writer, stderr io.Writer) appRunner
	loadSettings func(paths state.Paths, opts state.LoadOptions) (state.Settings, error)
}

type runtimeState struct {
	stdout     io.Writer
	stderr     io.Writer
	quiet      bool
	verbose    int
	configFile string

	deps runDeps
	app  appRunner
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func defaultRunDeps() runDeps {
	return runDeps{
		userHomeDir: os.UserHomeDir,
		newApp: func(paths state.Paths, stdout io.Writer, stderr io.Writer) appRunner {
			return app.New(paths, stdout, stderr)
		},
		loadSettings: state.LoadSettings,
	}
}

func Run(args []string, stdout io.Writer, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runWithDeps(ctx, args, stdout, stderr, defaultRunDeps())
}

func NewRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	runtime := &runtimeState{
		stdout: stdout,
		stderr: stderr,
		deps:   defaultRunDeps(),
	}
	cmd := newRootCommand(runtime)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func runWithDeps(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer, deps runDeps) int {
	runtime := &runtimeState{
		stdout: stdout,
		stderr: stderr,
		deps:   deps,
	}

	cmd := newRootCommand(runtime)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var codedErr *exitError
	if errors.As(err, &codedErr) {
		if codedErr.err != nil {
			fmt.Fprintln(stderr, codedErr.err)
		}
		if codedErr.code == 0 {
			return 2
		}
		return codedErr.code
	}

	fmt.Fprintln(stderr, err)
	return 2
}

func (r *runtimeState) paths() (state.Paths, error) {
	home, err := r.deps.userHomeDir()
	if err != nil {
		return state.Paths{}, fmt.Errorf("resolve home: %w", err)
	}
	return state.NewPaths(home), nil
}

// settings resolves the effective settings for cmd. --verbose wins over a
// lower configured verbosity.
func (r *runtimeState) settings(cmd *cobra.Command) (state.Settings, error) {
	paths, err := r.paths()
	if err != nil {
		return state.Settings{}, err
	}
	s, err := r.deps.loadSettings(paths, state.LoadOptions{ConfigFile: r.configFile, Flags: cmd.Flags()})
	if err != nil {
		return state.Settings{}, err
	}
	if r.verbose > s.Verbosity {
		s.Verbosity = r.verbose
	}
	return s, nil
}

func (r *runtimeState) appRunner(verbosity int) (appRunner, error) {
	if r.app == nil {
		paths, err := r.paths()
		if err != nil {
			return nil, err
		}
		r.app = r.deps.newApp(paths, r.stdout, r.stderr)
	}
	r.app.SetVerbose(!r.quiet)
	r.app.SetVerbosity(verbosity)
	return r.app, nil
}

func newRootCommand(runtime *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitewiz",
		Short:         "Configure a website step by step.",
		Long:          "sitewiz walks you through website type, name, style, colors, fonts, pages, features, CMS, SEO and hosting, then shows a summary to submit or edit.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(2, errors.New("a command is required"))
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(2, err)
	})

	cmd.PersistentFlags().BoolVarP(&runtime.quiet, "quiet", "q", false, "Only log errors.")
	cmd.PersistentFlags().CountVarP(&runtime.verbose, "verbose", "v", "Log wizard transitions (repeat for field updates).")
	cmd.PersistentFlags().StringVar(&runtime.configFile, "config", "", "Settings file (default ~/.config/sitewiz/config.yaml).")

	cmd.AddCommand(
		newStartCommand(runtime),
		newPromptCommand(runtime),
		newSummaryCommand(runtime),
		newOptionsCommand(runtime),
	)
	cmd.AddCommand(newCompletionCommand(runtime, cmd))

	return cmd
}

func withExitCode(code int, err error) error {
	if err == nil {
		if code == 0 {
			return nil
		}
		return &exitError{code: code}
	}
	if code == 0 {
		code = 2
	}
	return &exitError{code: code, err: err}
}

// outputFlags registers the flags shared by every command that can submit.
func outputFlags(cmd *cobra.Command) {
	cmd.Flags().String("notify", state.NotifyBackendStdout, "Acknowledgment backend: stdout, osascript or none.")
	cmd.Flags().String("output", state.OutputText, "Submitted configuration format: text, yaml or none.")
}

func newStartCommand(runtime *runtimeState) *cobra.Command {
	var answers string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the full-screen configuration wizard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := runtime.settings(cmd)
			if err != nil {
				return withExitCode(2, err)
			}
			runner, err := runtime.appRunner(settings.Verbosity)
			if err != nil {
				return withExitCode(2, err)
			}
			err = runner.RunStart(cmd.Context(), app.StartOptions{AnswersPath: answers, Settings: settings})
			return withExitCode(0, err)
		},
	}

	cmd.Flags().StringVar(&answers, "answers", "", "Prefill the wizard from a YAML answers file.")
	cmd.Flags().Bool("alt-screen", true, "Use the terminal's alternate screen.")
	outputFlags(cmd)

	return cmd
}

func newPromptCommand(runtime *runtimeState) *cobra.Command {
	var answers string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Answer the wizard one form at a time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := runtime.settings(cmd)
			if err != nil {
				return withExitCode(2, err)
			}
			runner, err := runtime.appRunner(settings.Verbosity)
			if err != nil {
				return withExitCode(2, err)
			}
			err = runner.RunPrompt(cmd.Context(), app.StartOptions{AnswersPath: answers, Settings: settings})
			return withExitCode(0, err)
		},
	}

	cmd.Flags().StringVar(&answers, "answers", "", "Prefill the prompts from a YAML answers file.")
	cmd.Flags().Bool("accessible", false, "Use plain prompts suitable for screen readers.")
	outputFlags(cmd)

	return cmd
}

func newSummaryCommand(runtime *runtimeState) *cobra.Command {
	var answers string
	var submit bool

	cmd := &cobra.Command{
		Use:   "summary --answers FILE",
		Short: "Check an answers file and print its configuration summary.",
		Long:  "summary loads a YAML answers file, lists any incomplete steps (exit code 1), and otherwise prints the summary. With --submit the configuration is submitted instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := runtime.settings(cmd)
			if err != nil {
				return withExitCode(2, err)
			}
			runner, err := runtime.appRunner(settings.Verbosity)
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunSummary(cmd.Context(), app.SummaryOptions{
				AnswersPath: answers,
				Submit:      submit,
				Settings:    settings,
			})
			return withExitCode(code, err)
		},
	}

	cmd.Flags().StringVar(&answers, "answers", "", "YAML answers file to check.")
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the configuration when every step is complete.")
	outputFlags(cmd)

	return cmd
}

func newOptionsCommand(runtime *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "options [field]",
		Short: "List the choices offered for each step.",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0, len(domain.Fields()))
			for _, f := range domain.Fields() {
				names = append(names, f.String())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			runner, err := runtime.appRunner(runtime.verbose)
			if err != nil {
				return withExitCode(2, err)
			}
			field := ""
			if len(args) == 1 {
				field = args[0]
			}
			code, err := runner.RunOptions(field)
			return withExitCode(code, err)
		},
	}
}

func newCompletionCommand(runtime *runtimeState, root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts.",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(_ *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = root.GenBashCompletionV2(runtime.stdout, true)
			case "zsh":
				err = root.GenZshCompletion(runtime.stdout)
			case "fish":
				err = root.GenFishCompletion(runtime.stdout, true)
			case "powershell":
				err = root.GenPowerShellCompletionWithDesc(runtime.stdout)
			default:
				err = fmt.Errorf("unsupported shell %q", args[0])
			}
			return withExitCode(0, err)
		},
	}
}
