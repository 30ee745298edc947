package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"sitewiz/internal/domain"
	"sitewiz/internal/state"
	"sitewiz/internal/wizard"
)

// ErrIncomplete is returned when an answers file does not fill every step.
var ErrIncomplete = errors.New("configuration is incomplete")

type App struct {
	Paths     state.Paths
	Stdout    io.Writer
	Stderr    io.Writer
	Verbosity int
	Quiet     bool
	Now       func() time.Time
	Getenv    func(string) string

	IsInteractiveTerminal func() bool
	RunWizard             WizardRunner
	RunPrompts            WizardRunner
	NewNotifySender       func(backend string) (notifySender, error)

	logger *logr.Logger
}

type StartOptions struct {
	AnswersPath string
	Settings    state.Settings
}

type SummaryOptions struct {
	AnswersPath string
	Submit      bool
	Settings    state.Settings
}

// WizardOutcome reports how an interactive surface ended.
type WizardOutcome struct {
	Submitted bool
}

// WizardRunner drives a controller through an interactive surface until the
// user submits or quits.
type WizardRunner func(ctx context.Context, ctrl *wizard.Controller, settings state.Settings) (WizardOutcome, error)

func New(paths state.Paths, stdout io.Writer, stderr io.Writer) *App {
	return &App{
		Paths:                 paths,
		Stdout:                stdout,
		Stderr:                stderr,
		Now:                   func() time.Time { return time.Now().UTC() },
		Getenv:                os.Getenv,
		IsInteractiveTerminal: defaultIsInteractiveTerminal,
		RunWizard:             runWizardInteractive,
		RunPrompts:            runHuhPrompts,
	}
}

func (a *App) SetVerbose(verbose bool) {
	a.Quiet = !verbose
	a.logger = nil
}

func (a *App) SetVerbosity(v int) {
	a.Verbosity = v
	a.logger = nil
}

func (a *App) log() logr.Logger {
	if a.logger == nil {
		l := newLogger(a.Stderr, a.Quiet, a.Verbosity)
		a.logger = &l
	}
	return *a.logger
}

func (a *App) newController(values domain.FormValues, settings state.Settings) (*wizard.Controller, error) {
	submitter, err := a.newSubmitter(settings)
	if err != nil {
		return nil, err
	}
	return wizard.New(
		wizard.WithValues(values),
		wizard.WithSubmitter(submitter),
		wizard.WithLogger(a.log().WithName("wizard")),
		wizard.WithClock(a.Now),
	), nil
}

func (a *App) loadAnswers(path string) (domain.FormValues, error) {
	if path == "" {
		return domain.FormValues{}, nil
	}
	a.log().V(1).Info("loading answers", "path", path)
	values, err := state.LoadAnswers(path)
	if err != nil {
		return domain.FormValues{}, fmt.Errorf("load answers: %w", err)
	}
	return values, nil
}

// RunStart launches the full-screen wizard.
func (a *App) RunStart(ctx context.Context, opts StartOptions) error {
	if a.IsInteractiveTerminal == nil || !a.IsInteractiveTerminal() {
		return errors.New("sitewiz start requires an interactive terminal; use sitewiz summary --answers for scripted runs")
	}
	if a.RunWizard == nil {
		return errors.New("wizard runner is not configured")
	}
	return a.runSurface(ctx, opts, a.RunWizard)
}

func (a *App) runSurface(ctx context.Context, opts StartOptions, run WizardRunner) error {
	values, err := a.loadAnswers(opts.AnswersPath)
	if err != nil {
		return err
	}
	ctrl, err := a.newController(values, opts.Settings)
	if err != nil {
		return err
	}
	outcome, err := run(ctx, ctrl, opts.Settings)
	if err != nil {
		return err
	}
	if !outcome.Submitted {
		a.log().Info("wizard closed without submitting")
		return nil
	}
	return ctrl.Submit(ctx)
}
