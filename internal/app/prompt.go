package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"sitewiz/internal/domain"
	"sitewiz/internal/state"
	"sitewiz/internal/wizard"
)

// customColorChoice is the select value standing for "type a hex code".
const customColorChoice = "\x00custom"

var (
	errValueRequired   = errors.New("a value is required")
	errFeatureRequired = errors.New("select at least one feature")
	errPageCountFormat = errors.New("enter a whole number of pages (1 or more)")
)

type stepAnswer struct {
	Value    string
	Custom   string
	Features []string
}

// stepPrompter asks one step at a time and confirms the summary.
type stepPrompter interface {
	Prompt(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error)
	Confirm(ctx context.Context, lines []wizard.SummaryLine) (bool, error)
}

// RunPrompt runs the wizard as a sequence of line-oriented forms.
func (a *App) RunPrompt(ctx context.Context, opts StartOptions) error {
	if !opts.Settings.Accessible && (a.IsInteractiveTerminal == nil || !a.IsInteractiveTerminal()) {
		return errors.New("sitewiz prompt requires an interactive terminal (or --accessible)")
	}
	if a.RunPrompts == nil {
		return errors.New("prompt runner is not configured")
	}
	return a.runSurface(ctx, opts, a.RunPrompts)
}

func runHuhPrompts(ctx context.Context, ctrl *wizard.Controller, settings state.Settings) (WizardOutcome, error) {
	return runPromptFlow(ctx, ctrl, huhPrompter{accessible: settings.Accessible})
}

func runPromptFlow(ctx context.Context, ctrl *wizard.Controller, p stepPrompter) (WizardOutcome, error) {
	for {
		for !ctrl.IsReviewing() {
			step := ctrl.CurrentStep()
			answer, err := p.Prompt(ctx, step, ctrl.Values())
			if errors.Is(err, huh.ErrUserAborted) {
				return WizardOutcome{}, nil
			}
			if err != nil {
				return WizardOutcome{}, fmt.Errorf("%s: %w", strings.ToLower(step.Label), err)
			}
			applyAnswer(ctrl, step, answer)
			if !ctrl.CanAdvance() {
				continue
			}
			ctrl.GoNext()
		}

		submit, err := p.Confirm(ctx, wizard.Summarize(ctrl.Values()))
		if errors.Is(err, huh.ErrUserAborted) {
			return WizardOutcome{}, nil
		}
		if err != nil {
			return WizardOutcome{}, fmt.Errorf("review: %w", err)
		}
		if submit {
			return WizardOutcome{Submitted: true}, nil
		}
		ctrl.ResetToEdit()
	}
}

func applyAnswer(ctrl *wizard.Controller, step domain.Step, answer stepAnswer) {
	switch step.Kind {
	case domain.KindMultiSelect:
		ctrl.UpdateFeatures(mergeSelection(ctrl.Values().KeyFeatures, answer.Features))
	default:
		ctrl.UpdateField(step.Field, answer.Value)
		if step.HasCustomInput(answer.Value) {
			ctrl.UpdateField(step.CustomField, answer.Custom)
		}
	}
}

// mergeSelection keeps previously selected values in their original order
// and appends newly selected ones.
func mergeSelection(prev []string, selected []string) []string {
	keep := map[string]bool{}
	for _, v := range selected {
		keep[v] = true
	}
	out := make([]string, 0, len(selected))
	for _, v := range prev {
		if keep[v] {
			out = append(out, v)
			delete(keep, v)
		}
	}
	for _, v := range selected {
		if keep[v] {
			out = append(out, v)
			delete(keep, v)
		}
	}
	return out
}

type huhPrompter struct {
	accessible bool
}

func (h huhPrompter) run(ctx context.Context, groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithAccessible(h.accessible).
		WithShowHelp(true).
		RunWithContext(ctx)
}

func (h huhPrompter) Prompt(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error) {
	switch step.Kind {
	case domain.KindFreeText:
		return h.promptText(ctx, step, current)
	case domain.KindColorPicker:
		return h.promptColor(ctx, step, current)
	case domain.KindMultiSelect:
		return h.promptFeatures(ctx, step, current)
	case domain.KindSingleChoice:
		return h.promptChoice(ctx, step, current)
	default:
		return stepAnswer{}, fmt.Errorf("unsupported step kind %s", step.Kind)
	}
}

func (h huhPrompter) promptText(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error) {
	value := current.Get(step.Field)
	err := h.run(ctx, huh.NewGroup(
		huh.NewInput().
			Title(step.Prompt).
			Placeholder("Enter your "+strings.ToLower(step.Label)).
			Value(&value).
			Validate(requireText),
	).Title(step.Label))
	return stepAnswer{Value: strings.TrimSpace(value)}, err
}

func (h huhPrompter) promptChoice(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error) {
	value := current.Get(step.Field)
	custom := ""
	if step.CustomOption != "" {
		custom = current.Get(step.CustomField)
	}
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(step.Prompt).
				Options(huhOptions(domain.Options(step.Field))...).
				Value(&value),
		).Title(step.Label),
	}
	if step.CustomOption != "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Custom "+step.Label).
				Placeholder("Enter number of pages").
				Value(&custom).
				Validate(validatePageCount),
		).WithHideFunc(func() bool {
			return !step.HasCustomInput(value)
		}))
	}
	err := h.run(ctx, groups...)
	return stepAnswer{Value: value, Custom: strings.TrimSpace(custom)}, err
}

func (h huhPrompter) promptColor(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error) {
	options := domain.Options(step.Field)
	value := current.Get(step.Field)
	choice := value
	hex := ""
	if _, preset := domain.LookupLabel(step.Field, value); !preset && value != "" {
		choice = customColorChoice
		hex = value
	}
	selectOptions := make([]huh.Option[string], 0, len(options)+1)
	for _, opt := range options {
		selectOptions = append(selectOptions, huh.NewOption(fmt.Sprintf("%s %s", opt.Label, opt.Value), opt.Value))
	}
	selectOptions = append(selectOptions, huh.NewOption("Custom color (hex code)", customColorChoice))

	err := h.run(ctx,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(step.Prompt).
				Options(selectOptions...).
				Value(&choice),
		).Title(step.Label),
		huh.NewGroup(
			huh.NewInput().
				Title("Or enter a custom color (hex code)").
				Placeholder("#RRGGBB").
				Value(&hex).
				Validate(requireText),
		).WithHideFunc(func() bool {
			return choice != customColorChoice
		}),
	)
	if choice == customColorChoice {
		return stepAnswer{Value: strings.TrimSpace(hex)}, err
	}
	return stepAnswer{Value: choice}, err
}

func (h huhPrompter) promptFeatures(ctx context.Context, step domain.Step, current domain.FormValues) (stepAnswer, error) {
	selected := current.Features()
	err := h.run(ctx, huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(step.Prompt).
			Options(huhOptions(domain.Options(step.Field))...).
			Value(&selected).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return errFeatureRequired
				}
				return nil
			}),
	).Title(step.Label))
	return stepAnswer{Features: selected}, err
}

func (h huhPrompter) Confirm(ctx context.Context, lines []wizard.SummaryLine) (bool, error) {
	submit := true
	err := h.run(ctx, huh.NewGroup(
		huh.NewNote().
			Title(summaryHeading).
			Description(wizard.RenderSummaryText(lines)),
		huh.NewConfirm().
			Title("Submit this configuration?").
			Affirmative("Submit Configuration").
			Negative("Edit Configuration").
			Value(&submit),
	))
	return submit, err
}

func huhOptions(opts []domain.Option) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts))
	for _, opt := range opts {
		out = append(out, huh.NewOption(opt.Label, opt.Value))
	}
	return out
}

func requireText(v string) error {
	if strings.TrimSpace(v) == "" {
		return errValueRequired
	}
	return nil
}

func validatePageCount(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return errPageCountFormat
	}
	return nil
}
