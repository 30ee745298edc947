package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sitewiz/internal/domain"
	"sitewiz/internal/wizard"
)

// RunSummary walks an answers file through the wizard without a terminal.
// It returns exit code 1 when a step is incomplete.
func (a *App) RunSummary(ctx context.Context, opts SummaryOptions) (int, error) {
	if strings.TrimSpace(opts.AnswersPath) == "" {
		return 2, errors.New("--answers is required")
	}
	values, err := a.loadAnswers(opts.AnswersPath)
	if err != nil {
		return 2, err
	}
	ctrl, err := a.newController(values, opts.Settings)
	if err != nil {
		return 2, err
	}

	if missing := ctrl.MissingSteps(); len(missing) > 0 {
		fmt.Fprintln(a.Stdout, "Incomplete configuration:")
		for _, step := range missing {
			fmt.Fprintf(a.Stdout, "  - %s (%s): %s\n", step.Label, step.Field.YAMLKey(), missingReason(step, values))
		}
		return 1, fmt.Errorf("%w: %d step(s) missing", ErrIncomplete, len(missing))
	}

	for !ctrl.IsReviewing() {
		if !ctrl.CanAdvance() {
			return 2, fmt.Errorf("step %s blocked the walk to review", ctrl.CurrentStep().Field)
		}
		ctrl.GoNext()
	}

	if !opts.Submit {
		fmt.Fprintf(a.Stdout, "%s\n\n", summaryHeading)
		fmt.Fprint(a.Stdout, wizard.RenderSummaryText(wizard.Summarize(ctrl.Values())))
		return 0, nil
	}
	if err := ctrl.Submit(ctx); err != nil {
		return 2, err
	}
	return 0, nil
}

func missingReason(step domain.Step, v domain.FormValues) string {
	if step.HasCustomInput(strings.TrimSpace(v.Get(step.Field))) {
		return step.CustomField.YAMLKey() + " is required when " + step.Field.YAMLKey() + " is " + step.CustomOption
	}
	if step.Kind == domain.KindMultiSelect {
		return "select at least one value"
	}
	return "value is required"
}

// RunOptions prints the option registry for one field or for every step.
func (a *App) RunOptions(fieldName string) (int, error) {
	if strings.TrimSpace(fieldName) != "" {
		f, err := domain.ParseField(fieldName)
		if err != nil {
			return 2, err
		}
		if err := writeFieldOptions(a.Stdout, f); err != nil {
			return 2, err
		}
		return 0, nil
	}
	for i, step := range domain.Steps() {
		if i > 0 {
			fmt.Fprintln(a.Stdout)
		}
		fmt.Fprintf(a.Stdout, "%s (%s, %s)\n", step.Label, step.Field.YAMLKey(), step.Kind)
		if err := writeFieldOptions(a.Stdout, step.Field); err != nil {
			return 2, err
		}
	}
	return 0, nil
}

func writeFieldOptions(w io.Writer, f domain.Field) error {
	opts := domain.Options(f)
	if len(opts) == 0 {
		_, err := fmt.Fprintln(w, "  (free text)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, opt := range opts {
		fmt.Fprintf(tw, "  %s\t%s\n", opt.Value, opt.Label)
	}
	return tw.Flush()
}
