package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"sitewiz/internal/domain"
)

const (
	placeholderNotSelected  = "Not selected"
	placeholderNotProvided  = "Not provided"
	placeholderNoneSelected = "None selected"
)

// SummaryLine is one rendered row of the review screen.
type SummaryLine struct {
	Field domain.Field
	Label string
	Value string
	// Swatch carries the raw color for color steps.
	Swatch string
	// Empty is set when Value is a placeholder.
	Empty bool
}

// Summarize projects values into display rows, one per step.
func Summarize(v domain.FormValues) []SummaryLine {
	steps := domain.Steps()
	out := make([]SummaryLine, 0, len(steps))
	for _, step := range steps {
		line := SummaryLine{Field: step.Field, Label: step.Label}
		line.Value, line.Empty = summaryValue(step, v)
		if step.Kind == domain.KindColorPicker && !line.Empty {
			line.Swatch = strings.TrimSpace(v.Get(step.Field))
		}
		out = append(out, line)
	}
	return out
}

func summaryValue(step domain.Step, v domain.FormValues) (string, bool) {
	switch step.Kind {
	case domain.KindMultiSelect:
		selected := domain.DedupeFeatures(v.KeyFeatures)
		if len(selected) == 0 {
			return placeholderNoneSelected, true
		}
		labels := make([]string, 0, len(selected))
		for _, value := range selected {
			labels = append(labels, labelOrValue(step.Field, value))
		}
		return strings.Join(labels, ", "), false
	case domain.KindFreeText:
		value := strings.TrimSpace(v.Get(step.Field))
		if value == "" {
			return placeholderNotProvided, true
		}
		return value, false
	}

	value := strings.TrimSpace(v.Get(step.Field))
	if value == "" {
		return placeholderNotSelected, true
	}
	if step.HasCustomInput(value) {
		count := strings.TrimSpace(v.Get(step.CustomField))
		if count == "" {
			return "Custom: " + placeholderNotProvided, false
		}
		return fmt.Sprintf("Custom: %s pages", count), false
	}
	return labelOrValue(step.Field, value), false
}

func labelOrValue(f domain.Field, value string) string {
	if label, ok := domain.LookupLabel(f, value); ok {
		return label
	}
	return value
}

// RenderSummaryText renders rows as aligned "Label: Value" lines.
func RenderSummaryText(lines []SummaryLine) string {
	width := 0
	for _, l := range lines {
		if len(l.Label) > width {
			width = len(l.Label)
		}
	}
	var b strings.Builder
	for _, l := range lines {
		value := l.Value
		if l.Swatch != "" && l.Swatch != l.Value {
			value = fmt.Sprintf("%s (%s)", l.Value, l.Swatch)
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width+1, l.Label+":", value)
	}
	return b.String()
}

// Submission is what the controller hands to its Submitter.
type Submission struct {
	Values      domain.FormValues
	Summary     []SummaryLine
	Slug        string
	SubmittedAt time.Time
}

func newSubmission(v domain.FormValues, now time.Time) Submission {
	values := v.Clone()
	return Submission{
		Values:      values,
		Summary:     Summarize(values),
		Slug:        slug.Make(values.WebsiteName),
		SubmittedAt: now.UTC(),
	}
}
