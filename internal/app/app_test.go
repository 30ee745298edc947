package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewiz/internal/domain"
	"sitewiz/internal/state"
	"sitewiz/internal/wizard"
)

const completeAnswersYAML = `website_type: blog
website_name: Acme Journal
design_style: minimalist
primary_color: "#3498db"
secondary_color: "#abcdef"
font_choice: lato
page_count: "5"
key_features: [contact, blog]
cms_required: wordpress
seo_optimization: basic
hosting_option: included
`

func testValues() domain.FormValues {
	return domain.FormValues{
		WebsiteType:     "blog",
		WebsiteName:     "Acme Journal",
		DesignStyle:     "minimalist",
		PrimaryColor:    "#3498db",
		SecondaryColor:  "#abcdef",
		FontChoice:      "lato",
		PageCount:       "5",
		KeyFeatures:     []string{"contact", "blog"},
		CMSRequired:     "wordpress",
		SEOOptimization: "basic",
		HostingOption:   "included",
	}
}

func testApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	a := New(state.NewPaths(t.TempDir()), stdout, stderr)
	a.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	a.IsInteractiveTerminal = func() bool { return true }
	return a, stdout, stderr
}

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunStartRequiresInteractiveTerminal(t *testing.T) {
	t.Parallel()

	a, _, _ := testApp(t)
	a.IsInteractiveTerminal = func() bool { return false }
	called := false
	a.RunWizard = func(context.Context, *wizard.Controller, state.Settings) (WizardOutcome, error) {
		called = true
		return WizardOutcome{}, nil
	}

	err := a.RunStart(context.Background(), StartOptions{Settings: state.DefaultSettings()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
	assert.False(t, called)
}

func TestRunStartSubmitsAfterWizardReturns(t *testing.T) {
	t.Parallel()

	a, stdout, _ := testApp(t)
	path := writeAnswers(t, completeAnswersYAML)
	a.RunWizard = func(_ context.Context, ctrl *wizard.Controller, _ state.Settings) (WizardOutcome, error) {
		assert.Equal(t, "Acme Journal", ctrl.Values().WebsiteName)
		for !ctrl.IsReviewing() {
			require.True(t, ctrl.CanAdvance())
			ctrl.GoNext()
		}
		return WizardOutcome{Submitted: true}, nil
	}

	err := a.RunStart(context.Background(), StartOptions{AnswersPath: path, Settings: state.DefaultSettings()})
	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, summaryHeading)
	assert.Contains(t, out, "Acme Journal")
	assert.Contains(t, out, "✓ "+submittedNotice)
}

func TestRunStartWithoutSubmitPrintsNothing(t *testing.T) {
	t.Parallel()

	a, stdout, stderr := testApp(t)
	a.RunWizard = func(context.Context, *wizard.Controller, state.Settings) (WizardOutcome, error) {
		return WizardOutcome{}, nil
	}

	require.NoError(t, a.RunStart(context.Background(), StartOptions{Settings: state.DefaultSettings()}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "closed without submitting")
}

func TestRunStartPropagatesRunnerError(t *testing.T) {
	t.Parallel()

	a, _, _ := testApp(t)
	boom := errors.New("terminal went away")
	a.RunWizard = func(context.Context, *wizard.Controller, state.Settings) (WizardOutcome, error) {
		return WizardOutcome{}, boom
	}

	err := a.RunStart(context.Background(), StartOptions{Settings: state.DefaultSettings()})
	assert.ErrorIs(t, err, boom)
}

func TestRunStartRejectsInvalidAnswersFile(t *testing.T) {
	t.Parallel()

	a, _, _ := testApp(t)
	path := writeAnswers(t, "website_typo: blog\n")

	err := a.RunStart(context.Background(), StartOptions{AnswersPath: path, Settings: state.DefaultSettings()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load answers")
}

func TestQuietLoggerKeepsErrorsOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, true, 2)
	log.Info("hidden")
	log.V(1).Info("also hidden")
	log.WithName("submit").Error(errors.New("boom"), "delivery failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "sitewiz: submit: "), out)
	assert.Contains(t, out, "delivery failed")
}

func TestLoggerVerbosityGatesDebugLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, false, 1)
	log.V(1).Info("step changed")
	log.V(2).Info("field updated")

	assert.Contains(t, buf.String(), "step changed")
	assert.NotContains(t, buf.String(), "field updated")
}
