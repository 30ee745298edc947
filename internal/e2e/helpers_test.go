package e2e

import (
	"testing"

	"sitewiz/internal/testharness"
)

const completeAnswers = `website_type: portfolio
website_name: Studio North
design_style: elegant
primary_color: "#9b59b6"
secondary_color: "#1abc9c"
font_choice: playfair
page_count: custom
custom_page_count: "8"
key_features:
  - portfolio
  - contact
cms_required: none
seo_optimization: advanced
hosting_option: help
`

func setup(t *testing.T) *testharness.Harness {
	t.Helper()
	return testharness.NewHarness(t)
}

func mustSucceed(t *testing.T, res testharness.Result) {
	t.Helper()
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d\nstdout:\n%s\nstderr:\n%s", res.ExitCode, res.Stdout, res.Stderr)
	}
}
