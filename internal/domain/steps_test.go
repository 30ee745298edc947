package domain

import "testing"

func TestStepsOrder(t *testing.T) {
	t.Parallel()

	want := []Field{
		FieldWebsiteType,
		FieldWebsiteName,
		FieldDesignStyle,
		FieldPrimaryColor,
		FieldSecondaryColor,
		FieldFontChoice,
		FieldPageCount,
		FieldKeyFeatures,
		FieldCMSRequired,
		FieldSEOOptimization,
		FieldHostingOption,
	}
	got := Steps()
	if len(got) != len(want) {
		t.Fatalf("len(Steps()) = %d, want %d", len(got), len(want))
	}
	for i, f := range want {
		if got[i].Field != f {
			t.Fatalf("step %d = %s, want %s", i, got[i].Field, f)
		}
		if !got[i].Required {
			t.Fatalf("step %s should be required", f)
		}
		if got[i].Prompt == "" {
			t.Fatalf("step %s has no prompt", f)
		}
	}
}

func TestStepKinds(t *testing.T) {
	t.Parallel()

	kinds := map[Field]StepKind{
		FieldWebsiteName:    KindFreeText,
		FieldPrimaryColor:   KindColorPicker,
		FieldSecondaryColor: KindColorPicker,
		FieldKeyFeatures:    KindMultiSelect,
		FieldPageCount:      KindSingleChoice,
	}
	for _, s := range Steps() {
		want, ok := kinds[s.Field]
		if !ok {
			want = KindSingleChoice
		}
		if s.Kind != want {
			t.Fatalf("step %s kind = %s, want %s", s.Field, s.Kind, want)
		}
	}
}

func TestDerivedPrompts(t *testing.T) {
	t.Parallel()

	tests := map[Field]string{
		FieldDesignStyle:     "What design style would you prefer?",
		FieldPrimaryColor:    "Choose your primary color for the website",
		FieldSEOOptimization: "What seo optimization would you prefer?",
	}
	for f, want := range tests {
		i, ok := StepIndex(f)
		if !ok {
			t.Fatalf("StepIndex(%s) not found", f)
		}
		if got := Steps()[i].Prompt; got != want {
			t.Fatalf("prompt for %s = %q, want %q", f, got, want)
		}
	}
}

func TestPageCountStepHasCustomInput(t *testing.T) {
	t.Parallel()

	i, ok := StepIndex(FieldPageCount)
	if !ok || i != 6 {
		t.Fatalf("StepIndex(pageCount) = (%d, %v), want (6, true)", i, ok)
	}
	step := Steps()[i]
	if !step.HasCustomInput("custom") {
		t.Fatal("expected custom option to unlock follow-up input")
	}
	if step.HasCustomInput("5") {
		t.Fatal("regular option should not unlock follow-up input")
	}
	if step.CustomField != FieldCustomPageCount {
		t.Fatalf("custom field = %s, want %s", step.CustomField, FieldCustomPageCount)
	}
	if _, ok := StepIndex(FieldCustomPageCount); ok {
		t.Fatal("customPageCount must not be a step of its own")
	}
}
