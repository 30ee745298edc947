package domain

import "strings"

// StepKind selects how a step is presented and edited. Renderers switch over
// the kind, never over the field.
type StepKind int

const (
	KindSingleChoice StepKind = iota
	KindFreeText
	KindColorPicker
	KindMultiSelect
)

func (k StepKind) String() string {
	switch k {
	case KindSingleChoice:
		return "single-choice"
	case KindFreeText:
		return "free-text"
	case KindColorPicker:
		return "color-picker"
	case KindMultiSelect:
		return "multi-select"
	default:
		return "unknown"
	}
}

type Step struct {
	Field      Field
	Label      string
	ShortLabel string
	Prompt     string
	Required   bool
	Kind       StepKind

	// CustomOption, when set, is the option value that unlocks a follow-up
	// free-text input stored in CustomField.
	CustomOption string
	CustomField  Field
}

// HasCustomInput reports whether value selects the step's follow-up input.
func (s Step) HasCustomInput(value string) bool {
	return s.CustomOption != "" && value == s.CustomOption
}

var steps = []Step{
	{Field: FieldWebsiteType, Label: "Website Type", ShortLabel: "Type", Prompt: "What type of website do you need?", Required: true, Kind: KindSingleChoice},
	{Field: FieldWebsiteName, Label: "Website Name", ShortLabel: "Name", Prompt: "What is your website name?", Required: true, Kind: KindFreeText},
	{Field: FieldDesignStyle, Label: "Design Style", ShortLabel: "Style", Required: true, Kind: KindSingleChoice},
	{Field: FieldPrimaryColor, Label: "Primary Color", ShortLabel: "Primary", Required: true, Kind: KindColorPicker},
	{Field: FieldSecondaryColor, Label: "Secondary Color", ShortLabel: "Secondary", Required: true, Kind: KindColorPicker},
	{Field: FieldFontChoice, Label: "Font Choice", ShortLabel: "Font", Required: true, Kind: KindSingleChoice},
	{
		Field: FieldPageCount, Label: "Page Count", ShortLabel: "Pages", Prompt: "How many pages do you need?", Required: true, Kind: KindSingleChoice,
		CustomOption: CustomPageCountOption, CustomField: FieldCustomPageCount,
	},
	{Field: FieldKeyFeatures, Label: "Key Features", ShortLabel: "Features", Prompt: "Which key features would you like?", Required: true, Kind: KindMultiSelect},
	{Field: FieldCMSRequired, Label: "CMS Required", ShortLabel: "CMS", Required: true, Kind: KindSingleChoice},
	{Field: FieldSEOOptimization, Label: "SEO Optimization", ShortLabel: "SEO", Required: true, Kind: KindSingleChoice},
	{Field: FieldHostingOption, Label: "Hosting Option", ShortLabel: "Hosting", Required: true, Kind: KindSingleChoice},
}

func init() {
	for i := range steps {
		if steps[i].Prompt != "" {
			continue
		}
		switch steps[i].Kind {
		case KindColorPicker:
			steps[i].Prompt = "Choose your " + strings.ToLower(steps[i].Label) + " for the website"
		default:
			steps[i].Prompt = "What " + strings.ToLower(steps[i].Label) + " would you prefer?"
		}
	}
}

// Steps returns the wizard steps in navigation order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func StepIndex(f Field) (int, bool) {
	for i, s := range steps {
		if s.Field == f {
			return i, true
		}
	}
	return -1, false
}
