package domain

import (
	"fmt"
	"strings"
)

type Field int

const (
	FieldWebsiteType Field = iota
	FieldWebsiteName
	FieldDesignStyle
	FieldPrimaryColor
	FieldSecondaryColor
	FieldFontChoice
	FieldPageCount
	FieldCustomPageCount
	FieldKeyFeatures
	FieldCMSRequired
	FieldSEOOptimization
	FieldHostingOption

	fieldCount
)

// CustomPageCountOption is the pageCount value that switches the step to
// the free-text custom count.
const CustomPageCountOption = "custom"

var fieldNames = [fieldCount]string{
	FieldWebsiteType:     "websiteType",
	FieldWebsiteName:     "websiteName",
	FieldDesignStyle:     "designStyle",
	FieldPrimaryColor:    "primaryColor",
	FieldSecondaryColor:  "secondaryColor",
	FieldFontChoice:      "fontChoice",
	FieldPageCount:       "pageCount",
	FieldCustomPageCount: "customPageCount",
	FieldKeyFeatures:     "keyFeatures",
	FieldCMSRequired:     "cmsRequired",
	FieldSEOOptimization: "seoOptimization",
	FieldHostingOption:   "hostingOption",
}

var fieldYAMLKeys = [fieldCount]string{
	FieldWebsiteType:     "website_type",
	FieldWebsiteName:     "website_name",
	FieldDesignStyle:     "design_style",
	FieldPrimaryColor:    "primary_color",
	FieldSecondaryColor:  "secondary_color",
	FieldFontChoice:      "font_choice",
	FieldPageCount:       "page_count",
	FieldCustomPageCount: "custom_page_count",
	FieldKeyFeatures:     "key_features",
	FieldCMSRequired:     "cms_required",
	FieldSEOOptimization: "seo_optimization",
	FieldHostingOption:   "hosting_option",
}

func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// YAMLKey is the key used for the field in answers files.
func (f Field) YAMLKey() string {
	if !f.Valid() {
		return ""
	}
	return fieldYAMLKeys[f]
}

func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseField accepts either the camelCase field name or its YAML key.
func ParseField(name string) (Field, error) {
	name = strings.TrimSpace(name)
	for f := Field(0); f < fieldCount; f++ {
		if fieldNames[f] == name || fieldYAMLKeys[f] == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

type FormValues struct {
	WebsiteType     string   `yaml:"website_type"`
	WebsiteName     string   `yaml:"website_name"`
	DesignStyle     string   `yaml:"design_style"`
	PrimaryColor    string   `yaml:"primary_color"`
	SecondaryColor  string   `yaml:"secondary_color"`
	FontChoice      string   `yaml:"font_choice"`
	PageCount       string   `yaml:"page_count"`
	CustomPageCount string   `yaml:"custom_page_count,omitempty"`
	KeyFeatures     []string `yaml:"key_features"`
	CMSRequired     string   `yaml:"cms_required"`
	SEOOptimization string   `yaml:"seo_optimization"`
	HostingOption   string   `yaml:"hosting_option"`
}

func (v *FormValues) stringField(f Field) *string {
	switch f {
	case FieldWebsiteType:
		return &v.WebsiteType
	case FieldWebsiteName:
		return &v.WebsiteName
	case FieldDesignStyle:
		return &v.DesignStyle
	case FieldPrimaryColor:
		return &v.PrimaryColor
	case FieldSecondaryColor:
		return &v.SecondaryColor
	case FieldFontChoice:
		return &v.FontChoice
	case FieldPageCount:
		return &v.PageCount
	case FieldCustomPageCount:
		return &v.CustomPageCount
	case FieldCMSRequired:
		return &v.CMSRequired
	case FieldSEOOptimization:
		return &v.SEOOptimization
	case FieldHostingOption:
		return &v.HostingOption
	default:
		return nil
	}
}

// Get returns the raw value of f. Key features come back comma-joined.
func (v FormValues) Get(f Field) string {
	if f == FieldKeyFeatures {
		return strings.Join(v.KeyFeatures, ",")
	}
	if p := v.stringField(f); p != nil {
		return *p
	}
	return ""
}

// Set replaces the value of f. For FieldKeyFeatures the value is a
// comma-separated list; blanks and repeats are dropped.
func (v *FormValues) Set(f Field, value string) {
	if f == FieldKeyFeatures {
		v.KeyFeatures = SplitFeatures(value)
		return
	}
	if p := v.stringField(f); p != nil {
		*p = value
	}
}

func (v FormValues) Features() []string {
	if v.KeyFeatures == nil {
		return nil
	}
	out := make([]string, len(v.KeyFeatures))
	copy(out, v.KeyFeatures)
	return out
}

func (v FormValues) HasFeature(value string) bool {
	for _, f := range v.KeyFeatures {
		if f == value {
			return true
		}
	}
	return false
}

func (v FormValues) Clone() FormValues {
	out := v
	out.KeyFeatures = v.Features()
	return out
}

func (v FormValues) IsZero() bool {
	for _, f := range Fields() {
		if v.Get(f) != "" {
			return false
		}
	}
	return true
}

// SplitFeatures parses a comma-separated feature list, keeping first-seen
// order.
func SplitFeatures(raw string) []string {
	return DedupeFeatures(strings.Split(raw, ","))
}

func DedupeFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
