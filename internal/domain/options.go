package domain

// Option is one selectable value of a field together with its display label.
type Option struct {
	Value string
	Label string
}

// registry is built once at init and never mutated; Options hands out copies.
var registry = map[Field][]Option{
	FieldWebsiteType: {
		{Value: "business", Label: "Business"},
		{Value: "portfolio", Label: "Portfolio"},
		{Value: "ecommerce", Label: "E-commerce"},
		{Value: "blog", Label: "Blog"},
		{Value: "landing", Label: "Landing Page"},
	},
	FieldDesignStyle: {
		{Value: "minimalist", Label: "Minimalist"},
		{Value: "bold", Label: "Bold & Vibrant"},
		{Value: "elegant", Label: "Elegant"},
		{Value: "corporate", Label: "Corporate"},
		{Value: "creative", Label: "Creative"},
	},
	FieldPrimaryColor: {
		{Value: "#3498db", Label: "Blue"},
		{Value: "#e74c3c", Label: "Red"},
		{Value: "#2ecc71", Label: "Green"},
		{Value: "#9b59b6", Label: "Purple"},
		{Value: "#f1c40f", Label: "Yellow"},
	},
	FieldSecondaryColor: {
		{Value: "#f1c40f", Label: "Yellow"},
		{Value: "#9b59b6", Label: "Purple"},
		{Value: "#1abc9c", Label: "Teal"},
		{Value: "#e67e22", Label: "Orange"},
		{Value: "#34495e", Label: "Navy"},
	},
	FieldFontChoice: {
		{Value: "roboto", Label: "Roboto"},
		{Value: "montserrat", Label: "Montserrat"},
		{Value: "lato", Label: "Lato"},
		{Value: "georgia", Label: "Georgia"},
		{Value: "playfair", Label: "Playfair Display"},
	},
	FieldPageCount: {
		{Value: "1", Label: "1-Page"},
		{Value: "5", Label: "5 Pages"},
		{Value: "10", Label: "10 Pages"},
		{Value: CustomPageCountOption, Label: "Custom"},
	},
	FieldKeyFeatures: {
		{Value: "contact", Label: "Contact Form"},
		{Value: "blog", Label: "Blog Integration"},
		{Value: "ecommerce", Label: "E-commerce Cart"},
		{Value: "booking", Label: "Booking System"},
		{Value: "portfolio", Label: "Portfolio Gallery"},
		{Value: "social", Label: "Social Media Integration"},
		{Value: "analytics", Label: "Analytics Dashboard"},
	},
	FieldCMSRequired: {
		{Value: "wordpress", Label: "WordPress"},
		{Value: "webflow", Label: "Webflow"},
		{Value: "custom", Label: "Custom CMS"},
		{Value: "none", Label: "None"},
	},
	FieldSEOOptimization: {
		{Value: "basic", Label: "Basic"},
		{Value: "advanced", Label: "Advanced"},
		{Value: "none", Label: "None"},
	},
	FieldHostingOption: {
		{Value: "included", Label: "Included"},
		{Value: "self", Label: "Self-hosted"},
		{Value: "help", Label: "Help with setup"},
		{Value: "none", Label: "Not decided yet"},
	},
}

// Options returns the ordered options for f, or nil when the field is free
// text.
func Options(f Field) []Option {
	opts, ok := registry[f]
	if !ok {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

func HasOptions(f Field) bool {
	return len(registry[f]) > 0
}

func LookupLabel(f Field, value string) (string, bool) {
	for _, opt := range registry[f] {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}
