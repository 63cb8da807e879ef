package richtext

// Result holds the output of a conversion.
type Result struct {
	Markup   string    `json:"markup"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningSchemaViolation    WarningType = "schema_violation"
	WarningInvalidAttribute   WarningType = "invalid_attribute"
	WarningUnsupportedElement WarningType = "unsupported_element"
)

// Warning represents markup that was dropped or rewritten to satisfy the
// stored RichText schema.
type Warning struct {
	Type    WarningType `json:"type"`
	Element string      `json:"element,omitempty"`
	Message string      `json:"message"`
}
