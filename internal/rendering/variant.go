package rendering

import "strings"

// Variant names a visual template
type Variant string

// Available templates
const (
	VariantModern  Variant = "modern"
	VariantClassic Variant = "classic"
	VariantMinimal Variant = "minimal"
)

// DefaultVariant is used for unknown template names
const DefaultVariant = VariantModern

// VariantInfo describes a template for the template selector
type VariantInfo struct {
	ID          Variant `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

var variants = []VariantInfo{
	{ID: VariantModern, Name: "Modern", Description: "Clean design with accent colors"},
	{ID: VariantClassic, Name: "Classic", Description: "Traditional professional layout"},
	{ID: VariantMinimal, Name: "Minimal", Description: "Clean and simple design"},
}

// Variants lists the templates in selector order.
func Variants() []VariantInfo {
	out := make([]VariantInfo, len(variants))
	copy(out, variants)
	return out
}

// Known reports whether v is one of the available templates
func (v Variant) Known() bool {
	for _, info := range variants {
		if info.ID == v {
			return true
		}
	}
	return false
}

// ParseVariant maps a template name to a Variant, falling back to DefaultVariant.
func ParseVariant(name string) Variant {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	if v.Known() {
		return v
	}
	return DefaultVariant
}
