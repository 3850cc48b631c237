// Package rendering turns a resume document into a per-template layout tree and its HTML preview.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a preview template
type TemplateError struct {
	Variant Variant
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", e.Variant, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", e.Variant, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
