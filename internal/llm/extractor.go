// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines what information to extract from text and in which shape.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobAnalysis")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every value on the text below, do not invent requirements.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JobAnalysisSchema returns the extraction schema for analyzing a job description
// against a resume: skills the role requires, ATS keywords and free-text advice.
func JobAnalysisSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobAnalysis",
		Description: `You are a professional resume writer and ATS specialist.
Analyze the job description below and tell the candidate how to tailor their resume to it.`,
		Fields: []SchemaField{
			{
				Name:        "requiredSkills",
				Type:        "[\"string\"]",
				Description: "Hard and soft skills the role explicitly requires, short names only",
				Required:    true,
			},
			{
				Name:        "keywords",
				Type:        "[\"string\"]",
				Description: "Terms an applicant tracking system is likely to match on",
				Required:    true,
			},
			{
				Name:        "suggestions",
				Type:        "\"string\"",
				Description: "Concise, actionable advice for tailoring the resume to this role",
				Required:    true,
			},
		},
	}
}
