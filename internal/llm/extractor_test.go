package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_JobAnalysis(t *testing.T) {
	prompt := BuildExtractionPrompt(JobAnalysisSchema(), "Senior Go engineer, Kubernetes required")

	assert.Contains(t, prompt, `"requiredSkills": ["string"] (required)`)
	assert.Contains(t, prompt, `"keywords": ["string"] (required)`)
	assert.Contains(t, prompt, `"suggestions": "string" (required)`)
	assert.Contains(t, prompt, "Senior Go engineer, Kubernetes required")
	assert.True(t, strings.HasPrefix(prompt, "You are a professional resume writer"))
}

func TestBuildExtractionPrompt_DefaultsTypeHint(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract.",
		Fields:      []SchemaField{{Name: "title"}, {Name: "tags", Type: "[\"string\"]"}},
	}
	prompt := BuildExtractionPrompt(schema, "x")

	assert.Contains(t, prompt, "\"title\": \"string\",\n")
	assert.Contains(t, prompt, "\"tags\": [\"string\"]\n")
}
