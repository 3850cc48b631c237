package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
	jsonCall bool
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.jsonCall = true
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }
func (f *fakeClient) Close() error                       { return nil }

func TestGenerateSummary(t *testing.T) {
	client := &fakeClient{response: "  Seasoned engineer with a decade of Go.  \n"}
	svc := New(client, nil)

	summary, err := svc.GenerateSummary(t.Context(),
		types.PersonalInfo{FullName: "Jane Doe", Location: "Berlin"},
		[]types.ExperienceEntry{{Company: "Acme", Position: "Engineer", StartDate: "2020", EndDate: "2019", Current: true, Description: []string{"Built APIs", ""}}},
		[]types.Skill{{Name: "Go"}, {Name: "SQL"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "Seasoned engineer with a decade of Go.", summary)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Candidate: Jane Doe")
	assert.Contains(t, prompt, "- Engineer at Acme (2020 - Present)")
	assert.Contains(t, prompt, "  * Built APIs")
	assert.Contains(t, prompt, "Skills: Go, SQL")
	assert.NotContains(t, prompt, "{{.")
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestImproveBullet_TrimsReplacement(t *testing.T) {
	client := &fakeClient{response: "\n\"Cut p99 latency 40% by rewriting the cache layer\"\n"}
	svc := New(client, nil)

	text, err := svc.ImproveBullet(t.Context(), "Made cache faster", "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Cut p99 latency 40% by rewriting the cache layer", text)
	assert.Contains(t, client.prompts[0], "for a Backend Engineer position")
	assert.Contains(t, client.prompts[0], `"Made cache faster"`)
	assert.False(t, client.jsonCall)
}

func TestAnalyzeJobDescription(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"requiredSkills\":[\"Go\",\"Kubernetes\"],\"keywords\":[\"microservices\"],\"suggestions\":\"Quantify impact\"}\n```"}
	svc := New(client, nil)

	analysis, err := svc.AnalyzeJobDescription(t.Context(), "We need a Go engineer")
	require.NoError(t, err)
	assert.Equal(t, &JobAnalysis{
		RequiredSkills: []string{"Go", "Kubernetes"},
		Keywords:       []string{"microservices"},
		Suggestions:    "Quantify impact",
	}, analysis)
	assert.True(t, client.jsonCall)
	assert.Contains(t, client.prompts[0], "We need a Go engineer")
}

func TestAnalyzeJobDescription_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I think you should learn Go."},
		{"array", `["Go"]`},
		{"missing fields", `{"requiredSkills": ["Go"]}`},
		{"wrong types", `{"requiredSkills": "Go", "keywords": [], "suggestions": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&fakeClient{response: tt.response}, nil)
			analysis, err := svc.AnalyzeJobDescription(t.Context(), "Go engineer")
			assert.Nil(t, analysis)
			assert.True(t, IsMalformedResponse(err), "got %v", err)
		})
	}
}

func TestAnalyzeJobDescription_BlankTextRejected(t *testing.T) {
	client := &fakeClient{}
	_, err := New(client, nil).AnalyzeJobDescription(t.Context(), "  \n\t")
	assert.True(t, validation.IsValidation(err))
	assert.Empty(t, client.prompts, "no request for blank text")
}

func TestSuggestSkills(t *testing.T) {
	client := &fakeClient{response: `Sure! ["Terraform", " ", "Go", "  gRPC "]`}
	svc := New(client, nil)

	skills, err := svc.SuggestSkills(t.Context(), "Platform Engineer", []string{"Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Terraform", "Go", "gRPC"}, skills, "existing skills are not filtered")
	assert.Contains(t, client.prompts[0], "Current skills: Go")
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestSuggestSkills_Malformed(t *testing.T) {
	for _, response := range []string{`{"skills": ["Go"]}`, `[1, 2, 3]`, `Go, Rust`} {
		t.Run(response, func(t *testing.T) {
			_, err := New(&fakeClient{response: response}, nil).SuggestSkills(t.Context(), "Engineer", nil)
			assert.True(t, IsMalformedResponse(err), "got %v", err)
		})
	}
}

func TestOptimizeResume(t *testing.T) {
	client := &fakeClient{response: "1. Add metrics"}
	doc := types.ResumeDocument{PersonalInfo: types.PersonalInfo{FullName: "Jane Doe"}}

	advice, err := New(client, nil).OptimizeResume(t.Context(), doc)
	require.NoError(t, err)
	assert.Equal(t, "1. Add metrics", advice)
	assert.Contains(t, client.prompts[0], `"fullName": "Jane Doe"`)
	assert.Contains(t, client.prompts[0], `"experience": []`)
	assert.Equal(t, llm.TierAdvanced, client.tiers[0])
}

func TestGenerateContent(t *testing.T) {
	client := &fakeClient{response: "Use action verbs."}
	advice, err := New(client, nil).GenerateContent(t.Context(), "experience section", map[string]string{"position": "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Use action verbs.", advice)
	assert.Contains(t, client.prompts[0], "Context: experience section")
	assert.Contains(t, client.prompts[0], `User Input: {"position":"Engineer"}`)
}

func TestErrors_Classification(t *testing.T) {
	transport := &fakeClient{err: errors.New("dial tcp: connection refused")}
	_, err := New(transport, nil).ImproveBullet(t.Context(), "x", "y")
	assert.True(t, IsServiceUnavailable(err))
	assert.ErrorContains(t, err, "connection refused")

	empty := &fakeClient{err: fmt.Errorf("no candidates in response: %w", llm.ErrEmptyResponse)}
	_, err = New(empty, nil).OptimizeResume(t.Context(), types.NewResumeDocument())
	assert.True(t, IsMalformedResponse(err))

	blank := &fakeClient{response: "   "}
	_, err = New(blank, nil).GenerateSummary(t.Context(), types.PersonalInfo{}, nil, nil)
	assert.True(t, IsMalformedResponse(err))
}

func TestService_WithoutClient(t *testing.T) {
	svc := New(nil, nil)
	assert.False(t, svc.Available())

	_, err := svc.ImproveBullet(t.Context(), "x", "y")
	assert.True(t, IsServiceUnavailable(err))
	_, err = svc.SuggestSkills(t.Context(), "y", nil)
	assert.True(t, IsServiceUnavailable(err))
}

func TestSuggestionJobTitle(t *testing.T) {
	_, err := SuggestionJobTitle(types.NewResumeDocument())
	assert.True(t, validation.IsValidation(err))

	doc := types.ResumeDocument{Experience: []types.ExperienceEntry{{ID: "a", Position: "  "}, {ID: "b", Position: "CTO"}}}
	title, err := SuggestionJobTitle(doc)
	require.NoError(t, err)
	assert.Equal(t, DefaultJobTitle, title)

	doc.Experience[0].Position = "Staff Engineer"
	title, err = SuggestionJobTitle(doc)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", title)
}

func TestJobAnalysis_Summary(t *testing.T) {
	assert.Equal(t,
		"Required Skills: Go, SQL\n\nKeywords to Include: None found\n\nSuggestions: No suggestions available",
		JobAnalysis{RequiredSkills: []string{"Go", "SQL"}}.Summary())
}
