// Package assistant implements the AI writing helpers of the resume editor on top of an llm.Client.
// Every operation is a single request/response: no retries and no streaming.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	rootschemas "github.com/jonathan/resume-builder/schemas"
)

// Operation names one kind of assistant call
type Operation string

// Operations offered by the assistant
const (
	OpSummary  Operation = "summary"
	OpBullet   Operation = "bullet"
	OpAnalyze  Operation = "analyze"
	OpSkills   Operation = "skills"
	OpOptimize Operation = "optimize"
	OpContent  Operation = "content"
)

// DefaultJobTitle is used for skill suggestions when the latest position is blank
const DefaultJobTitle = "Professional"

const promptFile = "assistant.json"

// JobAnalysis is the structured result of AnalyzeJobDescription
type JobAnalysis struct {
	RequiredSkills []string `json:"requiredSkills"`
	Keywords       []string `json:"keywords"`
	Suggestions    string   `json:"suggestions"`
}

// Summary renders the analysis as the advice text shown in the assistant panel.
func (a JobAnalysis) Summary() string {
	orNone := func(items []string) string {
		if len(items) == 0 {
			return "None found"
		}
		return strings.Join(items, ", ")
	}
	suggestions := a.Suggestions
	if suggestions == "" {
		suggestions = "No suggestions available"
	}
	return fmt.Sprintf("Required Skills: %s\n\nKeywords to Include: %s\n\nSuggestions: %s",
		orNone(a.RequiredSkills), orNone(a.Keywords), suggestions)
}

// Service issues assistant requests. A Service with a nil client reports every
// operation as unavailable, which is how the app runs without an API key.
type Service struct {
	client llm.Client
	log    *logger.Logger
}

// New creates an assistant over client
func New(client llm.Client, log *logger.Logger) *Service {
	return &Service{client: client, log: logger.OrNop(log).With("component", "assistant")}
}

// Available reports whether a backend is configured
func (s *Service) Available() bool {
	return s != nil && s.client != nil
}

// GenerateSummary writes a professional summary from the candidate's details.
func (s *Service) GenerateSummary(ctx context.Context, info types.PersonalInfo, experience []types.ExperienceEntry, skills []types.Skill) (string, error) {
	prompt, err := prompts.Render(promptFile, "generate-summary", map[string]string{
		"FullName":   info.FullName,
		"Location":   info.Location,
		"Experience": formatExperience(experience),
		"Skills":     joinSkillNames(skills),
	})
	if err != nil {
		return "", err
	}
	return s.text(ctx, OpSummary, prompt, llm.TierStandard)
}

// ImproveBullet rewrites a single experience bullet for the given job title.
// Only the trimmed replacement text is returned.
func (s *Service) ImproveBullet(ctx context.Context, bullet, jobTitle string) (string, error) {
	prompt, err := prompts.Render(promptFile, "improve-bullet", map[string]string{
		"JobTitle": jobTitle,
		"Bullet":   bullet,
	})
	if err != nil {
		return "", err
	}
	text, err := s.text(ctx, OpBullet, prompt, llm.TierLite)
	if err != nil {
		return "", err
	}
	return strings.Trim(text, "\"“” \t\n"), nil
}

// AnalyzeJobDescription extracts required skills, keywords and tailoring advice from a job posting.
func (s *Service) AnalyzeJobDescription(ctx context.Context, jobText string) (*JobAnalysis, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, validation.New("jobDescription", "job description is required")
	}

	prompt := llm.BuildExtractionPrompt(llm.JobAnalysisSchema(), s.quoteExternal(OpAnalyze, "job description", jobText))
	raw, err := s.structured(ctx, OpAnalyze, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" || payload[0] != '{' {
		return nil, &MalformedResponseError{Operation: string(OpAnalyze), Message: "expected a JSON object", Response: raw}
	}
	if err := schemas.Validate(rootschemas.JobAnalysis, []byte(payload)); err != nil {
		return nil, &MalformedResponseError{Operation: string(OpAnalyze), Message: "response does not match job analysis schema", Response: raw, Cause: err}
	}

	var analysis JobAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, &MalformedResponseError{Operation: string(OpAnalyze), Message: "failed to decode analysis", Response: raw, Cause: err}
	}
	return &analysis, nil
}

// SuggestSkills asks for skills relevant to jobTitle. Excluding currentSkills is left to the
// model, so duplicates of existing skills may come back.
func (s *Service) SuggestSkills(ctx context.Context, jobTitle string, currentSkills []string) ([]string, error) {
	current := "none"
	if len(currentSkills) > 0 {
		current = strings.Join(currentSkills, ", ")
	}
	prompt, err := prompts.Render(promptFile, "suggest-skills", map[string]string{
		"JobTitle":      jobTitle,
		"CurrentSkills": current,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.structured(ctx, OpSkills, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" || payload[0] != '[' {
		return nil, &MalformedResponseError{Operation: string(OpSkills), Message: "expected a JSON array of strings", Response: raw}
	}

	var names []string
	if err := json.Unmarshal([]byte(payload), &names); err != nil {
		return nil, &MalformedResponseError{Operation: string(OpSkills), Message: "expected a JSON array of strings", Response: raw, Cause: err}
	}

	skills := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			skills = append(skills, name)
		}
	}
	return skills, nil
}

// OptimizeResume returns free-text advice for improving the whole document.
func (s *Service) OptimizeResume(ctx context.Context, doc types.ResumeDocument) (string, error) {
	encoded, err := json.MarshalIndent(doc.Normalize(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}
	prompt, err := prompts.Render(promptFile, "optimize-resume", map[string]string{
		"Resume": string(encoded),
	})
	if err != nil {
		return "", err
	}
	return s.text(ctx, OpOptimize, prompt, llm.TierAdvanced)
}

// GenerateContent asks for general resume-writing advice about userInput in the given context.
func (s *Service) GenerateContent(ctx context.Context, contextText string, userInput any) (string, error) {
	encoded, err := json.Marshal(userInput)
	if err != nil {
		return "", validation.New("userInput", "must be JSON-encodable")
	}
	prompt, err := prompts.Render(promptFile, "generate-content", map[string]string{
		"Context":   contextText,
		"UserInput": string(encoded),
	})
	if err != nil {
		return "", err
	}
	return s.text(ctx, OpContent, prompt, llm.TierStandard)
}

// SuggestionJobTitle picks the job title used for skill suggestions: the position of the
// first experience entry, or DefaultJobTitle when it is blank. A document without any
// experience is rejected.
func SuggestionJobTitle(doc types.ResumeDocument) (string, error) {
	if len(doc.Experience) == 0 {
		return "", validation.New("experience", "add your work experience first")
	}
	if title := strings.TrimSpace(doc.Experience[0].Position); title != "" {
		return title, nil
	}
	return DefaultJobTitle, nil
}

func (s *Service) text(ctx context.Context, op Operation, prompt string, tier llm.ModelTier) (string, error) {
	if !s.Available() {
		return "", &ServiceUnavailableError{Operation: string(op), Message: "no AI backend configured"}
	}

	s.log.Debug("assistant request", "operation", op, "model", s.client.GetModel(tier))
	text, err := s.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", s.classify(op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &MalformedResponseError{Operation: string(op), Message: "empty response"}
	}
	return text, nil
}

func (s *Service) structured(ctx context.Context, op Operation, prompt string, tier llm.ModelTier) (string, error) {
	if !s.Available() {
		return "", &ServiceUnavailableError{Operation: string(op), Message: "no AI backend configured"}
	}

	s.log.Debug("assistant request", "operation", op, "model", s.client.GetModel(tier), "format", "json")
	raw, err := s.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", s.classify(op, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", &MalformedResponseError{Operation: string(op), Message: "empty response"}
	}
	return raw, nil
}

func (s *Service) classify(op Operation, err error) error {
	s.log.Warn("assistant request failed", "operation", op, "error", err)
	if errors.Is(err, llm.ErrEmptyResponse) {
		return &MalformedResponseError{Operation: string(op), Message: "empty response", Cause: err}
	}
	return &ServiceUnavailableError{Operation: string(op), Message: "request failed", Cause: err}
}

func formatExperience(entries []types.ExperienceEntry) string {
	if len(entries) == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, e := range entries {
		end := e.EndDate
		if e.Current {
			end = "Present"
		}
		fmt.Fprintf(&sb, "- %s at %s (%s - %s)\n", e.Position, e.Company, e.StartDate, end)
		for _, bullet := range e.Description {
			if strings.TrimSpace(bullet) != "" {
				fmt.Fprintf(&sb, "  * %s\n", bullet)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func joinSkillNames(skills []types.Skill) string {
	if len(skills) == 0 {
		return "none"
	}
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
