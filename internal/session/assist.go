package session

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/types"
)

// SuggestedSkillCategory is the category given to skills added from AI suggestions
const SuggestedSkillCategory = "Technical"

// The AI operations below read a snapshot of the document, call the assistant without
// holding the document lock, and write the result back through the editing package.
// Any failure leaves the document as it was.

// GenerateSummary replaces the summary with an AI-written one
func (s *Session) GenerateSummary(ctx context.Context) (types.ResumeDocument, error) {
	release, err := s.acquire(string(assistant.OpSummary))
	if err != nil {
		return s.Document(), err
	}
	defer release()

	doc := s.Document()
	summary, err := s.assistant.GenerateSummary(ctx, doc.PersonalInfo, doc.Experience, doc.Skills)
	if err != nil {
		s.log.Warn("summary generation failed", "error", err)
		return s.Document(), err
	}
	return s.Apply(editing.SetPersonalField{Field: editing.FieldSummary, Value: summary})
}

// ImproveBullet rewrites one bullet of an experience entry. An unknown entry id, an
// out-of-range index or a blank bullet is a no-op and the assistant is not called.
func (s *Session) ImproveBullet(ctx context.Context, experienceID string, index int) (types.ResumeDocument, error) {
	release, err := s.acquire(string(assistant.OpBullet))
	if err != nil {
		return s.Document(), err
	}
	defer release()

	doc := s.Document()
	i := doc.FindExperience(experienceID)
	if i < 0 {
		return doc, nil
	}
	entry := doc.Experience[i]
	if index < 0 || index >= len(entry.Description) || strings.TrimSpace(entry.Description[index]) == "" {
		return doc, nil
	}

	improved, err := s.assistant.ImproveBullet(ctx, entry.Description[index], entry.Position)
	if err != nil {
		s.log.Warn("bullet improvement failed", "experience", experienceID, "error", err)
		return s.Document(), err
	}
	return s.Apply(editing.UpdateBullet{ExperienceID: experienceID, Index: index, Text: improved})
}

// AnalyzeJob returns tailoring advice for a job description; the document is not changed
func (s *Session) AnalyzeJob(ctx context.Context, jobDescription string) (*assistant.JobAnalysis, error) {
	release, err := s.acquire(string(assistant.OpAnalyze))
	if err != nil {
		return nil, err
	}
	defer release()

	analysis, err := s.assistant.AnalyzeJobDescription(ctx, jobDescription)
	if err != nil {
		s.log.Warn("job analysis failed", "error", err)
		return nil, err
	}
	return analysis, nil
}

// SuggestSkills appends AI-suggested skills. Suggestions already on the resume are
// appended again; the caller decides what to keep.
func (s *Session) SuggestSkills(ctx context.Context) (types.ResumeDocument, []string, error) {
	release, err := s.acquire(string(assistant.OpSkills))
	if err != nil {
		return s.Document(), nil, err
	}
	defer release()

	doc := s.Document()
	title, err := assistant.SuggestionJobTitle(doc)
	if err != nil {
		return doc, nil, err
	}

	suggested, err := s.assistant.SuggestSkills(ctx, title, doc.SkillNames())
	if err != nil {
		s.log.Warn("skill suggestion failed", "error", err)
		return s.Document(), nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = editing.AppendSkills(s.doc, suggested, SuggestedSkillCategory, s.ids)
	return s.doc, suggested, nil
}

// Optimize returns free-form improvement advice for the whole document
func (s *Session) Optimize(ctx context.Context) (string, error) {
	release, err := s.acquire(string(assistant.OpOptimize))
	if err != nil {
		return "", err
	}
	defer release()

	advice, err := s.assistant.OptimizeResume(ctx, s.Document())
	if err != nil {
		s.log.Warn("resume optimization failed", "error", err)
		return "", err
	}
	return advice, nil
}

// GenerateContent answers a free-form writing request about the current document
func (s *Session) GenerateContent(ctx context.Context, contextText string) (string, error) {
	release, err := s.acquire(string(assistant.OpContent))
	if err != nil {
		return "", err
	}
	defer release()

	return s.assistant.GenerateContent(ctx, contextText, s.Document())
}
