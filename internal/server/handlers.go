package server

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// TemplateRequest is the body of PUT /template
type TemplateRequest struct {
	Template string `json:"template"`
}

// TemplatesResponse lists the templates and marks the active one
type TemplatesResponse struct {
	Active    rendering.Variant       `json:"active"`
	Templates []rendering.VariantInfo `json:"templates"`
}

// BulletRequest is the body of POST /ai/bullet
type BulletRequest struct {
	ExperienceID string `json:"experienceId"`
	Index        int    `json:"index"`
}

// AnalyzeRequest is the body of POST /ai/analyze
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

// ContentRequest is the body of POST /ai/content
type ContentRequest struct {
	Context string `json:"context"`
}

// PreferencesResponse is returned by the preferences endpoints
type PreferencesResponse struct {
	Profile        *types.PreferencesProfile `json:"profile"`
	HasPreferences bool                      `json:"hasPreferences"`
	Persisted      *bool                     `json:"persisted,omitempty"`
}

// ExportComplete is the final event of POST /export/stream
type ExportComplete struct {
	Filename string            `json:"filename"`
	Template rendering.Variant `json:"template"`
	Size     int               `json:"size"`
	PDF      string            `json:"pdf"` // base64
}

func badRequest(message string, cause error) error {
	return &validation.Error{Field: "body", Message: message, Cause: cause}
}

// handleIndex describes the API in plain text
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Resume Builder API\n\nGET /resume, POST /resume/edits, GET /preview, POST /export, GET /templates\n") //nolint:errcheck
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Active:    s.session.Template(),
		Templates: rendering.Variants(),
	})
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	v, err := s.session.SetTemplate(req.Template)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]rendering.Variant{"template": v})
}

func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Document())
}

func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, err)
		return
	}
	doc, err := s.session.Replace(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleApplyEdit(w http.ResponseWriter, r *http.Request) {
	var req editing.EditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	edit, err := req.ToEdit()
	if err != nil {
		s.fail(w, err)
		return
	}
	doc, err := s.session.Apply(edit)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handlePreview renders the document; ?template= overrides the active template
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	variant := rendering.Variant(r.URL.Query().Get("template"))
	if variant != "" && !variant.Known() {
		s.errorResponse(w, http.StatusBadRequest, "unknown template: "+string(variant))
		return
	}
	html, err := s.session.PreviewAs(variant)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html) //nolint:errcheck
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.GenerateSummary(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleImproveBullet(w http.ResponseWriter, r *http.Request) {
	var req BulletRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	doc, err := s.session.ImproveBullet(r.Context(), req.ExperienceID, req.Index)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	analysis, err := s.session.AnalyzeJob(r.Context(), req.JobDescription)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analysis": analysis,
		"advice":   analysis.Summary(),
	})
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	doc, added, err := s.session.SuggestSkills(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document": doc,
		"added":    added,
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	advice, err := s.session.Optimize(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"advice": advice})
}

func (s *Server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	content, err := s.session.GenerateContent(r.Context(), req.Context)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"content": content})
}

func exportVariant(r *http.Request) (rendering.Variant, error) {
	variant := rendering.Variant(r.URL.Query().Get("template"))
	if variant != "" && !variant.Known() {
		return "", validation.New("template", "unknown template: "+string(variant))
	}
	return variant, nil
}

// handleExport returns the PDF as an attachment download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	variant, err := exportVariant(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if _, err := s.session.ExportAs(r.Context(), variant, export.HTTPSink{W: w}); err != nil {
		var deliveryErr *export.DeliveryError
		if errors.As(err, &deliveryErr) {
			// Headers are already sent; the client sees a truncated download.
			s.log.Warn("export delivery failed", "error", err)
			return
		}
		s.fail(w, err)
	}
}

// handleExportStream reports pipeline states as SSE events and finishes with the
// base64 PDF in a complete event
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	variant, err := exportVariant(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sink := &export.BufferSink{}
	res, err := s.session.ExportWatched(r.Context(), variant, sink, func(t export.Transition) {
		event := map[string]any{"from": t.From, "to": t.To, "at": t.At}
		if t.Err != nil {
			event["error"] = t.Err.Error()
		}
		if err := sse.WriteEvent("state", event); err != nil {
			s.log.Warn("error writing SSE event", "error", err)
		}
	})
	if err != nil {
		sse.WriteError(HTTPStatus(err), err.Error())
		return
	}

	_, pdf := sink.File()
	sse.WriteEvent("complete", ExportComplete{ //nolint:errcheck
		Filename: res.Filename,
		Template: res.Variant,
		Size:     res.Size,
		PDF:      base64.StdEncoding.EncodeToString(pdf),
	})
}

func (s *Server) preferences(w http.ResponseWriter) *preferences.Manager {
	m := s.session.Preferences()
	if m == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "preferences storage is not configured")
	}
	return m
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	m := s.preferences(w)
	if m == nil {
		return
	}
	profile := m.Load(r.Context())
	s.jsonResponse(w, http.StatusOK, PreferencesResponse{Profile: profile, HasPreferences: profile != nil})
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	m := s.preferences(w)
	if m == nil {
		return
	}
	var profile types.PreferencesProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.fail(w, err)
		return
	}
	if err := preferences.ValidateProfile(&profile); err != nil {
		s.fail(w, err)
		return
	}
	saved, persisted, err := m.Save(r.Context(), profile)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, PreferencesResponse{Profile: saved, HasPreferences: persisted, Persisted: &persisted})
}

func (s *Server) handleClearPreferences(w http.ResponseWriter, r *http.Request) {
	m := s.preferences(w)
	if m == nil {
		return
	}
	cleared := m.Clear(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]bool{"cleared": cleared})
}

func (s *Server) handleAutofill(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.Autofill(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleWizardSteps(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"steps": preferences.Steps()})
}
