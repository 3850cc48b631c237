// Package session holds the state of one editing session: the active document and
// template plus the services that read and rewrite it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	rootschemas "github.com/jonathan/resume-builder/schemas"
	"golang.org/x/sync/semaphore"
)

// OpExport is the busy-guard key of Export
const OpExport = "export"

// Options configures a Session. Nil services disable the operations that need them.
type Options struct {
	Document    *types.ResumeDocument
	Template    rendering.Variant
	IDs         editing.IDSource
	Assistant   *assistant.Service
	Pipeline    *export.Pipeline
	Preferences *preferences.Manager
	Log         *logger.Logger
}

// Session is the single-writer state container of the editor. The document is only
// ever replaced, never mutated in place.
type Session struct {
	mu       sync.RWMutex
	doc      types.ResumeDocument
	template rendering.Variant

	ids       editing.IDSource
	assistant *assistant.Service
	pipeline  *export.Pipeline
	prefs     *preferences.Manager
	log       *logger.Logger

	guardsMu sync.Mutex
	guards   map[string]*semaphore.Weighted
}

// New creates a session starting from opts.Document, or an empty document
func New(opts Options) *Session {
	doc := types.NewResumeDocument()
	if opts.Document != nil {
		doc = opts.Document.Normalize()
	}
	template := opts.Template
	if !template.Known() {
		template = rendering.DefaultVariant
	}
	ids := opts.IDs
	if ids == nil {
		ids = editing.UUIDSource{}
	}
	log := logger.OrNop(opts.Log)
	ai := opts.Assistant
	if ai == nil {
		ai = assistant.New(nil, log)
	}
	return &Session{
		doc:       doc,
		template:  template,
		ids:       ids,
		assistant: ai,
		pipeline:  opts.Pipeline,
		prefs:     opts.Preferences,
		log:       log.With("component", "session"),
		guards:    make(map[string]*semaphore.Weighted),
	}
}

// Document returns the current document
func (s *Session) Document() types.ResumeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Template returns the active template
func (s *Session) Template() rendering.Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// Preferences returns the preferences manager, or nil when none is configured
func (s *Session) Preferences() *preferences.Manager {
	return s.prefs
}

// Apply runs one edit against the current document and stores the result
func (s *Session) Apply(edit editing.Edit) (types.ResumeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := editing.Apply(s.doc, edit, s.ids)
	if err != nil {
		return s.doc, err
	}
	s.doc = next
	return next, nil
}

// Replace imports a whole document from JSON after checking it against the resume schema.
// Ids must be unique within each list.
func (s *Session) Replace(data []byte) (types.ResumeDocument, error) {
	if err := schemas.Validate(rootschemas.ResumeDocument, data); err != nil {
		return s.Document(), &validation.Error{Field: "document", Message: "document does not match the resume schema", Cause: err}
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return s.Document(), &validation.Error{Field: "document", Message: "malformed document JSON", Cause: err}
	}
	if list, id, dup := doc.DuplicateID(); dup {
		return s.Document(), validation.New(list, fmt.Sprintf("duplicate %s id %q", list, id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Normalize()
	return s.doc, nil
}

// SetTemplate switches the active template. Unknown names are rejected.
func (s *Session) SetTemplate(name string) (rendering.Variant, error) {
	v := rendering.Variant(strings.ToLower(strings.TrimSpace(name)))
	if !v.Known() {
		return "", validation.New("template", fmt.Sprintf("unknown template %q", name))
	}
	s.mu.Lock()
	s.template = v
	s.mu.Unlock()
	return v, nil
}

// Preview renders the current document as HTML in the active template
func (s *Session) Preview() (string, error) {
	return s.PreviewAs("")
}

// PreviewAs renders the current document in variant, or in the active template when variant is empty
func (s *Session) PreviewAs(variant rendering.Variant) (string, error) {
	s.mu.RLock()
	doc := s.doc
	if variant == "" {
		variant = s.template
	}
	s.mu.RUnlock()
	return rendering.RenderHTML(doc, variant)
}

// Autofill merges the saved preferences profile into the document
func (s *Session) Autofill(ctx context.Context) (types.ResumeDocument, error) {
	if s.prefs == nil {
		return s.Document(), validation.New("preferences", "preferences are not configured")
	}
	profile := s.prefs.Load(ctx)
	if profile == nil {
		return s.Document(), validation.New("preferences", "no saved preferences to autofill from")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = editing.MergeAutofill(s.doc, profile, s.ids)
	return s.doc, nil
}

// Export renders the active template and runs the export pipeline into sink
func (s *Session) Export(ctx context.Context, sink export.Sink) (*export.Result, error) {
	return s.ExportAs(ctx, "", sink)
}

// ExportAs exports in variant, or in the active template when variant is empty
func (s *Session) ExportAs(ctx context.Context, variant rendering.Variant, sink export.Sink) (*export.Result, error) {
	return s.ExportWatched(ctx, variant, sink, nil)
}

// ExportWatched runs ExportAs and reports the pipeline transitions of this export, and
// only this export, to observe. A busy session fails before observe sees anything.
func (s *Session) ExportWatched(ctx context.Context, variant rendering.Variant, sink export.Sink, observe export.Observer) (*export.Result, error) {
	if s.pipeline == nil {
		return nil, &export.CaptureError{Message: "export is not configured"}
	}
	release, err := s.acquire(OpExport)
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.RLock()
	doc := s.doc
	if variant == "" {
		variant = s.template
	}
	s.mu.RUnlock()

	res, err := s.pipeline.ExportObserved(ctx, doc, variant, sink, observe)
	if errors.Is(err, export.ErrBusy) {
		return nil, &BusyError{Operation: OpExport, Cause: err}
	}
	return res, err
}

// ExportState reports the pipeline state
func (s *Session) ExportState() export.State {
	if s.pipeline == nil {
		return export.StateIdle
	}
	return s.pipeline.State()
}

func (s *Session) acquire(op string) (func(), error) {
	s.guardsMu.Lock()
	sem, ok := s.guards[op]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.guards[op] = sem
	}
	s.guardsMu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, &BusyError{Operation: op}
	}
	return func() { sem.Release(1) }, nil
}
