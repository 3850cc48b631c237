package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	started  chan struct{}
	block    chan struct{}
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.started != nil {
		close(c.started)
	}
	if c.block != nil {
		<-c.block
	}
	return c.response, c.err
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *scriptedClient) GetModel(tier llm.ModelTier) string { return "scripted-" + string(tier) }
func (c *scriptedClient) Close() error                       { return nil }

type pngCapturer struct{ calls int }

func (c *pngCapturer) Capture(context.Context, export.Surface) ([]byte, error) {
	c.calls++
	return []byte("png"), nil
}

type stubEncoder struct{}

func (stubEncoder) Encode(img []byte, _ string) ([]byte, error) {
	return append([]byte("%PDF-"), img...), nil
}

func testDocument() types.ResumeDocument {
	return types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
		Experience: []types.ExperienceEntry{
			{ID: "exp-1", Company: "Acme", Position: "Platform Engineer", StartDate: "2020-01", Current: true, Description: []string{"Ran the platform", ""}},
		},
		Education: []types.EducationEntry{},
		Skills:    []types.Skill{{ID: "skill-1", Name: "Go", Category: "Technical"}},
	}
}

func newTestSession(client llm.Client) *Session {
	doc := testDocument()
	var ai *assistant.Service
	if client != nil {
		ai = assistant.New(client, nil)
	}
	return New(Options{
		Document:    &doc,
		IDs:         &editing.SequenceSource{Prefix: "id"},
		Assistant:   ai,
		Pipeline:    export.NewPipeline(&pngCapturer{}, stubEncoder{}, nil),
		Preferences: preferences.NewManager(preferences.NewMemoryStore(), nil),
	})
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{Template: "fancy"})
	assert.Equal(t, rendering.DefaultVariant, s.Template())
	assert.Equal(t, types.NewResumeDocument(), s.Document())
}

func TestApply(t *testing.T) {
	s := newTestSession(nil)
	before := s.Document()

	doc, err := s.Apply(editing.SetPersonalField{Field: editing.FieldPhone, Value: "555"})
	require.NoError(t, err)
	assert.Equal(t, "555", doc.PersonalInfo.Phone)
	assert.Equal(t, doc, s.Document())
	assert.Empty(t, before.PersonalInfo.Phone)

	doc, err = s.Apply(editing.AddEntry{List: editing.ListEducation})
	require.NoError(t, err)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "id-1", doc.Education[0].ID)

	_, err = s.Apply(editing.SetPersonalField{Field: "age", Value: "3"})
	assert.True(t, validation.IsValidation(err))
	assert.Equal(t, doc, s.Document(), "rejected edit leaves the document")
}

func TestReplace(t *testing.T) {
	s := newTestSession(nil)

	doc, err := s.Replace([]byte(`{
		"personalInfo": {"fullName": "John Roe"},
		"experience": [],
		"education": [],
		"skills": [{"id": "s1", "name": "Rust", "category": "Technical"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "John Roe", doc.PersonalInfo.FullName)
	assert.Equal(t, []string{"Rust"}, s.Document().SkillNames())

	_, err = s.Replace([]byte(`{"personalInfo": {}, "experience": [], "education": [], "skills": []}`))
	assert.True(t, validation.IsValidation(err))
	_, err = s.Replace([]byte(`not json`))
	assert.True(t, validation.IsValidation(err))
	assert.Equal(t, "John Roe", s.Document().PersonalInfo.FullName)
}

func TestReplace_RejectsDuplicateIDs(t *testing.T) {
	s := newTestSession(nil)
	before := s.Document()

	_, err := s.Replace([]byte(`{
		"personalInfo": {"fullName": "John Roe"},
		"experience": [],
		"education": [],
		"skills": [{"id": "x", "name": "Go", "category": ""}, {"id": "x", "name": "Rust", "category": ""}]
	}`))
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))
	assert.Contains(t, err.Error(), `"x"`)
	assert.Equal(t, before, s.Document())

	doc, err := s.Replace([]byte(`{
		"personalInfo": {"fullName": "John Roe"},
		"experience": [],
		"education": [],
		"skills": [{"id": "x", "name": "Go", "category": ""}, {"id": "y", "name": "Rust", "category": ""}]
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Skills, 2)

	doc, err = s.Apply(editing.RemoveEntry{List: editing.ListSkills, ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, doc.SkillNames())
	assert.Equal(t, -1, doc.FindSkill("x"))
}

func TestSetTemplateAndPreview(t *testing.T) {
	s := newTestSession(nil)

	v, err := s.SetTemplate(" Classic ")
	require.NoError(t, err)
	assert.Equal(t, rendering.VariantClassic, v)
	assert.Equal(t, rendering.VariantClassic, s.Template())

	_, err = s.SetTemplate("fancy")
	assert.True(t, validation.IsValidation(err))
	assert.Equal(t, rendering.VariantClassic, s.Template())

	html, err := s.Preview()
	require.NoError(t, err)
	assert.Contains(t, html, `resume-classic`)
	assert.Contains(t, html, "Jane Doe")

	minimal, err := s.PreviewAs(rendering.VariantMinimal)
	require.NoError(t, err)
	assert.Contains(t, minimal, `resume-minimal`)
}

func TestAutofill(t *testing.T) {
	s := newTestSession(nil)
	ctx := context.Background()

	_, err := s.Autofill(ctx)
	assert.True(t, validation.IsValidation(err), "no profile saved yet")

	_, ok, err := s.Preferences().Save(ctx, types.PreferencesProfile{
		Skills:       []string{"Kubernetes"},
		Location:     "Madrid",
		PersonalInfo: types.ProfileContact{Phone: "+34 600"},
	})
	require.NoError(t, err)
	require.True(t, ok)

	doc, err := s.Autofill(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.FullName)
	assert.Equal(t, "Madrid", doc.PersonalInfo.Location)
	assert.Equal(t, "+34 600", doc.PersonalInfo.Phone)
	assert.Equal(t, []string{"Go", "Kubernetes"}, doc.SkillNames())

	unconfigured := New(Options{})
	_, err = unconfigured.Autofill(ctx)
	assert.True(t, validation.IsValidation(err))
}

func TestExport(t *testing.T) {
	s := newTestSession(nil)
	sink := &export.BufferSink{}

	res, err := s.Export(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, "Jane_Doe_Resume.pdf", res.Filename)
	assert.Equal(t, rendering.VariantModern, res.Variant)
	name, data := sink.File()
	assert.Equal(t, "Jane_Doe_Resume.pdf", name)
	assert.Equal(t, []byte("%PDF-png"), data)
	assert.Equal(t, export.StateIdle, s.ExportState())

	res, err = s.ExportAs(context.Background(), rendering.VariantMinimal, sink)
	require.NoError(t, err)
	assert.Equal(t, rendering.VariantMinimal, res.Variant)
}

type blockingCapturer struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (c *blockingCapturer) Capture(context.Context, export.Surface) ([]byte, error) {
	c.once.Do(func() { close(c.started) })
	<-c.release
	return []byte("png"), nil
}

func TestExportWatched_ObserverSeesOnlyItsOwnExport(t *testing.T) {
	capturer := &blockingCapturer{started: make(chan struct{}), release: make(chan struct{})}
	doc := testDocument()
	s := New(Options{Document: &doc, Pipeline: export.NewPipeline(capturer, stubEncoder{}, nil)})

	done := make(chan error, 1)
	go func() {
		_, err := s.Export(context.Background(), &export.BufferSink{})
		done <- err
	}()
	<-capturer.started

	var overlapping []export.Transition
	_, err := s.ExportWatched(context.Background(), "", &export.BufferSink{}, func(t export.Transition) {
		overlapping = append(overlapping, t)
	})
	assert.True(t, IsBusy(err))

	close(capturer.release)
	require.NoError(t, <-done)
	assert.Empty(t, overlapping)

	var states []export.State
	res, err := s.ExportWatched(context.Background(), rendering.VariantClassic, &export.BufferSink{}, func(t export.Transition) {
		states = append(states, t.To)
	})
	require.NoError(t, err)
	assert.Equal(t, rendering.VariantClassic, res.Variant)
	assert.Equal(t, []export.State{export.StateCapturing, export.StateEncoding, export.StateIdle}, states)
}

func TestExport_RequiresFullName(t *testing.T) {
	s := newTestSession(nil)
	_, err := s.Apply(editing.SetPersonalField{Field: editing.FieldFullName, Value: "  "})
	require.NoError(t, err)

	_, err = s.Export(context.Background(), &export.BufferSink{})
	assert.True(t, validation.IsValidation(err))
}

func TestExport_NotConfigured(t *testing.T) {
	s := New(Options{})
	_, err := s.Export(context.Background(), &export.BufferSink{})
	var captureErr *export.CaptureError
	assert.ErrorAs(t, err, &captureErr)
	assert.Equal(t, export.StateIdle, s.ExportState())
}

func TestBusyError(t *testing.T) {
	err := &BusyError{Operation: "summary"}
	assert.Equal(t, "summary already in progress", err.Error())
	assert.True(t, IsBusy(err))
	assert.False(t, IsBusy(errors.New("other")))
}
