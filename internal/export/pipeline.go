package export

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// State is the phase of the export pipeline
type State string

// Pipeline states
const (
	StateIdle      State = "idle"
	StateCapturing State = "capturing"
	StateEncoding  State = "encoding"
	StateFailed    State = "failed"
)

// Transition is reported to observers on every state change
type Transition struct {
	From State
	To   State
	Err  error
	At   time.Time
}

// Observer receives transitions synchronously, in order.
type Observer func(Transition)

// Result describes a delivered export
type Result struct {
	Filename string
	Variant  rendering.Variant
	Size     int
}

// Pipeline runs Idle -> Capturing -> Encoding -> Idle, passing through Failed on any error.
// Only one export runs at a time.
type Pipeline struct {
	capturer Capturer
	encoder  Encoder
	log      *logger.Logger
	now      func() time.Time

	running atomic.Bool

	mu        sync.Mutex
	state     State
	observers map[int]Observer
	nextID    int
}

// NewPipeline creates a pipeline in the Idle state
func NewPipeline(capturer Capturer, encoder Encoder, log *logger.Logger) *Pipeline {
	return &Pipeline{
		capturer:  capturer,
		encoder:   encoder,
		log:       logger.OrNop(log).With("component", "export"),
		now:       time.Now,
		state:     StateIdle,
		observers: make(map[int]Observer),
	}
}

// State returns the current state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Busy reports whether an export is running
func (p *Pipeline) Busy() bool {
	return p.running.Load()
}

// Subscribe registers an observer and returns a function that removes it.
func (p *Pipeline) Subscribe(o Observer) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.observers[id] = o
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.observers, id)
		p.mu.Unlock()
	}
}

// Export renders doc in the given template, captures it, encodes the PDF and hands it to sink.
//
// A document without a full name is rejected with a validation error before any state
// change. Capture, encode and delivery failures are returned as CaptureError, EncodeError
// and DeliveryError; the pipeline is back in Idle when Export returns.
func (p *Pipeline) Export(ctx context.Context, doc types.ResumeDocument, variant rendering.Variant, sink Sink) (*Result, error) {
	return p.ExportObserved(ctx, doc, variant, sink, nil)
}

// ExportObserved runs Export and also reports this run's transitions to observe, after
// the subscribed observers. observe sees nothing when the export is rejected up front.
func (p *Pipeline) ExportObserved(ctx context.Context, doc types.ResumeDocument, variant rendering.Variant, sink Sink, observe Observer) (*Result, error) {
	if strings.TrimSpace(doc.PersonalInfo.FullName) == "" {
		return nil, validation.New("fullName", "please enter your full name before downloading")
	}
	if sink == nil {
		return nil, validation.New("sink", "no destination for the export")
	}
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.running.Store(false)

	filename := Filename(doc.PersonalInfo.FullName)
	layout := rendering.Render(doc, variant)
	log := p.log.With("file", filename, "template", layout.Variant)

	p.transition(StateCapturing, nil, observe)
	surface, err := NewSurface(layout)
	if err != nil {
		return nil, p.fail(log, err, observe)
	}
	img, err := p.capturer.Capture(ctx, surface)
	if err != nil {
		var captureErr *CaptureError
		if !errors.As(err, &captureErr) {
			err = &CaptureError{Message: "capturer failed", Cause: err}
		}
		return nil, p.fail(log, err, observe)
	}

	p.transition(StateEncoding, nil, observe)
	pdf, err := p.encoder.Encode(img, strings.TrimSuffix(filename, ".pdf"))
	if err != nil {
		var encodeErr *EncodeError
		if !errors.As(err, &encodeErr) {
			err = &EncodeError{Message: "encoder failed", Cause: err}
		}
		return nil, p.fail(log, err, observe)
	}

	if err := sink.Deliver(ctx, filename, pdf); err != nil {
		return nil, p.fail(log, &DeliveryError{Filename: filename, Message: "sink rejected the file", Cause: err}, observe)
	}

	p.transition(StateIdle, nil, observe)
	log.Info("resume exported", "bytes", len(pdf))
	return &Result{Filename: filename, Variant: layout.Variant, Size: len(pdf)}, nil
}

func (p *Pipeline) fail(log *logger.Logger, err error, observe Observer) error {
	log.Warn("export failed", "state", p.State(), "error", err)
	p.transition(StateFailed, err, observe)
	p.transition(StateIdle, nil, observe)
	return err
}

func (p *Pipeline) transition(to State, err error, run Observer) {
	p.mu.Lock()
	t := Transition{From: p.state, To: to, Err: err, At: p.now()}
	p.state = to
	observers := make([]Observer, 0, len(p.observers))
	for id := 0; id < p.nextID; id++ {
		if o, ok := p.observers[id]; ok {
			observers = append(observers, o)
		}
	}
	p.mu.Unlock()

	if run != nil {
		observers = append(observers, run)
	}
	for _, o := range observers {
		o(t)
	}
}
