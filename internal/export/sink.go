package export

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Sink receives a finished PDF. Sinks only ever see complete files.
type Sink interface {
	Deliver(ctx context.Context, filename string, pdf []byte) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(ctx context.Context, filename string, pdf []byte) error

// Deliver implements Sink
func (f SinkFunc) Deliver(ctx context.Context, filename string, pdf []byte) error {
	return f(ctx, filename, pdf)
}

// DirSink writes exports into a directory. Files are written to a temporary name and
// renamed into place, so a failed export never leaves a partial file behind.
type DirSink struct {
	Dir string

	mu   sync.Mutex
	last string
}

// NewDirSink creates a sink writing into dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Deliver implements Sink
func (s *DirSink) Deliver(ctx context.Context, filename string, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	target := filepath.Join(s.Dir, safeBase(filename))
	tmp, err := os.CreateTemp(s.Dir, ".export-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	s.mu.Lock()
	s.last = target
	s.mu.Unlock()
	return nil
}

// LastPath returns the path of the most recent delivered file
func (s *DirSink) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// safeBase keeps a download name inside the target directory.
func safeBase(name string) string {
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "Resume.pdf"
	}
	return name
}

// BufferSink keeps the delivered file in memory.
type BufferSink struct {
	mu       sync.Mutex
	filename string
	data     []byte
}

// Deliver implements Sink
func (s *BufferSink) Deliver(_ context.Context, filename string, pdf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.data = append([]byte(nil), pdf...)
	return nil
}

// File returns the delivered name and bytes; both are empty until a delivery succeeds.
func (s *BufferSink) File() (string, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename, s.data
}

// HTTPSink streams the file to an HTTP client as an attachment download.
type HTTPSink struct {
	W http.ResponseWriter
}

// Deliver implements Sink
func (s HTTPSink) Deliver(_ context.Context, filename string, pdf []byte) error {
	h := s.W.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("Content-Length", strconv.Itoa(len(pdf)))
	s.W.WriteHeader(http.StatusOK)
	if _, err := s.W.Write(pdf); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
