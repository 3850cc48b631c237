// Package editing implements the copy-on-write mutation layer over resume documents.
package editing

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource issues entry ids. Implementations must never return the same id twice.
type IDSource interface {
	NewID() string
}

// UUIDSource issues random UUIDv4 strings
type UUIDSource struct{}

// NewID returns a fresh UUID string
func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// SequenceSource issues "<prefix>-<n>" ids from a monotonically increasing counter.
// Useful when stable ids are wanted, e.g. in tests and golden files.
type SequenceSource struct {
	Prefix string
	next   atomic.Int64
}

// NewID returns the next id in the sequence
func (s *SequenceSource) NewID() string {
	n := s.next.Add(1)
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
