// Package preferences persists the single user preferences profile and drives the
// guided wizard that builds it.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Key is the fixed storage key of the profile
const Key = "user_resume_preferences"

// Store persists one profile under Key. Save overwrites, Load returns nil, nil when
// nothing is stored, and Clear on an empty store is not an error.
type Store interface {
	Save(ctx context.Context, profile *types.PreferencesProfile) error
	Load(ctx context.Context) (*types.PreferencesProfile, error)
	Clear(ctx context.Context) error
}

// StorageError is returned by stores when the backend fails or holds unreadable data
type StorageError struct {
	Backend string
	Op      string
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Backend, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Backend, e.Op, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func encode(backend string, profile *types.PreferencesProfile) ([]byte, error) {
	if profile == nil {
		return nil, &StorageError{Backend: backend, Op: "save", Message: "profile is nil"}
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, &StorageError{Backend: backend, Op: "save", Message: "failed to encode profile", Cause: err}
	}
	return data, nil
}

func decode(backend string, data []byte) (*types.PreferencesProfile, error) {
	var profile types.PreferencesProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &StorageError{Backend: backend, Op: "load", Message: "stored profile is corrupt", Cause: err}
	}
	return &profile, nil
}

// MemoryStore keeps the encoded profile in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save implements Store
func (s *MemoryStore) Save(_ context.Context, profile *types.PreferencesProfile) error {
	data, err := encode("memory", profile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Load implements Store
func (s *MemoryStore) Load(_ context.Context) (*types.PreferencesProfile, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	if data == nil {
		return nil, nil
	}
	return decode("memory", data)
}

// Clear implements Store
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
