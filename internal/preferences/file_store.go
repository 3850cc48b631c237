package preferences

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/types"
)

// FileStore keeps the profile as <dir>/user_resume_preferences.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir; the directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the profile file location
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, Key+".json")
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, profile *types.PreferencesProfile) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Backend: "file", Op: "save", Message: "cancelled", Cause: err}
	}
	data, err := encode("file", profile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Backend: "file", Op: "save", Message: "failed to create directory", Cause: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+Key+"-*.json")
	if err != nil {
		return &StorageError{Backend: "file", Op: "save", Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageError{Backend: "file", Op: "save", Message: "failed to write profile", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Backend: "file", Op: "save", Message: "failed to write profile", Cause: err}
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return &StorageError{Backend: "file", Op: "save", Message: "failed to replace profile", Cause: err}
	}
	return nil
}

// Load implements Store
func (s *FileStore) Load(ctx context.Context) (*types.PreferencesProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Backend: "file", Op: "load", Message: "cancelled", Cause: err}
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &StorageError{Backend: "file", Op: "load", Message: "failed to read profile", Cause: err}
	}
	return decode("file", data)
}

// Clear implements Store
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Backend: "file", Op: "clear", Message: "cancelled", Cause: err}
	}
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Backend: "file", Op: "clear", Message: "failed to remove profile", Cause: err}
	}
	return nil
}
