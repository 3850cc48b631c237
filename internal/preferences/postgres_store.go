package preferences

import (
	"context"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// PostgresStore keeps the profile as a JSONB row of the preferences table.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore creates the table if needed and returns the store
func NewPostgresStore(ctx context.Context, database *db.DB) (*PostgresStore, error) {
	if err := database.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{db: database}, nil
}

// Save implements Store
func (s *PostgresStore) Save(ctx context.Context, profile *types.PreferencesProfile) error {
	data, err := encode("postgres", profile)
	if err != nil {
		return err
	}
	if err := s.db.PutRecord(ctx, Key, data); err != nil {
		return &StorageError{Backend: "postgres", Op: "save", Message: "upsert failed", Cause: err}
	}
	return nil
}

// Load implements Store
func (s *PostgresStore) Load(ctx context.Context) (*types.PreferencesProfile, error) {
	rec, err := s.db.GetRecord(ctx, Key)
	if err != nil {
		return nil, &StorageError{Backend: "postgres", Op: "load", Message: "select failed", Cause: err}
	}
	if rec == nil {
		return nil, nil
	}
	return decode("postgres", rec.Value)
}

// Clear implements Store
func (s *PostgresStore) Clear(ctx context.Context) error {
	if err := s.db.DeleteRecord(ctx, Key); err != nil {
		return &StorageError{Backend: "postgres", Op: "clear", Message: "delete failed", Cause: err}
	}
	return nil
}
