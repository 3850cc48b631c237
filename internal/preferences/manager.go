package preferences

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// Manager applies the profile persistence policy on top of a Store: storage failures
// are logged as warnings and never returned to the caller.
type Manager struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// NewManager creates a Manager. A nil logger discards warnings.
func NewManager(store Store, log *logger.Logger) *Manager {
	return &Manager{
		store: store,
		log:   logger.OrNop(log),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Save stamps and persists the profile. It returns the stamped copy and whether the
// store accepted it. Only an invalid profile produces an error.
func (m *Manager) Save(ctx context.Context, profile types.PreferencesProfile) (*types.PreferencesProfile, bool, error) {
	if err := profile.Validate(); err != nil {
		return nil, false, validation.FromValidator(err)
	}

	now := m.now().UTC()
	if profile.ID == "" {
		profile.ID = m.newID()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := m.store.Save(ctx, &profile); err != nil {
		m.log.Warn("failed to save preferences", "error", err)
		return &profile, false, nil
	}
	return &profile, true, nil
}

// Load returns the stored profile, or nil when none is stored or the store fails
func (m *Manager) Load(ctx context.Context) *types.PreferencesProfile {
	profile, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn("failed to load preferences", "error", err)
		return nil
	}
	return profile
}

// Has reports whether a profile can be loaded
func (m *Manager) Has(ctx context.Context) bool {
	return m.Load(ctx) != nil
}

// Clear removes the stored profile and reports whether the store accepted it
func (m *Manager) Clear(ctx context.Context) bool {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn("failed to clear preferences", "error", err)
		return false
	}
	return true
}
