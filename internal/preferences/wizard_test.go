package preferences

import (
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, field, ve.Field)
}

func TestSteps_Order(t *testing.T) {
	ids := []StepID{}
	optional := []StepID{}
	for _, s := range Steps() {
		ids = append(ids, s.ID)
		if !s.Required {
			optional = append(optional, s.ID)
		}
	}
	assert.Equal(t, []StepID{StepPersonal, StepExperienceLevel, StepIndustry, StepJobTitles, StepTechStack, StepSkills, StepLocation}, ids)
	assert.Equal(t, []StepID{StepLocation}, optional)
	assert.Equal(t, []string{"entry", "mid", "senior", "expert"}, Steps()[1].Options)
}

func TestWizard_FullWalkthrough(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	w := NewWizard(nil)
	w.now = func() time.Time { return fixed }
	w.newID = func() string { return "new-id" }

	_, err := w.Next()
	requireValidationField(t, err, "personal")
	assert.Equal(t, StepPersonal, w.Current().ID)

	w.SetPersonal(types.ProfileContact{FullName: "Ana Silva", Email: "ana@example.com"})
	done, err := w.Next()
	require.NoError(t, err)
	assert.False(t, done)

	_, err = w.Next()
	requireValidationField(t, err, "experienceLevel")
	require.NoError(t, w.SetExperienceLevel(types.LevelMid))
	_, err = w.Next()
	require.NoError(t, err)

	w.SetIndustry("  Healthcare ")
	_, err = w.Next()
	require.NoError(t, err)

	_, err = w.Next()
	requireValidationField(t, err, "jobTitles")
	_, err = w.Add(ListJobTitles, "Data Engineer")
	require.NoError(t, err)
	_, err = w.Next()
	require.NoError(t, err)

	_, err = w.Add(ListTechStack, "Python")
	require.NoError(t, err)
	_, err = w.Next()
	require.NoError(t, err)

	_, err = w.Add(ListSkills, "SQL")
	require.NoError(t, err)
	_, err = w.Next()
	require.NoError(t, err)

	assert.Equal(t, StepLocation, w.Current().ID)
	assert.True(t, w.IsLast())
	done, err = w.Next()
	require.NoError(t, err, "location is optional")
	assert.True(t, done)
	assert.Equal(t, 6, w.Index(), "last step does not advance")

	profile, err := w.Complete()
	require.NoError(t, err)
	assert.Equal(t, "new-id", profile.ID)
	assert.Equal(t, "Healthcare", profile.IndustryFocus)
	assert.Equal(t, types.LevelMid, profile.ExperienceLevel)
	assert.Equal(t, fixed, profile.CreatedAt)
	assert.Equal(t, fixed, profile.UpdatedAt)
}

func TestWizard_Back(t *testing.T) {
	w := NewWizard(sampleProfile())
	assert.False(t, w.Back())

	_, err := w.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, w.Index())
	assert.True(t, w.Back())
	assert.Equal(t, StepPersonal, w.Current().ID)
}

func TestWizard_AddRemove(t *testing.T) {
	w := NewWizard(nil)

	added, err := w.Add(ListSkills, "  Go ")
	require.NoError(t, err)
	assert.True(t, added)

	added, _ = w.Add(ListSkills, "Go")
	assert.False(t, added, "duplicates ignored")
	added, _ = w.Add(ListSkills, "   ")
	assert.False(t, added, "blank ignored")

	_, _ = w.Add(ListSkills, "Rust")
	assert.Equal(t, []string{"Go", "Rust"}, w.Draft().Skills)

	require.NoError(t, w.Remove(ListSkills, "Go"))
	assert.Equal(t, []string{"Rust"}, w.Draft().Skills)
	require.NoError(t, w.Remove(ListSkills, "absent"))

	_, err = w.Add("hobbies", "chess")
	assert.True(t, validation.IsValidation(err))
	assert.True(t, validation.IsValidation(w.Remove("hobbies", "chess")))
}

func TestWizard_SetExperienceLevelRejectsUnknown(t *testing.T) {
	w := NewWizard(nil)
	err := w.SetExperienceLevel("principal")
	requireValidationField(t, err, "experienceLevel")
	assert.Empty(t, w.Draft().ExperienceLevel)
}

func TestWizard_PrefillKeepsIdentity(t *testing.T) {
	existing := sampleProfile()
	w := NewWizard(existing)
	later := existing.CreatedAt.Add(48 * time.Hour)
	w.now = func() time.Time { return later }

	_, _ = w.Add(ListSkills, "Kafka")
	assert.Equal(t, []string{"APIs"}, existing.Skills, "existing profile is not mutated")

	profile, err := w.Complete()
	require.NoError(t, err)
	assert.Equal(t, existing.ID, profile.ID)
	assert.Equal(t, existing.CreatedAt, profile.CreatedAt)
	assert.Equal(t, later, profile.UpdatedAt)
	assert.Equal(t, []string{"APIs", "Kafka"}, profile.Skills)
}

func TestWizard_CompleteReportsFirstMissingStep(t *testing.T) {
	w := NewWizard(nil)
	w.SetPersonal(types.ProfileContact{FullName: "Ana"})
	_, err := w.Complete()
	requireValidationField(t, err, "experienceLevel")
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile(sampleProfile()))

	noLocation := sampleProfile()
	noLocation.Location = ""
	assert.NoError(t, ValidateProfile(noLocation))

	badEmail := sampleProfile()
	badEmail.PersonalInfo.Email = "not-an-email"
	assert.True(t, validation.IsValidation(ValidateProfile(badEmail)))

	badLevel := sampleProfile()
	badLevel.ExperienceLevel = "guru"
	requireValidationField(t, ValidateProfile(badLevel), "experienceLevel")

	noSkills := sampleProfile()
	noSkills.Skills = nil
	requireValidationField(t, ValidateProfile(noSkills), "skills")
}
