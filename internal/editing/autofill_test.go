package editing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *types.PreferencesProfile {
	return &types.PreferencesProfile{
		ID:       "pref-1",
		Skills:   []string{"Go", "PostgreSQL"},
		Location: "Berlin",
		PersonalInfo: types.ProfileContact{
			FullName: "Jane Q Doe",
			Phone:    "+49 30 1234",
			LinkedIn: "linkedin.com/in/janedoe",
		},
	}
}

func TestMergeAutofill_OverwritesOnlyPresentValues(t *testing.T) {
	doc := sampleDocument()
	doc.PersonalInfo.Summary = "Hand-written summary"
	doc.PersonalInfo.Website = "janedoe.dev"

	out := MergeAutofill(doc, sampleProfile(), &SequenceSource{Prefix: "pref"})

	assert.Equal(t, "Jane Q Doe", out.PersonalInfo.FullName)
	assert.Equal(t, "jane@example.com", out.PersonalInfo.Email, "empty profile email keeps document value")
	assert.Equal(t, "+49 30 1234", out.PersonalInfo.Phone)
	assert.Equal(t, "Berlin", out.PersonalInfo.Location)
	assert.Equal(t, "janedoe.dev", out.PersonalInfo.Website)
	assert.Equal(t, "linkedin.com/in/janedoe", out.PersonalInfo.LinkedIn)
	assert.Equal(t, "Hand-written summary", out.PersonalInfo.Summary)

	require.Len(t, out.Skills, 3)
	assert.Equal(t, types.Skill{ID: "pref-1", Name: "Go", Category: AutofillSkillCategory}, out.Skills[1])
	assert.Equal(t, types.Skill{ID: "pref-2", Name: "PostgreSQL", Category: AutofillSkillCategory}, out.Skills[2])

	assert.Equal(t, "Jane Doe", doc.PersonalInfo.FullName, "input document is untouched")
	assert.Len(t, doc.Skills, 1)
}

func TestMergeAutofill_PersonalInfoIdempotentSkillsNot(t *testing.T) {
	profile := sampleProfile()
	ids := &SequenceSource{}

	once := MergeAutofill(sampleDocument(), profile, ids)
	twice := MergeAutofill(once, profile, ids)

	assert.Equal(t, once.PersonalInfo, twice.PersonalInfo)
	// Skills are appended on every merge; duplicates are accepted.
	assert.Len(t, once.Skills, 3)
	assert.Len(t, twice.Skills, 5)
	assert.Equal(t, []string{"Go", "Go", "PostgreSQL", "Go", "PostgreSQL"}, twice.SkillNames())
	assert.NotEqual(t, twice.Skills[1].ID, twice.Skills[3].ID)
}

func TestMergeAutofill_DoesNotMutateProfile(t *testing.T) {
	profile := sampleProfile()
	snapshot := *profile
	snapshot.Skills = append([]string(nil), profile.Skills...)

	_ = MergeAutofill(sampleDocument(), profile, nil)
	assert.Equal(t, snapshot, *profile)
}

func TestMergeAutofill_NilProfile(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, doc, MergeAutofill(doc, nil, nil))
}
