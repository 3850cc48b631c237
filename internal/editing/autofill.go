package editing

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// AutofillSkillCategory is the category given to skills copied from a profile
const AutofillSkillCategory = "Technical"

// MergeAutofill seeds a document from a preferences profile.
//
// Personal info fields are overwritten only where the profile holds a non-empty value;
// the summary is never touched. Profile skills are appended after the existing skills
// with fresh ids and are not deduplicated, so merging twice adds them twice.
// The profile is only read.
func MergeAutofill(doc types.ResumeDocument, profile *types.PreferencesProfile, ids IDSource) types.ResumeDocument {
	if profile == nil {
		return doc
	}

	info := doc.PersonalInfo
	info.FullName = preferNonEmpty(profile.PersonalInfo.FullName, info.FullName)
	info.Email = preferNonEmpty(profile.PersonalInfo.Email, info.Email)
	info.Phone = preferNonEmpty(profile.PersonalInfo.Phone, info.Phone)
	info.Location = preferNonEmpty(profile.Location, info.Location)
	info.Website = preferNonEmpty(profile.PersonalInfo.Website, info.Website)
	info.LinkedIn = preferNonEmpty(profile.PersonalInfo.LinkedIn, info.LinkedIn)
	doc.PersonalInfo = info

	return AppendSkills(doc, profile.Skills, AutofillSkillCategory, ids)
}

func preferNonEmpty(candidate, current string) string {
	if candidate != "" {
		return candidate
	}
	return current
}
