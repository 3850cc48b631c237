package editing

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Apply validates an edit and applies it, returning the new document.
// The input document is never modified. Edits that address a missing entry id or an
// out-of-range bullet index return the input unchanged.
func Apply(doc types.ResumeDocument, edit Edit, ids IDSource) (types.ResumeDocument, error) {
	if err := edit.Validate(); err != nil {
		return doc, err
	}
	if ids == nil {
		ids = UUIDSource{}
	}
	return edit.apply(doc, ids), nil
}

// UpdateField replaces a single scalar field. Unknown entry ids are a no-op.
func UpdateField(doc types.ResumeDocument, edit FieldEdit) types.ResumeDocument {
	if edit.Validate() != nil {
		return doc
	}
	return edit.apply(doc, nil)
}

// AddListEntry appends a default entry to the named list and returns its id.
// Experience entries start with one empty bullet.
func AddListEntry(doc types.ResumeDocument, list ListName, ids IDSource) (types.ResumeDocument, string) {
	if ids == nil {
		ids = UUIDSource{}
	}
	switch list {
	case ListExperience:
		id := ids.NewID()
		doc.Experience = appendCopy(doc.Experience, types.ExperienceEntry{
			ID:          id,
			Description: []string{""},
		})
		return doc, id
	case ListEducation:
		id := ids.NewID()
		doc.Education = appendCopy(doc.Education, types.EducationEntry{ID: id})
		return doc, id
	case ListSkills:
		id := ids.NewID()
		doc.Skills = appendCopy(doc.Skills, types.Skill{ID: id})
		return doc, id
	}
	return doc, ""
}

// RemoveListEntry removes the entry with the given id; absent ids are a no-op.
func RemoveListEntry(doc types.ResumeDocument, list ListName, id string) types.ResumeDocument {
	switch list {
	case ListExperience:
		if i := doc.FindExperience(id); i >= 0 {
			doc.Experience = removeAt(doc.Experience, i)
		}
	case ListEducation:
		if i := doc.FindEducation(id); i >= 0 {
			doc.Education = removeAt(doc.Education, i)
		}
	case ListSkills:
		if i := doc.FindSkill(id); i >= 0 {
			doc.Skills = removeAt(doc.Skills, i)
		}
	}
	return doc
}

// AppendBullet adds an empty bullet at the end of an experience entry
func AppendBullet(doc types.ResumeDocument, experienceID string) types.ResumeDocument {
	return AddBullet{ExperienceID: experienceID}.apply(doc, nil)
}

// SetBullet replaces the bullet at index; an out-of-range index is a no-op.
func SetBullet(doc types.ResumeDocument, experienceID string, index int, text string) types.ResumeDocument {
	return UpdateBullet{ExperienceID: experienceID, Index: index, Text: text}.apply(doc, nil)
}

// AppendSkills appends one skill per name with fresh ids. Names are not deduplicated
// against the existing list.
func AppendSkills(doc types.ResumeDocument, names []string, category string, ids IDSource) types.ResumeDocument {
	if len(names) == 0 {
		return doc
	}
	if ids == nil {
		ids = UUIDSource{}
	}
	skills := make([]types.Skill, len(doc.Skills), len(doc.Skills)+len(names))
	copy(skills, doc.Skills)
	for _, name := range names {
		skills = append(skills, types.Skill{ID: ids.NewID(), Name: name, Category: category})
	}
	doc.Skills = skills
	return doc
}

func setPersonal(doc types.ResumeDocument, field PersonalField, value string) types.ResumeDocument {
	info := doc.PersonalInfo
	var target *string
	switch field {
	case FieldFullName:
		target = &info.FullName
	case FieldEmail:
		target = &info.Email
	case FieldPhone:
		target = &info.Phone
	case FieldLocation:
		target = &info.Location
	case FieldWebsite:
		target = &info.Website
	case FieldLinkedIn:
		target = &info.LinkedIn
	case FieldSummary:
		target = &info.Summary
	default:
		return doc
	}
	*target = value
	doc.PersonalInfo = info
	return doc
}

// setExperience runs change on a copy of the identified entry and swaps it in when
// change reports a modification.
func setExperience(doc types.ResumeDocument, id string, change func(*types.ExperienceEntry) bool) types.ResumeDocument {
	i := doc.FindExperience(id)
	if i < 0 {
		return doc
	}
	entry := doc.Experience[i]
	if !change(&entry) {
		return doc
	}
	doc.Experience = replaceAt(doc.Experience, i, entry)
	return doc
}

func replaceAt[T any](list []T, i int, v T) []T {
	out := make([]T, len(list))
	copy(out, list)
	out[i] = v
	return out
}

func appendCopy[T any](list []T, v T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
