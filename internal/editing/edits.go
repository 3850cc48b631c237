package editing

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// ListName selects one of the document's entry lists
type ListName string

// Entry lists of a resume document
const (
	ListExperience ListName = "experience"
	ListEducation  ListName = "education"
	ListSkills     ListName = "skills"
)

// PersonalField selects a scalar of the personal info block
type PersonalField string

// Personal info fields
const (
	FieldFullName PersonalField = "fullName"
	FieldEmail    PersonalField = "email"
	FieldPhone    PersonalField = "phone"
	FieldLocation PersonalField = "location"
	FieldWebsite  PersonalField = "website"
	FieldLinkedIn PersonalField = "linkedin"
	FieldSummary  PersonalField = "summary"
)

// ExperienceField selects a string field of an experience entry
type ExperienceField string

// Experience entry fields
const (
	ExperienceCompany   ExperienceField = "company"
	ExperiencePosition  ExperienceField = "position"
	ExperienceStartDate ExperienceField = "startDate"
	ExperienceEndDate   ExperienceField = "endDate"
)

// EducationField selects a field of an education entry
type EducationField string

// Education entry fields
const (
	EducationInstitution EducationField = "institution"
	EducationDegree      EducationField = "degree"
	EducationStudy       EducationField = "field"
	EducationStartDate   EducationField = "startDate"
	EducationEndDate     EducationField = "endDate"
)

// SkillField selects a field of a skill
type SkillField string

// Skill fields
const (
	SkillName     SkillField = "name"
	SkillCategory SkillField = "category"
)

// Valid reports whether l names a document list
func (l ListName) Valid() bool {
	switch l {
	case ListExperience, ListEducation, ListSkills:
		return true
	}
	return false
}

// Valid reports whether f names a personal info field
func (f PersonalField) Valid() bool {
	switch f {
	case FieldFullName, FieldEmail, FieldPhone, FieldLocation, FieldWebsite, FieldLinkedIn, FieldSummary:
		return true
	}
	return false
}

// Valid reports whether f names an experience entry field
func (f ExperienceField) Valid() bool {
	switch f {
	case ExperienceCompany, ExperiencePosition, ExperienceStartDate, ExperienceEndDate:
		return true
	}
	return false
}

// Valid reports whether f names an education entry field
func (f EducationField) Valid() bool {
	switch f {
	case EducationInstitution, EducationDegree, EducationStudy, EducationStartDate, EducationEndDate:
		return true
	}
	return false
}

// Valid reports whether f names a skill field
func (f SkillField) Valid() bool {
	switch f {
	case SkillName, SkillCategory:
		return true
	}
	return false
}

// Edit is one user-level change to a document. The set of implementations is closed:
// each concrete type below is one variant of the union.
type Edit interface {
	// Kind returns the wire name of the edit variant
	Kind() string
	// Validate rejects edits whose selectors do not name a real list or field
	Validate() error
	apply(doc types.ResumeDocument, ids IDSource) types.ResumeDocument
}

// FieldEdit is the subset of edits that replace a single scalar field
type FieldEdit interface {
	Edit
	fieldEdit()
}

// SetPersonalField replaces one personal info field
type SetPersonalField struct {
	Field PersonalField
	Value string
}

// SetExperienceField replaces one string field of the identified experience entry
type SetExperienceField struct {
	ID    string
	Field ExperienceField
	Value string
}

// SetExperienceCurrent toggles the "current position" flag of an experience entry
type SetExperienceCurrent struct {
	ID      string
	Current bool
}

// SetEducationField replaces one field of the identified education entry
type SetEducationField struct {
	ID    string
	Field EducationField
	Value string
}

// SetSkillField replaces one field of the identified skill
type SetSkillField struct {
	ID    string
	Field SkillField
	Value string
}

// AddEntry appends a new default entry to a list
type AddEntry struct {
	List ListName
}

// RemoveEntry removes the identified entry from a list
type RemoveEntry struct {
	List ListName
	ID   string
}

// AddBullet appends an empty bullet to an experience entry
type AddBullet struct {
	ExperienceID string
}

// UpdateBullet replaces the bullet at Index of an experience entry
type UpdateBullet struct {
	ExperienceID string
	Index        int
	Text         string
}

// RemoveBullet deletes the bullet at Index of an experience entry
type RemoveBullet struct {
	ExperienceID string
	Index        int
}

func (SetPersonalField) Kind() string     { return "setPersonalField" }
func (SetExperienceField) Kind() string   { return "setExperienceField" }
func (SetExperienceCurrent) Kind() string { return "setExperienceCurrent" }
func (SetEducationField) Kind() string    { return "setEducationField" }
func (SetSkillField) Kind() string        { return "setSkillField" }
func (AddEntry) Kind() string             { return "addEntry" }
func (RemoveEntry) Kind() string          { return "removeEntry" }
func (AddBullet) Kind() string            { return "addBullet" }
func (UpdateBullet) Kind() string         { return "updateBullet" }
func (RemoveBullet) Kind() string         { return "removeBullet" }

func (SetPersonalField) fieldEdit()     {}
func (SetExperienceField) fieldEdit()   {}
func (SetExperienceCurrent) fieldEdit() {}
func (SetEducationField) fieldEdit()    {}
func (SetSkillField) fieldEdit()        {}

func (e SetPersonalField) Validate() error {
	if !e.Field.Valid() {
		return unknownField(string(e.Field))
	}
	return nil
}

func (e SetExperienceField) Validate() error {
	if !e.Field.Valid() {
		return unknownField(string(e.Field))
	}
	return nil
}

func (e SetExperienceCurrent) Validate() error { return nil }

func (e SetEducationField) Validate() error {
	if !e.Field.Valid() {
		return unknownField(string(e.Field))
	}
	return nil
}

func (e SetSkillField) Validate() error {
	if !e.Field.Valid() {
		return unknownField(string(e.Field))
	}
	return nil
}

func (e AddEntry) Validate() error {
	if !e.List.Valid() {
		return validation.New("list", fmt.Sprintf("unknown list %q", e.List))
	}
	return nil
}

func (e RemoveEntry) Validate() error {
	if !e.List.Valid() {
		return validation.New("list", fmt.Sprintf("unknown list %q", e.List))
	}
	return nil
}

func (e AddBullet) Validate() error    { return nil }
func (e UpdateBullet) Validate() error { return nil }
func (e RemoveBullet) Validate() error { return nil }

func unknownField(name string) error {
	return validation.New("field", fmt.Sprintf("unknown field %q", name))
}

func (e SetPersonalField) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setPersonal(doc, e.Field, e.Value)
}

func (e SetExperienceField) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setExperience(doc, e.ID, func(entry *types.ExperienceEntry) bool {
		var target *string
		switch e.Field {
		case ExperienceCompany:
			target = &entry.Company
		case ExperiencePosition:
			target = &entry.Position
		case ExperienceStartDate:
			target = &entry.StartDate
		case ExperienceEndDate:
			target = &entry.EndDate
		default:
			return false
		}
		if *target == e.Value {
			return false
		}
		*target = e.Value
		return true
	})
}

func (e SetExperienceCurrent) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setExperience(doc, e.ID, func(entry *types.ExperienceEntry) bool {
		if entry.Current == e.Current {
			return false
		}
		entry.Current = e.Current
		return true
	})
}

func (e SetEducationField) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	i := doc.FindEducation(e.ID)
	if i < 0 {
		return doc
	}
	entry := doc.Education[i]
	var target *string
	switch e.Field {
	case EducationInstitution:
		target = &entry.Institution
	case EducationDegree:
		target = &entry.Degree
	case EducationStudy:
		target = &entry.Field
	case EducationStartDate:
		target = &entry.StartDate
	case EducationEndDate:
		target = &entry.EndDate
	default:
		return doc
	}
	if *target == e.Value {
		return doc
	}
	*target = e.Value
	doc.Education = replaceAt(doc.Education, i, entry)
	return doc
}

func (e SetSkillField) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	i := doc.FindSkill(e.ID)
	if i < 0 {
		return doc
	}
	skill := doc.Skills[i]
	switch e.Field {
	case SkillName:
		if skill.Name == e.Value {
			return doc
		}
		skill.Name = e.Value
	case SkillCategory:
		if skill.Category == e.Value {
			return doc
		}
		skill.Category = e.Value
	default:
		return doc
	}
	doc.Skills = replaceAt(doc.Skills, i, skill)
	return doc
}

func (e AddEntry) apply(doc types.ResumeDocument, ids IDSource) types.ResumeDocument {
	out, _ := AddListEntry(doc, e.List, ids)
	return out
}

func (e RemoveEntry) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return RemoveListEntry(doc, e.List, e.ID)
}

func (e AddBullet) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setExperience(doc, e.ExperienceID, func(entry *types.ExperienceEntry) bool {
		entry.Description = appendCopy(entry.Description, "")
		return true
	})
}

func (e UpdateBullet) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setExperience(doc, e.ExperienceID, func(entry *types.ExperienceEntry) bool {
		if e.Index < 0 || e.Index >= len(entry.Description) {
			return false
		}
		if entry.Description[e.Index] == e.Text {
			return false
		}
		entry.Description = replaceAt(entry.Description, e.Index, e.Text)
		return true
	})
}

func (e RemoveBullet) apply(doc types.ResumeDocument, _ IDSource) types.ResumeDocument {
	return setExperience(doc, e.ExperienceID, func(entry *types.ExperienceEntry) bool {
		if e.Index < 0 || e.Index >= len(entry.Description) {
			return false
		}
		entry.Description = removeAt(entry.Description, e.Index)
		return true
	})
}
