// Package types provides type definitions for structured data used throughout the resume builder.
package types

// PersonalInfo holds the contact block and professional summary of a resume
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Summary  string `json:"summary"`
}

// ExperienceEntry is one position held. Description holds the bullet points in display order.
type ExperienceEntry struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

// EducationEntry is one degree or course of study
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Skill is a single named skill with a free-form category
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ResumeDocument is the root aggregate edited by a session.
// Values are treated as immutable: edits build a new document and share unchanged lists.
type ResumeDocument struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []Skill           `json:"skills"`
}

// NewResumeDocument returns an empty document whose lists serialize as [] rather than null.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []Skill{},
	}
}

// Normalize replaces nil lists (including nil bullet lists) with empty ones.
// Documents decoded from JSON may omit lists entirely.
func (d ResumeDocument) Normalize() ResumeDocument {
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if hasNilBullets(d.Experience) {
		exp := make([]ExperienceEntry, len(d.Experience))
		copy(exp, d.Experience)
		for i := range exp {
			if exp[i].Description == nil {
				exp[i].Description = []string{}
			}
		}
		d.Experience = exp
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	return d
}

func hasNilBullets(entries []ExperienceEntry) bool {
	for _, e := range entries {
		if e.Description == nil {
			return true
		}
	}
	return false
}

// FindExperience returns the index of the experience entry with the given id, or -1.
func (d ResumeDocument) FindExperience(id string) int {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			return i
		}
	}
	return -1
}

// FindEducation returns the index of the education entry with the given id, or -1.
func (d ResumeDocument) FindEducation(id string) int {
	for i := range d.Education {
		if d.Education[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSkill returns the index of the skill with the given id, or -1.
func (d ResumeDocument) FindSkill(id string) int {
	for i := range d.Skills {
		if d.Skills[i].ID == id {
			return i
		}
	}
	return -1
}

// SkillNames returns the skill names in document order
func (d ResumeDocument) SkillNames() []string {
	names := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		names = append(names, s.Name)
	}
	return names
}

// DuplicateID reports the first id that appears twice within one list, along with the
// list's JSON name. ok is false when every list has unique ids.
func (d ResumeDocument) DuplicateID() (list, id string, ok bool) {
	if id, ok := firstDuplicate(d.Experience, func(e ExperienceEntry) string { return e.ID }); ok {
		return "experience", id, true
	}
	if id, ok := firstDuplicate(d.Education, func(e EducationEntry) string { return e.ID }); ok {
		return "education", id, true
	}
	if id, ok := firstDuplicate(d.Skills, func(s Skill) string { return s.ID }); ok {
		return "skills", id, true
	}
	return "", "", false
}

func firstDuplicate[T any](items []T, idOf func(T) string) (string, bool) {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := idOf(item)
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return "", false
}
