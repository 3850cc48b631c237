package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ExperienceLevel is the self-reported seniority of a user
type ExperienceLevel string

// Experience levels offered by the preferences wizard
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelExpert ExperienceLevel = "expert"
)

// ExperienceLevels lists the valid levels in wizard order
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExpert}
}

// Valid reports whether the level is one of the known values
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExpert:
		return true
	}
	return false
}

// ProfileContact is the optional contact block saved with a preferences profile
type ProfileContact struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// PreferencesProfile is the durable user profile used to seed new resumes.
// At most one profile exists per store.
type PreferencesProfile struct {
	ID                 string          `json:"id"`
	TechStack          []string        `json:"techStack"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior expert"`
	IndustryFocus      string          `json:"industryFocus"`
	PreferredJobTitles []string        `json:"preferredJobTitles"`
	Skills             []string        `json:"skills"`
	Location           string          `json:"location"`
	PersonalInfo       ProfileContact  `json:"personalInfo"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Validate validates the PreferencesProfile using the validator.
func (p *PreferencesProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
