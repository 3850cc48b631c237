package preferences

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// StepID identifies a wizard step
type StepID string

// Wizard steps in presentation order
const (
	StepPersonal        StepID = "personal"
	StepExperienceLevel StepID = "experienceLevel"
	StepIndustry        StepID = "industry"
	StepJobTitles       StepID = "jobTitles"
	StepTechStack       StepID = "techStack"
	StepSkills          StepID = "skills"
	StepLocation        StepID = "location"
)

// ListField names a multi-value profile field edited by the wizard
type ListField string

// List fields
const (
	ListJobTitles ListField = "preferredJobTitles"
	ListTechStack ListField = "techStack"
	ListSkills    ListField = "skills"
)

// Step describes one page of the wizard
type Step struct {
	ID          StepID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

var steps = []Step{
	{ID: StepPersonal, Title: "Personal Information", Description: "Let's start with your basic information", Required: true},
	{ID: StepExperienceLevel, Title: "Experience Level", Description: "What's your current experience level?", Required: true,
		Options: []string{string(types.LevelEntry), string(types.LevelMid), string(types.LevelSenior), string(types.LevelExpert)}},
	{ID: StepIndustry, Title: "Industry Focus", Description: "Which industry are you targeting?", Required: true},
	{ID: StepJobTitles, Title: "Target Job Titles", Description: "What positions are you interested in?", Required: true},
	{ID: StepTechStack, Title: "Tech Stack", Description: "Which technologies do you work with?", Required: true},
	{ID: StepSkills, Title: "Skills", Description: "What are your key skills?", Required: true},
	{ID: StepLocation, Title: "Location", Description: "Where are you located or looking to work?", Required: false},
}

// Steps returns the wizard steps in order
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Wizard collects a preferences profile one step at a time.
// A Wizard is not safe for concurrent use.
type Wizard struct {
	draft    types.PreferencesProfile
	existing *types.PreferencesProfile
	index    int
	now      func() time.Time
	newID    func() string
}

// NewWizard starts a wizard, prefilled from existing when it is non-nil
func NewWizard(existing *types.PreferencesProfile) *Wizard {
	w := &Wizard{now: time.Now, newID: uuid.NewString}
	if existing != nil {
		w.existing = existing
		w.draft = *existing
		w.draft.TechStack = slices.Clone(existing.TechStack)
		w.draft.PreferredJobTitles = slices.Clone(existing.PreferredJobTitles)
		w.draft.Skills = slices.Clone(existing.Skills)
	}
	return w
}

// Current returns the active step
func (w *Wizard) Current() Step {
	return steps[w.index]
}

// Index returns the zero-based position of the active step
func (w *Wizard) Index() int {
	return w.index
}

// IsLast reports whether the active step is the final one
func (w *Wizard) IsLast() bool {
	return w.index == len(steps)-1
}

// Draft returns a copy of the profile collected so far
func (w *Wizard) Draft() types.PreferencesProfile {
	d := w.draft
	d.TechStack = slices.Clone(w.draft.TechStack)
	d.PreferredJobTitles = slices.Clone(w.draft.PreferredJobTitles)
	d.Skills = slices.Clone(w.draft.Skills)
	return d
}

// SetPersonal replaces the contact block
func (w *Wizard) SetPersonal(contact types.ProfileContact) {
	w.draft.PersonalInfo = contact
}

// SetExperienceLevel selects one of the four levels
func (w *Wizard) SetExperienceLevel(level types.ExperienceLevel) error {
	if !level.Valid() {
		return validation.New(string(StepExperienceLevel), fmt.Sprintf("unknown experience level %q", level))
	}
	w.draft.ExperienceLevel = level
	return nil
}

// SetIndustry sets the industry focus
func (w *Wizard) SetIndustry(industry string) {
	w.draft.IndustryFocus = strings.TrimSpace(industry)
}

// SetLocation sets the location
func (w *Wizard) SetLocation(location string) {
	w.draft.Location = strings.TrimSpace(location)
}

// Add appends a trimmed value to a list field. Blank values and values already in
// the list are ignored; the return reports whether the list changed.
func (w *Wizard) Add(field ListField, value string) (bool, error) {
	list, err := w.list(field)
	if err != nil {
		return false, err
	}
	value = strings.TrimSpace(value)
	if value == "" || slices.Contains(*list, value) {
		return false, nil
	}
	*list = append(*list, value)
	return true, nil
}

// Remove deletes every occurrence of value from a list field
func (w *Wizard) Remove(field ListField, value string) error {
	list, err := w.list(field)
	if err != nil {
		return err
	}
	*list = slices.DeleteFunc(*list, func(v string) bool { return v == value })
	return nil
}

func (w *Wizard) list(field ListField) (*[]string, error) {
	switch field {
	case ListJobTitles:
		return &w.draft.PreferredJobTitles, nil
	case ListTechStack:
		return &w.draft.TechStack, nil
	case ListSkills:
		return &w.draft.Skills, nil
	}
	return nil, validation.New("list", fmt.Sprintf("unknown list %q", field))
}

// Next advances past the active step. It fails with a validation error while a
// required step is incomplete, and reports done once the last step is passed.
func (w *Wizard) Next() (done bool, err error) {
	if err := checkStep(steps[w.index], &w.draft); err != nil {
		return false, err
	}
	if w.IsLast() {
		return true, nil
	}
	w.index++
	return false, nil
}

// Back returns to the previous step; it reports false on the first step
func (w *Wizard) Back() bool {
	if w.index == 0 {
		return false
	}
	w.index--
	return true
}

// Complete validates every step and returns the finished profile. The id and
// creation time of the prefilled profile are kept.
func (w *Wizard) Complete() (*types.PreferencesProfile, error) {
	profile := w.Draft()
	if err := ValidateProfile(&profile); err != nil {
		return nil, err
	}

	now := w.now().UTC()
	profile.ID = ""
	profile.CreatedAt = now
	if w.existing != nil {
		profile.ID = w.existing.ID
		if !w.existing.CreatedAt.IsZero() {
			profile.CreatedAt = w.existing.CreatedAt
		}
	}
	if profile.ID == "" {
		profile.ID = w.newID()
	}
	profile.UpdatedAt = now
	return &profile, nil
}

// ValidateProfile checks a profile against every required wizard step
func ValidateProfile(profile *types.PreferencesProfile) error {
	for _, step := range steps {
		if err := checkStep(step, profile); err != nil {
			return err
		}
	}
	if err := profile.Validate(); err != nil {
		return validation.FromValidator(err)
	}
	return nil
}

func checkStep(step Step, p *types.PreferencesProfile) error {
	if !step.Required {
		return nil
	}
	var missing bool
	switch step.ID {
	case StepPersonal:
		missing = strings.TrimSpace(p.PersonalInfo.FullName) == ""
	case StepExperienceLevel:
		if p.ExperienceLevel != "" && !p.ExperienceLevel.Valid() {
			return validation.New(string(step.ID), fmt.Sprintf("unknown experience level %q", p.ExperienceLevel))
		}
		missing = p.ExperienceLevel == ""
	case StepIndustry:
		missing = strings.TrimSpace(p.IndustryFocus) == ""
	case StepJobTitles:
		missing = len(p.PreferredJobTitles) == 0
	case StepTechStack:
		missing = len(p.TechStack) == 0
	case StepSkills:
		missing = len(p.Skills) == 0
	}
	if missing {
		return validation.New(string(step.ID), step.Title+" is required")
	}
	return nil
}
