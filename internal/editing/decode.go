package editing

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/validation"
)

// EditRequest is the wire form of an edit as posted by the editor
type EditRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=setPersonalField setExperienceField setExperienceCurrent setEducationField setSkillField addEntry removeEntry addBullet updateBullet removeBullet"`
	List    string `json:"list,omitempty"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Current bool   `json:"current,omitempty"`
	Index   int    `json:"index,omitempty"`
}

// DecodeEdit parses an edit from JSON. Unknown kinds, lists and fields are rejected
// with a validation error; missing entry ids are left for Apply to treat as a no-op.
func DecodeEdit(data []byte) (Edit, error) {
	var req EditRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &validation.Error{Message: "malformed edit JSON", Cause: err}
	}
	return req.ToEdit()
}

// ToEdit converts the wire form into its union variant
func (r EditRequest) ToEdit() (Edit, error) {
	if err := validator.New().Struct(r); err != nil {
		return nil, validation.FromValidator(err)
	}

	var edit Edit
	switch r.Kind {
	case "setPersonalField":
		edit = SetPersonalField{Field: PersonalField(r.Field), Value: r.Value}
	case "setExperienceField":
		edit = SetExperienceField{ID: r.ID, Field: ExperienceField(r.Field), Value: r.Value}
	case "setExperienceCurrent":
		edit = SetExperienceCurrent{ID: r.ID, Current: r.Current}
	case "setEducationField":
		edit = SetEducationField{ID: r.ID, Field: EducationField(r.Field), Value: r.Value}
	case "setSkillField":
		edit = SetSkillField{ID: r.ID, Field: SkillField(r.Field), Value: r.Value}
	case "addEntry":
		edit = AddEntry{List: ListName(r.List)}
	case "removeEntry":
		edit = RemoveEntry{List: ListName(r.List), ID: r.ID}
	case "addBullet":
		edit = AddBullet{ExperienceID: r.ID}
	case "updateBullet":
		edit = UpdateBullet{ExperienceID: r.ID, Index: r.Index, Text: r.Value}
	case "removeBullet":
		edit = RemoveBullet{ExperienceID: r.ID, Index: r.Index}
	default:
		return nil, validation.New("kind", fmt.Sprintf("unknown edit kind %q", r.Kind))
	}

	if err := edit.Validate(); err != nil {
		return nil, err
	}
	return edit, nil
}
