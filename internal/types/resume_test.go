package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeDocument_SerializesEmptyLists(t *testing.T) {
	data, err := json.Marshal(NewResumeDocument())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"experience":[]`)
	assert.Contains(t, string(data), `"education":[]`)
	assert.Contains(t, string(data), `"skills":[]`)
}

func TestNormalize_FillsNilLists(t *testing.T) {
	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(`{"personalInfo":{"fullName":"Jane"},"experience":[{"id":"e1"}]}`), &doc))

	out := doc.Normalize()
	assert.Equal(t, []string{}, out.Experience[0].Description)
	assert.Equal(t, []EducationEntry{}, out.Education)
	assert.Equal(t, []Skill{}, out.Skills)
	assert.Nil(t, doc.Experience[0].Description, "input is not modified")
}

func TestNormalize_KeepsPopulatedListsShared(t *testing.T) {
	doc := ResumeDocument{
		Experience: []ExperienceEntry{{ID: "e1", Description: []string{"a"}}},
		Education:  []EducationEntry{{ID: "d1"}},
		Skills:     []Skill{{ID: "s1", Name: "Go"}},
	}
	out := doc.Normalize()
	assert.Same(t, &doc.Experience[0], &out.Experience[0])
	assert.Same(t, &doc.Skills[0], &out.Skills[0])
}

func TestFind(t *testing.T) {
	doc := ResumeDocument{
		Experience: []ExperienceEntry{{ID: "e1"}, {ID: "e2"}},
		Education:  []EducationEntry{{ID: "d1"}},
		Skills:     []Skill{{ID: "s1", Name: "Go"}, {ID: "s2", Name: "SQL"}},
	}
	assert.Equal(t, 1, doc.FindExperience("e2"))
	assert.Equal(t, -1, doc.FindExperience("missing"))
	assert.Equal(t, 0, doc.FindEducation("d1"))
	assert.Equal(t, -1, doc.FindEducation(""))
	assert.Equal(t, 1, doc.FindSkill("s2"))
	assert.Equal(t, []string{"Go", "SQL"}, doc.SkillNames())
}

func TestPersonalInfo_OmitsEmptyLinks(t *testing.T) {
	data, err := json.Marshal(PersonalInfo{FullName: "Jane"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "website")
	assert.NotContains(t, string(data), "linkedin")
	assert.Contains(t, string(data), `"summary":""`)
}

func TestDuplicateID(t *testing.T) {
	doc := NewResumeDocument()
	_, _, ok := doc.DuplicateID()
	assert.False(t, ok)

	doc.Experience = []ExperienceEntry{{ID: "e1"}, {ID: "e2"}}
	doc.Education = []EducationEntry{{ID: "e1"}}
	_, _, ok = doc.DuplicateID()
	assert.False(t, ok, "ids only need to be unique within one list")

	doc.Skills = []Skill{{ID: "x", Name: "Go"}, {ID: "y"}, {ID: "x", Name: "Rust"}}
	list, id, ok := doc.DuplicateID()
	require.True(t, ok)
	assert.Equal(t, "skills", list)
	assert.Equal(t, "x", id)

	doc.Education = append(doc.Education, EducationEntry{ID: "e1"})
	list, _, ok = doc.DuplicateID()
	require.True(t, ok)
	assert.Equal(t, "education", list)
}
