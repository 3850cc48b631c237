package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Page geometry: one US letter page at 96 CSS px per inch.
const (
	PageWidthPx  = 816
	PageHeightPx = 1056
)

// PresentLabel replaces the end date of a current position
const PresentLabel = "Present"

// SectionKind identifies a resume section
type SectionKind string

// Sections, in display order
const (
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

// Align is the horizontal alignment of the header block
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Style carries the typography of a variant. It never affects which data is shown.
type Style struct {
	Serif       bool    `json:"serif"`
	HeaderAlign Align   `json:"headerAlign"`
	Accent      string  `json:"accent"`
	Text        string  `json:"text"`
	Muted       string  `json:"muted"`
	NameSize    float64 `json:"nameSize"`
	HeadingSize float64 `json:"headingSize"`
	BodySize    float64 `json:"bodySize"`
	SmallSize   float64 `json:"smallSize"`
	Padding     float64 `json:"padding"`
	HeadingRule bool    `json:"headingRule"`
}

// Layout is the rendered tree of one document in one template
type Layout struct {
	Variant  Variant   `json:"variant"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Style    Style     `json:"style"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Header is the name block with contact details grouped into display rows
type Header struct {
	Name             string     `json:"name"`
	ContactRows      [][]string `json:"contactRows"`
	ContactSeparator string     `json:"contactSeparator"`
}

// Section is one visible resume section. Title may be empty when the variant shows none.
type Section struct {
	Kind           SectionKind `json:"kind"`
	Title          string      `json:"title"`
	Paragraph      string      `json:"paragraph,omitempty"`
	Entries        []Entry     `json:"entries,omitempty"`
	Skills         []string    `json:"skills,omitempty"`
	SkillSeparator string      `json:"skillSeparator,omitempty"`
}

// Entry is one experience or education item
type Entry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Dates    string   `json:"dates"`
	Bullets  []string `json:"bullets,omitempty"`
}

// Section returns the section of the given kind, if visible.
func (l Layout) Section(kind SectionKind) (Section, bool) {
	for _, s := range l.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

type variantSpec struct {
	style          Style
	titles         map[SectionKind]string
	contactRows    func(types.PersonalInfo) [][]string
	contactSep     string
	skillSeparator string
}

var specs = map[Variant]variantSpec{
	VariantModern: {
		style: Style{
			HeaderAlign: AlignLeft, Accent: "#b45309", Text: "#1f2937", Muted: "#4b5563",
			NameSize: 30, HeadingSize: 18, BodySize: 14, SmallSize: 12, Padding: 32, HeadingRule: false,
		},
		titles: map[SectionKind]string{
			SectionSummary:    "Professional Summary",
			SectionExperience: "Experience",
			SectionEducation:  "Education",
			SectionSkills:     "Skills",
		},
		contactRows: func(p types.PersonalInfo) [][]string {
			return [][]string{{p.Email, p.Phone, p.Location, p.Website, p.LinkedIn}}
		},
		contactSep: "   ",
	},
	VariantClassic: {
		style: Style{
			Serif: true, HeaderAlign: AlignCenter, Accent: "#111827", Text: "#1f2937", Muted: "#4b5563",
			NameSize: 30, HeadingSize: 18, BodySize: 14, SmallSize: 12, Padding: 32, HeadingRule: true,
		},
		titles: map[SectionKind]string{
			SectionSummary:    "OBJECTIVE",
			SectionExperience: "EXPERIENCE",
			SectionEducation:  "EDUCATION",
			SectionSkills:     "SKILLS",
		},
		contactRows: func(p types.PersonalInfo) [][]string {
			return [][]string{{p.Email, p.Phone}, {p.Location}, {p.Website, p.LinkedIn}}
		},
		contactSep:     " | ",
		skillSeparator: " • ",
	},
	VariantMinimal: {
		style: Style{
			HeaderAlign: AlignLeft, Accent: "#6b7280", Text: "#1f2937", Muted: "#4b5563",
			NameSize: 24, HeadingSize: 14, BodySize: 14, SmallSize: 12, Padding: 32, HeadingRule: false,
		},
		titles: map[SectionKind]string{
			SectionSummary:    "",
			SectionExperience: "Experience",
			SectionEducation:  "Education",
			SectionSkills:     "Skills",
		},
		contactRows: func(p types.PersonalInfo) [][]string {
			return [][]string{{p.Email}, {p.Phone}, {p.Location}, {p.Website}, {p.LinkedIn}}
		},
		skillSeparator: ", ",
	},
}

// Render builds the layout of doc in the given template. It is pure: the same document and
// variant always produce the same layout. Unknown variants render as DefaultVariant.
//
// Sections always appear in the order Summary, Experience, Education, Skills; a section is
// omitted when it has nothing to show. Entries and bullets keep their stored order, and blank
// bullets are kept.
func Render(doc types.ResumeDocument, variant Variant) Layout {
	if !variant.Known() {
		variant = DefaultVariant
	}
	spec := specs[variant]
	info := doc.PersonalInfo

	layout := Layout{
		Variant: variant,
		Width:   PageWidthPx,
		Height:  PageHeightPx,
		Style:   spec.style,
		Header: Header{
			Name:             info.FullName,
			ContactRows:      compactRows(spec.contactRows(info)),
			ContactSeparator: spec.contactSep,
		},
		Sections: []Section{},
	}

	if info.Summary != "" {
		layout.Sections = append(layout.Sections, Section{
			Kind:      SectionSummary,
			Title:     spec.titles[SectionSummary],
			Paragraph: info.Summary,
		})
	}

	if len(doc.Experience) > 0 {
		entries := make([]Entry, 0, len(doc.Experience))
		for _, exp := range doc.Experience {
			entries = append(entries, Entry{
				ID:       exp.ID,
				Title:    exp.Position,
				Subtitle: exp.Company,
				Dates:    dateRange(exp.StartDate, exp.EndDate, exp.Current),
				Bullets:  append([]string(nil), exp.Description...),
			})
		}
		layout.Sections = append(layout.Sections, Section{
			Kind:    SectionExperience,
			Title:   spec.titles[SectionExperience],
			Entries: entries,
		})
	}

	if len(doc.Education) > 0 {
		entries := make([]Entry, 0, len(doc.Education))
		for _, edu := range doc.Education {
			entries = append(entries, Entry{
				ID:       edu.ID,
				Title:    degreeLine(edu.Degree, edu.Field),
				Subtitle: edu.Institution,
				Dates:    edu.EndDate,
			})
		}
		layout.Sections = append(layout.Sections, Section{
			Kind:    SectionEducation,
			Title:   spec.titles[SectionEducation],
			Entries: entries,
		})
	}

	if len(doc.Skills) > 0 {
		layout.Sections = append(layout.Sections, Section{
			Kind:           SectionSkills,
			Title:          spec.titles[SectionSkills],
			Skills:         doc.SkillNames(),
			SkillSeparator: spec.skillSeparator,
		})
	}

	return layout
}

func dateRange(start, end string, current bool) string {
	if current {
		end = PresentLabel
	}
	return start + " - " + end
}

func degreeLine(degree, field string) string {
	switch {
	case degree != "" && field != "":
		return degree + " in " + field
	case degree != "":
		return degree
	default:
		return field
	}
}

// compactRows drops blank contact items and rows left empty.
func compactRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		var items []string
		for _, item := range row {
			if strings.TrimSpace(item) != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out = append(out, items)
		}
	}
	return out
}
