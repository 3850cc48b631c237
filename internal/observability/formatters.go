// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintDocument outputs a short overview of a resume document.
func (p *Printer) PrintDocument(doc types.ResumeDocument) {
	var sb strings.Builder

	name := doc.PersonalInfo.FullName
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(&sb, "Name:       %s\n", name)
	if doc.PersonalInfo.Email != "" {
		fmt.Fprintf(&sb, "Email:      %s\n", doc.PersonalInfo.Email)
	}
	fmt.Fprintf(&sb, "Experience: %d\n", len(doc.Experience))
	fmt.Fprintf(&sb, "Education:  %d\n", len(doc.Education))
	fmt.Fprintf(&sb, "Skills:     %d\n", len(doc.Skills))
	sb.WriteString("\n")

	positions := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		positions = append(positions, strings.TrimSpace(e.Position+" at "+e.Company))
	}
	writeList(&sb, "Positions", positions)
	writeList(&sb, "Skills", doc.SkillNames())

	p.printBox("RESUME", sb.String())
}

// PrintJobAnalysis outputs the result of a job description analysis.
func (p *Printer) PrintJobAnalysis(analysis *assistant.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Required Skills", analysis.RequiredSkills)
	writeList(&sb, "Keywords", analysis.Keywords)
	if analysis.Suggestions != "" {
		sb.WriteString("Suggestions:\n")
		for _, line := range wrap(analysis.Suggestions, boxWidth-6) {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("Nothing found\n")
	}

	p.printBox("JOB ANALYSIS", sb.String())
}

// PrintPreferences outputs a saved preferences profile.
func (p *Printer) PrintPreferences(profile *types.PreferencesProfile) {
	if profile == nil {
		p.printBox("PREFERENCES", "No saved preferences")
		return
	}

	var sb strings.Builder
	if profile.PersonalInfo.FullName != "" {
		fmt.Fprintf(&sb, "Name:     %s\n", profile.PersonalInfo.FullName)
	}
	fmt.Fprintf(&sb, "Level:    %s\n", profile.ExperienceLevel)
	fmt.Fprintf(&sb, "Industry: %s\n", profile.IndustryFocus)
	if profile.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", profile.Location)
	}
	sb.WriteString("\n")
	writeList(&sb, "Target Titles", profile.PreferredJobTitles)
	writeList(&sb, "Tech Stack", profile.TechStack)
	writeList(&sb, "Skills", profile.Skills)
	if !profile.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "Updated:  %s\n", profile.UpdatedAt.Format("2006-01-02 15:04"))
	}

	p.printBox("PREFERENCES", sb.String())
}

// PrintWizardStep outputs the header of a wizard step.
//
//nolint:errcheck
func (p *Printer) PrintWizardStep(index int, step preferences.Step) {
	total := len(preferences.Steps())
	title := fmt.Sprintf("STEP %d OF %d: %s", index+1, total, strings.ToUpper(step.Title))
	content := step.Description
	if !step.Required {
		content += "\n(optional, press enter to skip)"
	}
	if len(step.Options) > 0 {
		content += "\nOptions: " + strings.Join(step.Options, ", ")
	}
	p.printBox(title, content)
}

// PrintExport outputs where an exported PDF was written.
func (p *Printer) PrintExport(res *export.Result, path string) {
	if res == nil {
		return
	}
	content := fmt.Sprintf("File:     %s\nTemplate: %s\nSize:     %d bytes", res.Filename, res.Variant, res.Size)
	if path != "" {
		content += "\nPath:     " + path
	}
	p.printBox("EXPORT", content)
}

// PrintText outputs free-form assistant text in a titled box.
func (p *Printer) PrintText(title, text string) {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrap(para, boxWidth-4)...)
	}
	p.printBox(strings.ToUpper(title), strings.Join(lines, "\n"))
}

// wrap splits text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
