// Package schemas embeds the JSON Schemas describing the repository's interchange formats.
package schemas

import "embed"

// Schema file names
const (
	ResumeDocument = "resume_document.schema.json"
	JobAnalysis    = "job_analysis.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{ResumeDocument, JobAnalysis}
}
