package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const sampleResume = `{
  "personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com", "summary": "Platform engineer"},
  "experience": [
    {"id": "exp-1", "company": "Acme", "position": "SRE", "startDate": "2021-01", "current": true,
     "description": ["Cut paging volume in half"]}
  ],
  "education": [{"id": "edu-1", "institution": "State University", "degree": "BSc", "field": "CS"}],
  "skills": [{"id": "skill-1", "name": "Go", "category": "Technical"}]
}`

// isolate clears the environment and package flags that feed resolveConfig
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RESUME_BUILDER_ADDR", "PORT", "RESUME_BUILDER_STORE", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "DATABASE_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "CHROME_PATH",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("RESUME_BUILDER_DATA_DIR", t.TempDir())

	configPath, resumePath, verbose, logLevel = "", "", false, ""
	t.Cleanup(func() {
		configPath, resumePath, verbose, logLevel = "", "", false, ""
	})
}

// writeResume stores doc in a temp file and points --resume at it
func writeResume(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	resumePath = path
	return path
}

func newCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, &out
}
