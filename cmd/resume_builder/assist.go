package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/jobpost"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
)

var (
	assistSave    bool
	assistJobFile string
	assistJobURL  string
	assistContext string
	bulletExpID   string
	bulletIndex   int
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "AI writing assistance for the resume",
	Long:  `Run an AI assistant operation against the --resume document. Requires GEMINI_API_KEY.`,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a professional summary",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		doc, err := s.GenerateSummary(cmd.Context())
		if err != nil {
			return err
		}
		p.PrintText("Summary", doc.PersonalInfo.Summary)
		return maybeSave(s)
	}),
}

var bulletCmd = &cobra.Command{
	Use:   "bullet",
	Short: "Rewrite one experience bullet",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		current := s.Document()
		i := current.FindExperience(bulletExpID)
		if i < 0 {
			return fmt.Errorf("no experience entry with id %q", bulletExpID)
		}
		if bulletIndex < 0 || bulletIndex >= len(current.Experience[i].Description) {
			return fmt.Errorf("experience %q has no bullet %d", bulletExpID, bulletIndex)
		}

		doc, err := s.ImproveBullet(cmd.Context(), bulletExpID, bulletIndex)
		if err != nil {
			return err
		}
		p.PrintText("Improved Bullet", doc.Experience[i].Description[bulletIndex])
		return maybeSave(s)
	}),
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description against the resume",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		text, err := readJobDescription(cmd.Context(), cmd.InOrStdin())
		if err != nil {
			return err
		}
		analysis, err := s.AnalyzeJob(cmd.Context(), text)
		if err != nil {
			return err
		}
		p.PrintJobAnalysis(analysis)
		return nil
	}),
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Suggest skills for the most recent position",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		_, suggested, err := s.SuggestSkills(cmd.Context())
		if err != nil {
			return err
		}
		p.PrintText("Suggested Skills", strings.Join(suggested, "\n"))
		return maybeSave(s)
	}),
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Review the whole resume and suggest improvements",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		advice, err := s.Optimize(cmd.Context())
		if err != nil {
			return err
		}
		p.PrintText("Optimization", advice)
		return nil
	}),
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Generate free-form content for a context",
	RunE: withSession(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		text, err := s.GenerateContent(cmd.Context(), assistContext)
		if err != nil {
			return err
		}
		p.PrintText("Content", text)
		return nil
	}),
}

func init() {
	assistCmd.PersistentFlags().BoolVar(&assistSave, "save", false, "Write the updated document back to --resume")
	bulletCmd.Flags().StringVar(&bulletExpID, "experience", "", "Experience entry id")
	bulletCmd.Flags().IntVar(&bulletIndex, "index", 0, "Bullet index within the entry")
	analyzeCmd.Flags().StringVar(&assistJobFile, "job", "", "Job description file (default stdin)")
	analyzeCmd.Flags().StringVar(&assistJobURL, "url", "", "Job posting URL to download instead of a file")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "url")
	contentCmd.Flags().StringVar(&assistContext, "context", "", "What the content is for")

	assistCmd.AddCommand(summaryCmd, bulletCmd, analyzeCmd, skillsCmd, optimizeCmd, contentCmd)
	rootCmd.AddCommand(assistCmd)
}

type sessionRunner func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error

// withSession wires a session for an assist subcommand. Preferences are not needed
// here, so the memory store is used.
func withSession(run sessionRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		_, _, s, cleanup, err := setup(cmd.Context(), config.Config{Store: config.StoreMemory})
		if err != nil {
			return err
		}
		defer cleanup()
		return run(cmd, s, observability.NewPrinter(cmd.OutOrStdout()))
	}
}

func maybeSave(s *session.Session) error {
	if !assistSave {
		return nil
	}
	return saveResume(s)
}

func readJobDescription(ctx context.Context, stdin io.Reader) (string, error) {
	if assistJobURL != "" {
		posting, err := jobpost.NewFetcher(nil).Fetch(ctx, assistJobURL)
		if err != nil {
			return "", err
		}
		return posting.Text, nil
	}

	var (
		data []byte
		err  error
	)
	if assistJobFile != "" {
		data, err = os.ReadFile(assistJobFile)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}
