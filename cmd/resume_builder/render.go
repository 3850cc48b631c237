package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/spf13/cobra"
)

var (
	renderTemplate string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume preview as HTML",
	Long:  `Render the --resume document with a template and write the preview HTML to a file or stdout.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template: modern, classic or minimal")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output HTML file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	_, _, s, cleanup, err := setup(cmd.Context(), config.Config{Store: config.StoreMemory})
	if err != nil {
		return err
	}
	defer cleanup()

	if renderTemplate != "" {
		if _, err := s.SetTemplate(renderTemplate); err != nil {
			return err
		}
	}

	html, err := s.Preview()
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	if renderOutput == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s preview to %s\n", s.Template(), renderOutput)
	return nil
}
