package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	exportTemplate     string
	exportOutDir       string
	exportCapturer     string
	exportAllTemplates bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume to a single-page PDF",
	Long: `Export the --resume document to <Full_Name>_Resume.pdf in the output directory.
With --all-templates every template is exported concurrently into its own subdirectory.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template: modern, classic or minimal")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Output directory (default .)")
	exportCmd.Flags().StringVar(&exportCapturer, "capturer", "", "Export capturer: chrome or canvas")
	exportCmd.Flags().BoolVar(&exportAllTemplates, "all-templates", false, "Export every template")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, s, cleanup, err := setup(ctx, config.Config{
		Store:     config.StoreMemory,
		OutputDir: exportOutDir,
		Capturer:  exportCapturer,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(cmd.OutOrStdout())

	if exportAllTemplates {
		results, err := exportAll(ctx, cfg, log, s.Document())
		for _, r := range results {
			printer.PrintExport(r.result, r.path)
		}
		return err
	}

	if exportTemplate != "" {
		if _, err := s.SetTemplate(exportTemplate); err != nil {
			return err
		}
	}

	sink := export.NewDirSink(cfg.OutputDir)
	res, err := s.Export(ctx, sink)
	if err != nil {
		return err
	}
	printer.PrintExport(res, sink.LastPath())
	return nil
}

type variantExport struct {
	result *export.Result
	path   string
}

// exportAll exports every template in parallel. Each template gets its own pipeline,
// since a pipeline runs one export at a time. Results are ordered by template.
func exportAll(ctx context.Context, cfg config.Config, log *logger.Logger, doc types.ResumeDocument) ([]variantExport, error) {
	variants := rendering.Variants()
	results := make([]variantExport, 0, len(variants))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, info := range variants {
		g.Go(func() error {
			pipeline, err := newPipeline(cfg, log)
			if err != nil {
				return err
			}
			sink := export.NewDirSink(filepath.Join(cfg.OutputDir, string(info.ID)))
			res, err := pipeline.Export(ctx, doc, info.ID, sink)
			if err != nil {
				return fmt.Errorf("%s: %w", info.ID, err)
			}

			mu.Lock()
			results = append(results, variantExport{result: res, path: sink.LastPath()})
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	slices.SortFunc(results, func(a, b variantExport) int {
		return strings.Compare(string(a.result.Variant), string(b.result.Variant))
	})
	return results, err
}
