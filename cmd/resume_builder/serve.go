package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveStore    string
	serveCapturer string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor HTTP server",
	Long:  `Start an HTTP server that exposes the resume editor, preview, AI assistance, preferences and export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Preferences store: file, memory, redis or postgres")
	serveCmd.Flags().StringVar(&serveCapturer, "capturer", "", "Export capturer: chrome or canvas")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, s, cleanup, err := setup(ctx, config.Config{
		Addr:     serveAddr,
		Store:    serveStore,
		Capturer: serveCapturer,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{
		Addr:    cfg.Addr,
		Session: s,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}
