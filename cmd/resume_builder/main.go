// Package main provides the resume builder CLI and HTTP editor server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	resumePath string
	verbose    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder editor, preview and PDF export",
	Long: `Resume Builder edits a structured resume document, previews it in one of several
templates, exports it to a single-page PDF and offers AI writing assistance.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVarP(&resumePath, "resume", "r", "", "Path to a resume document JSON file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
