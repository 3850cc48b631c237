// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Capture backends
const (
	CapturerChrome = "chrome"
	CapturerCanvas = "canvas"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Server
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // Listen address for serve

	// Preferences storage
	Store         string `json:"store,omitempty" yaml:"store,omitempty"`                   // file, memory, redis or postgres
	DataDir       string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`             // Directory for the file store
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`         // host:port
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"` // Optional
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// AI
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`       // Gemini API key
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`           // Overrides the standard tier model
	AITimeout int    `json:"ai_timeout,omitempty" yaml:"ai_timeout,omitempty"` // Seconds per AI request

	// Rendering and export
	Template   string `json:"template,omitempty" yaml:"template,omitempty"`       // Initial template variant
	Capturer   string `json:"capturer,omitempty" yaml:"capturer,omitempty"`       // chrome or canvas
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Browser executable
	FontPath   string `json:"font_path,omitempty" yaml:"font_path,omitempty"`     // TTF for the canvas capturer
	OutputDir  string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`   // Where the CLI writes PDFs

	// Logging
	LogMode  string `json:"log_mode,omitempty" yaml:"log_mode,omitempty"`   // prod or dev
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the values used when neither file, environment nor flags set a field
func Defaults() Config {
	return Config{
		Addr:      ":8080",
		Store:     StoreFile,
		DataDir:   ".resume-builder",
		AITimeout: 60,
		Template:  "modern",
		Capturer:  CapturerChrome,
		OutputDir: ".",
		LogMode:   "dev",
		LogLevel:  "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns a Config holding the values set in the environment.
// Secrets and connection URLs are expected here rather than in config files.
func FromEnv() Config {
	cfg := Config{
		Addr:          os.Getenv("RESUME_BUILDER_ADDR"),
		Store:         os.Getenv("RESUME_BUILDER_STORE"),
		DataDir:       os.Getenv("RESUME_BUILDER_DATA_DIR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		Model:         os.Getenv("GEMINI_MODEL"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
	if port := os.Getenv("PORT"); port != "" && cfg.Addr == "" {
		cfg.Addr = ":" + port
	}
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.RedisDB = db
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Store {
	case "", StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q", c.Store)
	}

	switch c.Capturer {
	case "", CapturerChrome, CapturerCanvas:
	default:
		return fmt.Errorf("config error: unknown capturer %q", c.Capturer)
	}

	if c.Template != "" && !rendering.Variant(c.Template).Known() {
		return fmt.Errorf("config error: unknown template %q", c.Template)
	}

	switch c.LogMode {
	case "", "prod", "dev":
	default:
		return fmt.Errorf("config error: 'log_mode' must be prod or dev")
	}

	// Validate numeric ranges
	if c.AITimeout < 0 {
		return fmt.Errorf("config error: 'ai_timeout' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.FontPath != "" {
		if _, err := os.Stat(c.FontPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: font file not found: %s", c.FontPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Call it in order of precedence: flags, then file, then environment, then Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.Addr, defaults.Addr)
	fill(&result.Store, defaults.Store)
	fill(&result.DataDir, defaults.DataDir)
	fill(&result.RedisAddr, defaults.RedisAddr)
	fill(&result.RedisPassword, defaults.RedisPassword)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.Model, defaults.Model)
	fill(&result.Template, defaults.Template)
	fill(&result.Capturer, defaults.Capturer)
	fill(&result.ChromePath, defaults.ChromePath)
	fill(&result.FontPath, defaults.FontPath)
	fill(&result.OutputDir, defaults.OutputDir)
	fill(&result.LogMode, defaults.LogMode)
	fill(&result.LogLevel, defaults.LogLevel)

	// Int fields: use default if zero
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.AITimeout == 0 {
		result.AITimeout = defaults.AITimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
