package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
)

// resolveConfig layers flag values over the config file, the environment and the defaults
func resolveConfig(flags config.Config) (config.Config, error) {
	merged := flags
	if logLevel != "" {
		merged.LogLevel = logLevel
	}
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
		merged.Verbose = merged.Verbose || fileCfg.Verbose
	}
	merged = merged.MergeWithDefaults(config.FromEnv())
	merged = merged.MergeWithDefaults(config.Defaults())
	merged.Verbose = merged.Verbose || verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logger.New(cfg.LogMode, level)
}

// closer releases a resource opened while wiring the application
type closer func()

func (c closer) then(next closer) closer {
	return func() {
		next()
		c()
	}
}

func noop() {}

// openStore opens the preferences backend selected by cfg.Store
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (preferences.Store, closer, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return preferences.NewMemoryStore(), noop, nil
	case config.StoreRedis:
		store, err := preferences.NewRedisStore(ctx, preferences.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := preferences.NewPostgresStore(ctx, database)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		return store, database.Close, nil
	default:
		log.Debug("using file preferences store", "dir", cfg.DataDir)
		return preferences.NewFileStore(cfg.DataDir), noop, nil
	}
}

// newAssistant builds the AI service. Without an API key the service is still returned
// and every AI operation reports that the backend is unavailable.
func newAssistant(ctx context.Context, cfg config.Config, log *logger.Logger) (*assistant.Service, closer, error) {
	if cfg.APIKey == "" {
		log.Info("GEMINI_API_KEY not set, AI assistance disabled")
		return assistant.New(nil, log), noop, nil
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.AITimeout > 0 {
		llmCfg.Timeout = time.Duration(cfg.AITimeout) * time.Second
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return assistant.New(client, log), func() { _ = client.Close() }, nil
}

func newCapturer(cfg config.Config) (export.Capturer, error) {
	if cfg.Capturer == config.CapturerCanvas {
		canvas, err := export.NewCanvasCapturer(cfg.FontPath)
		if err != nil {
			return nil, err
		}
		return canvas, nil
	}
	return export.NewChromeCapturer(cfg.ChromePath, 0), nil
}

func newPipeline(cfg config.Config, log *logger.Logger) (*export.Pipeline, error) {
	capturer, err := newCapturer(cfg)
	if err != nil {
		return nil, err
	}
	pipeline := export.NewPipeline(capturer, export.NewPDFEncoder(), log)
	debug := logger.OrNop(log)
	pipeline.Subscribe(func(t export.Transition) {
		debug.Debug("export state changed", "from", string(t.From), "to", string(t.To))
	})
	return pipeline, nil
}

// newSession wires a session from cfg, loading the --resume document when given
func newSession(ctx context.Context, cfg config.Config, log *logger.Logger) (*session.Session, closer, error) {
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	ai, closeAI, err := newAssistant(ctx, cfg, log)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	cleanup := closeStore.then(closeAI)

	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	s := session.New(session.Options{
		Template:    rendering.Variant(cfg.Template),
		Assistant:   ai,
		Pipeline:    pipeline,
		Preferences: preferences.NewManager(store, log),
		Log:         log,
	})

	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to read resume: %w", err)
		}
		if _, err := s.Replace(data); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("invalid resume %s: %w", resumePath, err)
		}
	}
	return s, cleanup, nil
}

// saveResume writes the session document back to the --resume file
func saveResume(s *session.Session) error {
	if resumePath == "" {
		return fmt.Errorf("--resume is required to save the document")
	}
	data, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if dir := filepath.Dir(resumePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(resumePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	return nil
}

// setup resolves configuration and builds the logger and session for a command
func setup(ctx context.Context, flags config.Config) (config.Config, *logger.Logger, *session.Session, closer, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}
	s, cleanup, err := newSession(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return config.Config{}, nil, nil, nil, err
	}
	return cfg, log, s, cleanup.then(log.Sync), nil
}
