package main

import (
	"context"
	"fmt"
	"time"

	"chorg/internal/config"
	"chorg/internal/logging"
	"chorg/internal/planner"
	"chorg/internal/sections"
	"chorg/internal/slack"
	"chorg/internal/storage"
)

// msDuration converts a millisecond config value to a duration.
func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// loadConfig loads the user config, falling back to defaults with a warning
// when the file is unreadable.
func loadConfig(logger *logging.Logger) *config.Config {
	cfg, err := config.Load(config.HomeDir())
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger creates the command logger from config and the --verbose flag.
func newLogger(cfg *config.Config) *logging.Logger {
	level := logging.LogLevel(cfg.Logging.Level)
	if verboseFlag {
		level = logging.DebugLevel
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  level,
	})
}

// newClient builds the workspace API client from config.
func newClient(cfg *config.Config, logger *logging.Logger) (*slack.Client, error) {
	token := cfg.ResolveToken()
	if token == "" {
		return nil, fmt.Errorf("no API token: set api.token in config or export %s", cfg.API.TokenEnv)
	}

	return slack.New(slack.Options{
		BaseURL:       cfg.API.BaseURL,
		Token:         token,
		Timeout:       msDuration(cfg.API.TimeoutMs),
		MaxRetries:    cfg.API.MaxRetries,
		PacePerMinute: cfg.API.PacePerMinute,
		PaceBurst:     cfg.API.PaceBurst,
		Logger:        logger,
	})
}

// snapshot is the workspace state one run plans against.
type snapshot struct {
	sections []sections.Section
	channels []planner.Channel
	// names maps channel id to name for display and mining
	names map[string]string
}

// loadSnapshot fetches sections and channels once; everything downstream
// works off this immutable view.
func loadSnapshot(ctx context.Context, client *slack.Client, logger *logging.Logger) (*snapshot, error) {
	rawSections, err := client.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	rawChannels, err := client.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		names: make(map[string]string, len(rawChannels)),
	}
	for _, s := range rawSections {
		snap.sections = append(snap.sections, sections.New(s.ID, s.Name, s.ChannelIDs))
	}
	for _, ch := range rawChannels {
		snap.channels = append(snap.channels, planner.Channel{ID: ch.ID, Name: ch.Name})
		snap.names[ch.ID] = ch.Name
	}

	logger.Debug("Loaded workspace snapshot", map[string]interface{}{
		"sections": len(snap.sections),
		"channels": len(snap.channels),
	})
	return snap, nil
}

// sectionName resolves a section id for display, falling back to the id.
func (s *snapshot) sectionName(id string) string {
	for _, sec := range s.sections {
		if sec.ID == id {
			return sec.Name
		}
	}
	return id
}

// saveRun records a run in the local history database. History failures are
// logged, never fatal.
func saveRun(cfg *config.Config, logger *logging.Logger, run storage.Run) {
	if !cfg.History.Enabled {
		return
	}

	db, err := storage.Open(config.HomeDir(), logger)
	if err != nil {
		logger.Warn("Failed to open history database", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveRun(run, cfg.History.Keep); err != nil {
		logger.Warn("Failed to save run history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
