// Package config loads and persists chorg configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete chorg configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	API       APIConfig       `json:"api" mapstructure:"api"`
	RateLimit RateLimitConfig `json:"rateLimit" mapstructure:"rateLimit"`
	History   HistoryConfig   `json:"history" mapstructure:"history"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// APIConfig contains workspace API client configuration
type APIConfig struct {
	BaseURL    string `json:"baseUrl" mapstructure:"baseUrl"`
	Token      string `json:"token,omitempty" mapstructure:"token"`
	TokenEnv   string `json:"tokenEnv" mapstructure:"tokenEnv"`
	TimeoutMs  int    `json:"timeoutMs" mapstructure:"timeoutMs"`
	MaxRetries int    `json:"maxRetries" mapstructure:"maxRetries"`

	// Transport-level pacing, below the executor's own limiter.
	PacePerMinute int `json:"pacePerMinute" mapstructure:"pacePerMinute"`
	PaceBurst     int `json:"paceBurst" mapstructure:"paceBurst"`
}

// RateLimitConfig bounds how fast the executor applies moves
type RateLimitConfig struct {
	Requests   int `json:"requests" mapstructure:"requests"`
	IntervalMs int `json:"intervalMs" mapstructure:"intervalMs"`
}

// HistoryConfig controls the local run-history database
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Keep    int  `json:"keep" mapstructure:"keep"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:       "https://slack.com/api",
			TokenEnv:      "SLACK_TOKEN",
			TimeoutMs:     30000,
			MaxRetries:    5,
			PacePerMinute: 100,
			PaceBurst:     5,
		},
		RateLimit: RateLimitConfig{
			Requests:   20,
			IntervalMs: 60000,
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    100,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// HomeDir returns the chorg home directory.
// CHORG_HOME overrides the default of ~/.chorg.
func HomeDir() string {
	if env := os.Getenv("CHORG_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chorg"
	}
	return filepath.Join(home, ".chorg")
}

// Load loads configuration from <home>/config.json
func Load(home string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(home)

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <home>/config.json
func (c *Config) Save(home string) error {
	if err := os.MkdirAll(home, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(home, "config.json"), data, 0644)
}

// ResolveToken returns the configured API token, falling back to the
// environment variable named by tokenEnv.
func (c *Config) ResolveToken() string {
	if c.API.Token != "" {
		return c.API.Token
	}
	if c.API.TokenEnv != "" {
		return os.Getenv(c.API.TokenEnv)
	}
	return ""
}
