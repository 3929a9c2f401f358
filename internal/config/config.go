// Package config loads prneko configuration from the user config dir, with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configFile = "config.yaml"

	// DefaultPollInterval is how often authored PRs are refreshed.
	DefaultPollInterval = 3 * time.Minute

	// defaultClientID is the development OAuth app; release builds set
	// GITHUB_CLIENT_ID.
	defaultClientID = "Ov23lidFJvN4oykuFMaW"
)

// Config holds prneko configuration.
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	ClientID     string        `yaml:"client_id"`
	PollInterval time.Duration `yaml:"poll_interval"`
	LogLevel     string        `yaml:"log_level"`
	Mock         bool          `yaml:"mock"`
	QuietHours   bool          `yaml:"quiet_hours"`
}

type fileConfig struct {
	DataDir      string `yaml:"data_dir"`
	ClientID     string `yaml:"client_id"`
	PollInterval string `yaml:"poll_interval"`
	LogLevel     string `yaml:"log_level"`
	Mock         *bool  `yaml:"mock"`
	QuietHours   *bool  `yaml:"quiet_hours"`
}

// Load reads configuration with the following precedence (highest first):
// 1. Environment variables (PRNEKO_*, GITHUB_CLIENT_ID)
// 2. ~/.config/prneko/config.yaml
// 3. Built-in defaults
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:      DefaultDataDir(),
		ClientID:     defaultClientID,
		PollInterval: DefaultPollInterval,
		LogLevel:     "warn",
	}

	path := filepath.Join(cfg.DataDir, configFile)
	if err := loadFromFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return cfg, nil
}

// DefaultDataDir returns the directory holding config, credentials, the
// watchlist, and logs.
func DefaultDataDir() string {
	if dir := os.Getenv("PRNEKO_DATA_DIR"); dir != "" {
		return expandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prneko"
	}
	return filepath.Join(home, ".config", "prneko")
}

// CredentialsPath returns the credential file location for cfg.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.DataDir, "credentials.json")
}

// WatchlistPath returns the watchlist file location for cfg.
func (c *Config) WatchlistPath() string {
	return filepath.Join(c.DataDir, "watchlist.json")
}

// LogPath returns the poller log file location for cfg.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "prneko.log")
}

// Save writes the config back to the data dir. Used to persist toggles like
// quiet hours. Durations are written in time.ParseDuration form ("3m").
func (c *Config) Save() error {
	mock, quiet := c.Mock, c.QuietHours
	out := fileConfig{
		DataDir:      c.DataDir,
		ClientID:     c.ClientID,
		PollInterval: c.PollInterval.String(),
		LogLevel:     c.LogLevel,
		Mock:         &mock,
		QuietHours:   &quiet,
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(c.DataDir, configFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// loadFromFile merges non-empty values from a YAML file into cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fileCfg.DataDir != "" {
		cfg.DataDir = expandHome(fileCfg.DataDir)
	}
	if fileCfg.ClientID != "" {
		cfg.ClientID = fileCfg.ClientID
	}
	if fileCfg.PollInterval != "" {
		d, err := time.ParseDuration(fileCfg.PollInterval)
		if err != nil {
			return fmt.Errorf("parse poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Mock != nil {
		cfg.Mock = *fileCfg.Mock
	}
	if fileCfg.QuietHours != nil {
		cfg.QuietHours = *fileCfg.QuietHours
	}
	return nil
}

// applyEnv applies environment variables to cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PRNEKO_DATA_DIR"); v != "" {
		cfg.DataDir = expandHome(v)
	}
	if v := os.Getenv("GITHUB_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("PRNEKO_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = d
		}
	}
	if v := os.Getenv("PRNEKO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PRNEKO_MOCK"); v != "" {
		cfg.Mock = v == "1" || v == "true" || v == "yes"
	}
	if v := os.Getenv("PRNEKO_QUIET_HOURS"); v != "" {
		cfg.QuietHours = v == "1" || v == "true" || v == "yes"
	}
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
