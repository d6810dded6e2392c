package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values come from (in order of
// precedence): the LIFER_HOME environment variable, ~/.lifer/config.yaml,
// then defaults.
type Config struct {
	// HomeDir is the Lifer data directory (holds the database and config).
	HomeDir string `yaml:"-"`
	// DBPath overrides the database location.
	DBPath string `yaml:"db_path"`
	// MorningWindowEnd is the hour (0-23) the morning window closes.
	MorningWindowEnd int `yaml:"morning_window_end"`
	// DeepWorkMinutes is the daily maker-minute threshold counted as a
	// deep-work day.
	DeepWorkMinutes int `yaml:"deep_work_minutes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	dir := os.Getenv("LIFER_HOME")
	if dir == "" {
		dir = filepath.Join(home, ".lifer")
	}

	return &Config{
		HomeDir:          dir,
		DBPath:           filepath.Join(dir, "lifer.db"),
		MorningWindowEnd: 9,
		DeepWorkMinutes:  180,
	}
}

// TestConfig returns a configuration rooted at testDir.
func TestConfig(testDir string) *Config {
	return &Config{
		HomeDir:          testDir,
		DBPath:           filepath.Join(testDir, "lifer.db"),
		MorningWindowEnd: 9,
		DeepWorkMinutes:  180,
	}
}

// Load resolves the effective configuration, merging ~/.lifer/config.yaml
// over the defaults when present.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(cfg.HomeDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.HomeDir, "lifer.db")
	}
	if cfg.MorningWindowEnd <= 0 || cfg.MorningWindowEnd > 23 {
		cfg.MorningWindowEnd = 9
	}
	if cfg.DeepWorkMinutes <= 0 {
		cfg.DeepWorkMinutes = 180
	}
	return cfg, nil
}

// EnsureHome creates the Lifer data directory if missing.
func (c *Config) EnsureHome() error {
	if err := os.MkdirAll(c.HomeDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
