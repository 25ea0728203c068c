package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Quickbar count bounds. Values outside this range are rejected when the
// config is loaded, before any quickbar state exists.
const (
	MinQuickbarCount = 1
	MaxQuickbarCount = 20
)

// Quickbars holds all configuration for the quickbar service.
type Quickbars struct {
	// QuickbarCount is the number of switchable quickbars per character.
	QuickbarCount int `yaml:"quickbar_count"`

	// FrameIntervalMs is the input-polling period of the dispatcher loop.
	FrameIntervalMs int `yaml:"frame_interval_ms"` // ms

	// AutosaveSec is how often online characters' quickbars are flushed
	// to the database.
	AutosaveSec int `yaml:"autosave_interval_sec"` // seconds

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// FrameInterval returns the dispatcher polling period.
func (c Quickbars) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// AutosaveInterval returns the periodic flush interval.
func (c Quickbars) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveSec) * time.Second
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultQuickbars returns Quickbars config with sensible defaults.
func DefaultQuickbars() Quickbars {
	return Quickbars{
		QuickbarCount:   4,
		FrameIntervalMs: 50,
		AutosaveSec:     300,
		LogLevel:        "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "quickbars",
			Password: "quickbars",
			DBName:   "quickbars",
			SSLMode:  "disable",
		},
	}
}

// LoadQuickbars loads quickbar service config from a YAML file.
// If the file doesn't exist, returns defaults. The result is always
// validated.
func LoadQuickbars(path string) (Quickbars, error) {
	cfg := DefaultQuickbars()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects out-of-range values.
func (c Quickbars) Validate() error {
	if c.QuickbarCount < MinQuickbarCount || c.QuickbarCount > MaxQuickbarCount {
		return fmt.Errorf("quickbar_count %d out of range [%d, %d]",
			c.QuickbarCount, MinQuickbarCount, MaxQuickbarCount)
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame_interval_ms must be positive, got %d", c.FrameIntervalMs)
	}
	if c.AutosaveSec <= 0 {
		return fmt.Errorf("autosave_interval_sec must be positive, got %d", c.AutosaveSec)
	}
	return nil
}
