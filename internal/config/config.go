// Package config loads gorebar settings from gorebar.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFile is read when it exists in the working directory.
const DefaultFile = "gorebar.yaml"

// Config holds all configuration for gorebar.
// Environment variables always override YAML values.
type Config struct {
	// Database is the path of the SQLite document.
	Database string `yaml:"database" env:"GOREBAR_DB" env-default:"model.gorebar"`

	// Scenario is an optional scenario file; built-in defaults apply when empty.
	Scenario string `yaml:"scenario" env:"GOREBAR_SCENARIO" env-default:""`

	Log LogConfig `yaml:"log"`

	// MetricsFile receives a Prometheus textfile after each command when set.
	MetricsFile string `yaml:"metrics_file" env:"GOREBAR_METRICS_FILE" env-default:""`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"GOREBAR_LOG_LEVEL" env-default:"info"`
	JSON  bool   `yaml:"json" env:"GOREBAR_LOG_JSON" env-default:"false"`
}

// Load reads path when it exists, then applies environment overrides. An
// empty path means DefaultFile.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist) && !explicit:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, statErr)
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	return cfg, nil
}
