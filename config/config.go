package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds run configuration. Every field has a working default, so the
// config file itself is optional.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // csv|parquet
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
	Output string `yaml:"output"` // stdout|stderr|file path
	MaxAge int    `yaml:"max_age"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: "csv"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path skips the file and returns defaults. LOG_LEVEL in the environment
// overrides the configured log level.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.TrimSpace(v)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.Output.Format) {
	case "csv", "parquet":
	default:
		return fmt.Errorf("output.format %q is invalid (expected csv or parquet)", cfg.Output.Format)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is invalid (expected text or json)", cfg.Logging.Format)
	}

	if cfg.Logging.MaxAge < 0 {
		return fmt.Errorf("logging.max_age must not be negative")
	}
	return nil
}
