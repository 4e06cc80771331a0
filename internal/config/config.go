// Package config holds the gozai configuration: fixture source,
// assessment pacing, and logging. The config file lives at
// .gozai/config.yaml; every field has a sensible default so the app
// runs without one.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all gozai configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Fixture data source
	Fixtures FixturesConfig `yaml:"fixtures"`

	// Assessment simulation
	Assessment AssessmentConfig `yaml:"assessment"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// FixturesConfig locates the fixture document.
type FixturesConfig struct {
	Path string `yaml:"path"`
}

// AssessmentConfig tunes the assessment simulator.
type AssessmentConfig struct {
	// CountryPrefix is embedded in generated passport identifiers.
	CountryPrefix string `yaml:"country_prefix"`

	// Latency paces the staged analysis for perceived realism.
	Latency LatencyConfig `yaml:"latency"`
}

// LatencyConfig controls the simulated per-stage analysis delay.
type LatencyConfig struct {
	Enabled bool `yaml:"enabled"`
	MinMs   int  `yaml:"min_ms"`
	MaxMs   int  `yaml:"max_ms"`
}

// LoggingConfig controls the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Name:    "gozai",
		Version: "0.1.0",
		Fixtures: FixturesConfig{
			Path: "fixtures.yaml",
		},
		Assessment: AssessmentConfig{
			CountryPrefix: "PL",
			Latency: LatencyConfig{
				Enabled: true,
				MinMs:   400,
				MaxMs:   800,
			},
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultConfigPath returns the path of the config file relative to the
// workspace.
func DefaultConfigPath() string {
	return filepath.Join(".gozai", "config.yaml")
}

// Load reads the config at path, falling back to defaults when the file
// is missing. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file. The .env
// file, if present, has already been folded into the environment by the
// command layer.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOZAI_FIXTURES"); v != "" {
		c.Fixtures.Path = v
	}
	if v := os.Getenv("GOZAI_COUNTRY_PREFIX"); v != "" {
		c.Assessment.CountryPrefix = v
	}
	if os.Getenv("GOZAI_NO_DELAY") == "1" {
		c.Assessment.Latency.Enabled = false
	}
	if os.Getenv("GOZAI_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// Validate checks the config for defects that would misbehave at runtime.
func (c *Config) Validate() error {
	if c.Fixtures.Path == "" {
		return fmt.Errorf("fixtures.path must not be empty")
	}
	if c.Assessment.CountryPrefix == "" {
		return fmt.Errorf("assessment.country_prefix must not be empty")
	}
	l := c.Assessment.Latency
	if l.MinMs < 0 || l.MaxMs < l.MinMs {
		return fmt.Errorf("assessment.latency: invalid range [%d, %d]", l.MinMs, l.MaxMs)
	}
	return nil
}
