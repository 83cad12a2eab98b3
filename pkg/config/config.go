// Package config loads and validates the pipeline configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/orggraph/pkg/graph"
	"github.com/dd0wney/orggraph/pkg/logging"
)

// Config is the full pipeline configuration
type Config struct {
	// CanonicalDBPath is where cleaned/merged tables are persisted
	CanonicalDBPath string `yaml:"canonical_db_path" validate:"required"`
	// SnapshotPath is where the graph blob is written and loaded from
	SnapshotPath string `yaml:"snapshot_path" validate:"required"`
	// SourceDir holds the parsed source tables the external collaborator
	// hands over, one JSON table file per source kind
	SourceDir string `yaml:"source_dir"`
	// EdgePolicy selects multiset (spec baseline) or dedupe edge insertion
	EdgePolicy string `yaml:"edge_policy" validate:"oneof=multiset dedupe"`
	// LogLevel is the minimum level emitted
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	// Aliases overlays source-specific header aliases on the built-in maps,
	// keyed by source kind then raw (normalized) header
	Aliases map[string]map[string]string `yaml:"aliases"`
}

// Default returns the configuration defaults applied before the file is read
func Default() Config {
	return Config{
		CanonicalDBPath: "orggraph.db",
		SnapshotPath:    "orggraph.snapshot",
		EdgePolicy:      "multiset",
		LogLevel:        "info",
	}
}

// Load reads, defaults, and validates a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GraphEdgePolicy maps the configured edge policy string onto the graph type
func (c *Config) GraphEdgePolicy() graph.EdgePolicy {
	if c.EdgePolicy == "dedupe" {
		return graph.EdgeDeduped
	}
	return graph.EdgeMultiset
}

// LoggingLevel maps the configured log level string onto the logging type
func (c *Config) LoggingLevel() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// SourceAliases returns the alias overrides for one source kind, never nil
func (c *Config) SourceAliases(kind string) map[string]string {
	if c.Aliases == nil {
		return map[string]string{}
	}
	if m, ok := c.Aliases[kind]; ok {
		return m
	}
	return map[string]string{}
}
