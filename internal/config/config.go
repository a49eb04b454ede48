package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultExportFilename is the file name exports are written to when the
// caller does not choose one. Downstream tooling looks for this exact name.
const DefaultExportFilename = "config_settings.json"

// Config represents the complete configuration for the editor
type Config struct {
	Export   ExportConfig   `yaml:"export"`
	Classify ClassifyConfig `yaml:"classify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ExportConfig controls how selections are written out
type ExportConfig struct {
	// Filename is the default export target.
	Filename string `yaml:"filename"`
	// AllowEmpty skips the confirmation an empty selection normally
	// requires before exporting.
	AllowEmpty bool `yaml:"allow_empty"`
}

// ClassifyConfig tunes the widget classifier
type ClassifyConfig struct {
	// FlagKeyPatterns adds substrings to the advisory flag-key heuristic on
	// top of the built-in set. Matched against snake_cased key names.
	FlagKeyPatterns []string `yaml:"flag_key_patterns"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Filename:   DefaultExportFilename,
			AllowEmpty: false,
		},
		Classify: ClassifyConfig{
			FlagKeyPatterns: []string{},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults so absent keys keep their documented values.
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Export.Filename == "" {
		cfg.Export.Filename = DefaultExportFilename
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".configjson.yml", ".configjson.yaml", "configjson.yml", "configjson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LogLevel maps the configured level name onto a slog level. Unknown names
// fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base // Start with a copy of base

	if override.Export.Filename != "" {
		merged.Export.Filename = override.Export.Filename
	}
	if override.Logging.Level != "" {
		merged.Logging.Level = override.Logging.Level
	}
	if len(override.Classify.FlagKeyPatterns) > 0 {
		merged.Classify.FlagKeyPatterns = override.Classify.FlagKeyPatterns
	}

	// Booleans can't distinguish "unset" from "false", so the override
	// always wins.
	merged.Export.AllowEmpty = override.Export.AllowEmpty

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath, cliOutput string, cliAllowEmpty, cliDebug bool) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Apply CLI overrides only where they differ from the flag defaults, so
	// config file values survive unset flags.
	if cliOutput != "" && cliOutput != DefaultExportFilename {
		cfg.Export.Filename = cliOutput
	}
	if cliAllowEmpty {
		cfg.Export.AllowEmpty = true
	}
	if cliDebug {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
