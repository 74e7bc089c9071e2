// Package config loads the optional .gospec.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the scan root.
const FileName = ".gospec.yaml"

// Config holds project-level defaults for the CLI.
type Config struct {
	// Tags restricts runs and listings to these tags by default.
	Tags []string `yaml:"tags"`

	// Patterns are doublestar globs selecting spec files.
	Patterns []string `yaml:"patterns"`

	// Exclude lists directory names to skip during discovery.
	Exclude []string `yaml:"exclude"`

	// Workers is the parser worker count; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the zero configuration with defaults applied.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads the configuration from root. A missing file is not an error;
// defaults are returned.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
