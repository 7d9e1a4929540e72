// Package config provides settings loading and the credential store for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the state directory.
const EnvHome = "CANVA_HOME"

// DefaultDirName is the directory created under the user config dir.
const DefaultDirName = "canva"

// Config represents the CLI settings that can be loaded from a JSON file.
// All fields are optional; flags override file values.
type Config struct {
	StateDir string `json:"state_dir,omitempty"` // Where credentials and workflow state live
	BaseURL  string `json:"base_url,omitempty"`  // Default school base URL offered at login
	Verbose  bool   `json:"verbose,omitempty"`   // Log HTTP calls and stage transitions to stderr
}

// LoadConfig loads settings from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the settings have usable values.
func (c *Config) Validate() error {
	if c.StateDir != "" {
		if info, err := os.Stat(c.StateDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: state_dir is not a directory: %s", c.StateDir)
		}
	}
	if c.BaseURL != "" {
		if _, err := NormalizeBaseURL(c.BaseURL); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.StateDir == "" {
		result.StateDir = defaults.StateDir
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveStateDir picks the state directory: flag, then $CANVA_HOME, then the
// settings file, then the user config dir.
func ResolveStateDir(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := os.Getenv(EnvHome); env != "" {
		return filepath.Abs(env)
	}
	if cfg != nil && cfg.StateDir != "" {
		return filepath.Abs(cfg.StateDir)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, DefaultDirName), nil
}
