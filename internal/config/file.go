package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NicabarNimble/go-gitcat/internal/errors"
)

// EnvConfigPath names the environment variable overriding the location of
// the configuration file
const EnvConfigPath = "GITCAT_CONFIG"

// FileConfig is the optional YAML configuration file.
//
//	prefix: ~/src
//	catalogue: ~/src/gitcatrc
//	quiet: false
//	dry_run: false
//	defaults:
//	  pull:
//	    ff-only: true
//	  status:
//	    untracked-files: normal
type FileConfig struct {
	Prefix    string                    `yaml:"prefix,omitempty"`
	Catalogue string                    `yaml:"catalogue,omitempty"`
	Quiet     bool                      `yaml:"quiet,omitempty"`
	DryRun    bool                      `yaml:"dry_run,omitempty"`
	Defaults  map[string]map[string]any `yaml:"defaults,omitempty"`
}

// DefaultConfig provides default configuration values
func DefaultConfig() *FileConfig {
	return &FileConfig{
		Defaults: make(map[string]map[string]any),
	}
}

// ConfigPath returns $GITCAT_CONFIG, or ~/.config/gitcat/config.yaml
func ConfigPath(home string) string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return ExpandHome(path, home)
	}
	return filepath.Join(home, ".config", "gitcat", "config.yaml")
}

// LoadConfig loads configuration from a file. A missing file is not an error.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, &errors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	cfg.MergeDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// MergeDefaults merges default values for unset fields
func (c *FileConfig) MergeDefaults() {
	if c.Defaults == nil {
		c.Defaults = DefaultConfig().Defaults
	}
}

// Validate checks every default against the option table
func (c *FileConfig) Validate() error {
	for name, values := range c.Defaults {
		cmd, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("defaults for unknown command %q", name)
		}
		for optName, raw := range values {
			opt, ok := cmd.Option(optName)
			if !ok {
				return fmt.Errorf("unknown option %q for %s", optName, name)
			}
			if err := opt.Check(fmt.Sprint(raw)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

// Default returns the configured default of option for command
func (c *FileConfig) Default(command, option string) (string, bool) {
	values, ok := c.Defaults[command]
	if !ok {
		return "", false
	}
	raw, ok := values[option]
	if !ok || raw == nil {
		return "", false
	}
	return fmt.Sprint(raw), true
}
