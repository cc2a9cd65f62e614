// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/netcore/lib/contents"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "NETCORE_CONFIG"

// ProductionMaxLength is the read cap production uses when the file
// does not override it.
const ProductionMaxLength = 64 * 1024

// maxConfigLength bounds the size of the config file itself.
const maxConfigLength = 1024 * 1024

// Config is the master configuration for netcore.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Reader configures bounded reads.
	Reader ReaderConfig `yaml:"reader"`

	// Escape configures the default escape flags for output.
	Escape EscapeConfig `yaml:"escape"`

	// Quote configures quoting.
	Quote QuoteConfig `yaml:"quote"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Reader *ReaderConfig `yaml:"reader,omitempty"`
	Escape *EscapeConfig `yaml:"escape,omitempty"`
	Quote  *QuoteConfig  `yaml:"quote,omitempty"`
}

// ReaderConfig configures bounded reads.
type ReaderConfig struct {
	// MaxLength caps a read including its NUL terminator.
	// Default: 2 MiB (development), 64 KiB (production)
	MaxLength int `yaml:"max_length"`

	// PollTimeout bounds how long a read from standard input waits for
	// the first byte, as a Go duration string. Empty waits forever.
	PollTimeout string `yaml:"poll_timeout"`

	// BaseDirectory resolves relative paths given to read. Empty
	// means the working directory.
	BaseDirectory string `yaml:"base_directory"`
}

// EscapeConfig holds the default escape flags.
type EscapeConfig struct {
	// Control escapes bytes below 0x20.
	// Default: false (development), true (production)
	Control bool `yaml:"control"`

	// NonASCII escapes every byte of 0x7F and above.
	NonASCII bool `yaml:"non_ascii"`
}

// QuoteConfig configures quoting.
type QuoteConfig struct {
	// Width is the output buffer size for quote, including quotes and
	// terminator. Default: 64
	Width int `yaml:"width"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
func Default() *Config {
	return &Config{
		Environment: Development,
		Reader: ReaderConfig{
			MaxLength: contents.DefaultMaxLength,
		},
		Quote: QuoteConfig{
			Width: 64,
		},
	}
}

// Load loads configuration from the NETCORE_CONFIG environment
// variable. There are no fallbacks: if it is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your netcore.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar variables in reader.base_directory.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := contents.ReadFile(-1, path, contents.Options{MaxLength: maxConfigLength})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer data.Release()

	if err := yaml.Unmarshal(data.Bytes(), c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: escape control bytes, smaller reads.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Reader: &ReaderConfig{
					MaxLength: ProductionMaxLength,
				},
				Escape: &EscapeConfig{
					Control:  true,
					NonASCII: c.Escape.NonASCII,
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Reader != nil {
		if overrides.Reader.MaxLength != 0 {
			c.Reader.MaxLength = overrides.Reader.MaxLength
		}
		if overrides.Reader.PollTimeout != "" {
			c.Reader.PollTimeout = overrides.Reader.PollTimeout
		}
		if overrides.Reader.BaseDirectory != "" {
			c.Reader.BaseDirectory = overrides.Reader.BaseDirectory
		}
	}

	if overrides.Escape != nil {
		// Booleans are always applied from an override section.
		c.Escape.Control = overrides.Escape.Control
		c.Escape.NonASCII = overrides.Escape.NonASCII
	}

	if overrides.Quote != nil {
		if overrides.Quote.Width != 0 {
			c.Quote.Width = overrides.Quote.Width
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Reader.BaseDirectory = expandVars(c.Reader.BaseDirectory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// PollTimeout returns reader.poll_timeout as a duration. An empty
// setting returns a negative duration, meaning wait forever.
func (c *Config) PollTimeout() (time.Duration, error) {
	if c.Reader.PollTimeout == "" {
		return -1, nil
	}
	timeout, err := time.ParseDuration(c.Reader.PollTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: reader.poll_timeout: %w", err)
	}
	return timeout, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Reader.MaxLength < 2 {
		errs = append(errs, fmt.Errorf("reader.max_length must be at least 2, got %d", c.Reader.MaxLength))
	}

	if timeout, err := c.PollTimeout(); err != nil {
		errs = append(errs, err)
	} else if c.Reader.PollTimeout != "" && timeout < 0 {
		errs = append(errs, fmt.Errorf("reader.poll_timeout must not be negative, got %s", c.Reader.PollTimeout))
	}

	if c.Quote.Width < 3 {
		errs = append(errs, fmt.Errorf("quote.width must be at least 3, got %d", c.Quote.Width))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
