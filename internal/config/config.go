// Package config loads issuegaze configuration from a YAML file,
// environment variables and flag overrides.
//
// Precedence, highest to lowest:
//  1. Command-line flags (bound by the cmd package)
//  2. Environment variables (ISSUEGAZE_* prefix)
//  3. Config file (--config, else $XDG_CONFIG_HOME/issuegaze/config.yaml,
//     else ~/.config/issuegaze/config.yaml)
//  4. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	// BaseURL of the Sentry-compatible API.
	BaseURL string `mapstructure:"base_url"`

	// Token is the bearer credential. Usually supplied via ISSUEGAZE_TOKEN.
	Token string `mapstructure:"token"`

	// Organization is the Sentry organization slug.
	Organization string `mapstructure:"organization"`

	// Timeout per HTTP round trip.
	Timeout time.Duration `mapstructure:"timeout"`

	// RequestsPerSecond enables courtesy client-side pacing; zero disables.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds per-command defaults overridable by flags.
type DefaultsConfig struct {
	// MaxIssues bounds listings when no --max flag is given.
	MaxIssues int `mapstructure:"max_issues"`

	// Format is the output format: table or json.
	Format string `mapstructure:"format"`

	// StatsPeriod applied to listings when no flag is given, e.g. "24h".
	StatsPeriod string `mapstructure:"stats_period"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL: "https://sentry.io",
		Timeout: 30 * time.Second,
		Defaults: DefaultsConfig{
			MaxIssues: 100,
			Format:    "table",
		},
	}
}

// Validate checks the fields every API command needs.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("no API token configured (set ISSUEGAZE_TOKEN or token in the config file)")
	}
	if c.Organization == "" {
		return fmt.Errorf("no organization configured (set ISSUEGAZE_ORG or organization in the config file)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	return nil
}
