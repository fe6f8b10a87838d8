package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load reads configuration from the given file path, or from the standard
// locations when path is empty. A missing config file is not an error; the
// defaults plus environment variables apply. An explicitly named file that
// cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("requests_per_second", cfg.RequestsPerSecond)
	v.SetDefault("defaults.max_issues", cfg.Defaults.MaxIssues)
	v.SetDefault("defaults.format", cfg.Defaults.Format)
	v.SetDefault("defaults.stats_period", cfg.Defaults.StatsPeriod)

	v.SetEnvPrefix("ISSUEGAZE")
	v.AutomaticEnv()
	// Short forms used in docs and CI environments.
	_ = v.BindEnv("token", "ISSUEGAZE_TOKEN")
	_ = v.BindEnv("organization", "ISSUEGAZE_ORG", "ISSUEGAZE_ORGANIZATION")
	_ = v.BindEnv("base_url", "ISSUEGAZE_BASE_URL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			// No file anywhere: defaults plus env apply.
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// searchDirs returns the standard config directories, most specific first.
func searchDirs() []string {
	var dirs []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "issuegaze"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "issuegaze"))
	}

	return dirs
}
