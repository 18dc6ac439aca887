// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingToken is returned when no GitHub token is available. Fetch
// commands surface it before making any network call.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable not set")

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub GitHubConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored when present but is never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variables: %w", err)
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token: v.GetString("github.token"),
		},
	}

	if cfg.GitHub.Token == "" {
		return nil, ErrMissingToken
	}
	return cfg, nil
}
