package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Version    string   `json:"version" mapstructure:"version"`
	OutDir     string   `json:"out_dir" mapstructure:"out_dir"`
	CountsPath string   `json:"counts_path" mapstructure:"counts_path"`
	Seed       int64    `json:"seed" mapstructure:"seed"`
	Truncate   bool     `json:"truncate" mapstructure:"truncate"`
	Database   Database `json:"database" mapstructure:"database"`
}

type Database struct {
	URLEnv string `json:"url_env" mapstructure:"url_env"`
	Schema string `json:"schema" mapstructure:"schema"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "data/seed"
	}
	if !viper.IsSet("seed") {
		cfg.Seed = 42
	}
	if !viper.IsSet("truncate") {
		cfg.Truncate = true
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = "public"
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}
