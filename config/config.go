package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvDatabaseURL is the single required configuration key: the connection
// string of the backing store.
const EnvDatabaseURL = "DATABASE_URL"

// Config holds the journal configuration.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
}

// Load resolves configuration in order: a .env file (the default ./.env is
// optional, an explicitly named one must exist), an optional YAML config
// file, then the process environment. Missing DATABASE_URL is a fatal
// configuration error reported before any store access.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: running without a .env is fine.
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%s is required: set it in the environment, a .env file, or the config file", EnvDatabaseURL)
	}
	return nil
}
