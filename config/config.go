/*
Package config loads server configuration.

PURPOSE:
  Central configuration for the server binary. Values resolve in order:
  defaults, then an optional YAML config file, then environment
  variables (MORTGAGE_PORT, MORTGAGE_DATABASE_PATH, MORTGAGE_REDIS_ADDR,
  MORTGAGE_LOG_LEVEL).

  A missing config file is not an error when no path was given
  explicitly; the defaults are a complete working configuration.
*/
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds all server settings.
type Configuration struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port"`

	// DatabasePath is the SQLite file, ":memory:" for in-memory.
	DatabasePath string `mapstructure:"database_path"`

	// RedisAddr enables the Redis comparison cache when non-empty.
	// Empty falls back to the in-process cache.
	RedisAddr string `mapstructure:"redis_addr"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads the configuration. configPath may be empty to use
// defaults and environment variables only.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("database_path", "scenarios.db")
	v.SetDefault("redis_addr", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("mortgage")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}
