// Package config loads server settings from the environment.
//
// Values come from PAIRS_-prefixed environment variables (a `.env` file is
// loaded into the environment by main before Load runs), fall back to the
// defaults below, and are validated before use.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DevTokenSecret signs player tokens when no secret is configured.
const DevTokenSecret = "dev_secret_change_me"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth" validate:"required"`
	Daily  DailyConfig  `mapstructure:"daily" validate:"required"`
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
}

// ServerConfig contains the HTTP listener settings.
type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel     string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error fatal"`
	ClientOrigin string `mapstructure:"client_origin" validate:"required,url"`
}

// AuthConfig contains player token settings.
type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret" validate:"required,min=16"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" validate:"required,gt=0"`
}

// DailyConfig salts the daily board seed.
type DailyConfig struct {
	Salt string `mapstructure:"salt" validate:"required"`
}

// StoreConfig bounds how long an idle table is kept.
type StoreConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl" validate:"required,gt=0"`
	PruneInterval time.Duration `mapstructure:"prune_interval" validate:"required,gt=0"`
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Server.Port) }

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5175)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("auth.token_secret", DevTokenSecret)
	v.SetDefault("auth.token_ttl", 30*24*time.Hour)
	v.SetDefault("daily.salt", "pairs-daily")
	v.SetDefault("store.idle_ttl", 2*time.Hour)
	v.SetDefault("store.prune_interval", 5*time.Minute)
}

// Load reads configuration from the environment.
// Environment variables take precedence over defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PAIRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
