// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. BIAS_CHECKER_STORE_BACKEND
	EnvPrefix = "BIAS_CHECKER"
	// DefaultConfigName is looked up in the working directory when no file is given
	DefaultConfigName = "bias_checker"
)

// Config is the merged view of defaults, config file, environment and flags
type Config struct {
	SessionKey string        `mapstructure:"session_key" validate:"required,excludesall=/"`
	Pacing     time.Duration `mapstructure:"pacing" validate:"min=0"`
	Seed       uint64        `mapstructure:"seed"` // 0 draws fallback scores from the global source
	Store      StoreConfig   `mapstructure:"store"`
	Server     ServerConfig  `mapstructure:"server"`
	Report     ReportConfig  `mapstructure:"report"`
	Log        LogConfig     `mapstructure:"log"`
}

// StoreConfig selects the session backend
type StoreConfig struct {
	Backend     string        `mapstructure:"backend" validate:"oneof=file memory redis postgres"`
	Dir         string        `mapstructure:"dir" validate:"required_if=Backend file"`
	RedisURL    string        `mapstructure:"redis_url" validate:"required_if=Backend redis"`
	DatabaseURL string        `mapstructure:"database_url" validate:"required_if=Backend postgres"`
	TTL         time.Duration `mapstructure:"ttl" validate:"min=0"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port           int             `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64           `mapstructure:"max_upload_bytes" validate:"min=1"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig tunes the per-client token buckets. Endpoint tiers are fixed.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit" validate:"min=1"`
	DefaultWindow time.Duration `mapstructure:"default_window" validate:"min=1s"`
	Allowlist     []string      `mapstructure:"allowlist"`
	Denylist      []string      `mapstructure:"denylist"`
}

// ReportConfig configures PDF export
type ReportConfig struct {
	WorkDir string `mapstructure:"workdir"` // empty uses a temporary directory per export
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// ConfigError represents a configuration that cannot be loaded or is invalid
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// SetDefaults registers every key so environment overrides apply to all of them
func SetDefaults(v *viper.Viper) {
	v.SetDefault("session_key", "resumeData")
	v.SetDefault("pacing", time.Duration(0))
	v.SetDefault("seed", uint64(0))
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.dir", ".bias_checker")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.ttl", time.Duration(0))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", int64(10<<20))
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.default_limit", 1000)
	v.SetDefault("server.rate_limit.default_window", time.Minute)
	v.SetDefault("server.rate_limit.allowlist", []string{})
	v.SetDefault("server.rate_limit.denylist", []string{})
	v.SetDefault("report.workdir", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configFile (or ./bias_checker.{yaml,json,toml} when empty and
// present), applies BIAS_CHECKER_* environment overrides and validates the
// result. Flags bound to v before Load take precedence over both.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("failed to read config file %s", configFile), Cause: err}
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &ConfigError{Message: "failed to read config file", Cause: err}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Message: "failed to decode config", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation at once
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ConfigError{Message: "validation failed", Cause: err}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return &ConfigError{Message: "invalid configuration: " + strings.Join(msgs, "; ")}
}
