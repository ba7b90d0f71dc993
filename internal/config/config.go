package config

import "time"

// Store backend names accepted by StoreConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Store   StoreConfig   `mapstructure:"store"   validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RedactErrors scrubs provider error text before it is returned in 500 bodies.
	RedactErrors    bool          `mapstructure:"redact_errors"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// StoreConfig selects and configures the task store backend.
type StoreConfig struct {
	Backend        string        `mapstructure:"backend"          validate:"required,oneof=memory postgres redis"`
	Timeout        time.Duration `mapstructure:"timeout"          validate:"gt=0"`
	PostgresURL    string        `mapstructure:"postgres_url"     validate:"required_if=Backend postgres,omitempty,url"`
	RedisURL       string        `mapstructure:"redis_url"        validate:"required_if=Backend redis,omitempty,url"`
	RedisKeyPrefix string        `mapstructure:"redis_key_prefix" validate:"required"`
}

// AuthConfig configures bearer-token verification. Leaving JWTSecret empty
// disables authentication; requests are then assumed to be authenticated
// upstream.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether bearer-token verification is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// MetricsConfig configures the Prometheus instruments.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}
