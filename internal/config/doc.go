// Package config handles configuration loading, parsing, and validation
// from environment variables (TASKS_ prefix) and an optional config.yaml.
// It provides type-safe access to application settings while keeping
// configuration details separate from business logic.
package config
