// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env vars.
// - External errors are wrapped via this package's sentinels.
package config

import (
	"github.com/deeparex/Food-monitoring-System/internal/domain/evaluation"
)

// Store backend names accepted by StoreBackend.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RequiredCertifications lists the certifications a compliant record
	// must carry, in report order.
	RequiredCertifications []string `koanf:"required_certifications"`

	// NearExpiryWindowHours sets the near-expiry alert horizon.
	NearExpiryWindowHours int `koanf:"near_expiry_window_hours"`

	// SubscriberBuffer bounds each alert subscriber's event buffer.
	SubscriberBuffer int `koanf:"subscriber_buffer"`

	// StoreBackend selects the record store: memory or postgres.
	StoreBackend string `koanf:"store_backend"`

	// PostgresDSN configures the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// ShardCount configures the in-memory store's shard count.
	ShardCount int `koanf:"shard_count"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8090",
		RequiredCertifications: evaluation.DefaultRequiredCertifications(),
		NearExpiryWindowHours:  24,
		SubscriberBuffer:       16,
		StoreBackend:           StoreMemory,
		ShardCount:             8,
	}
}
