// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nutriguide/nutriguide/internal/database"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds configuration shared by the API server and the worker.
type Config struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// StoreDriver selects the persistence backend: memory or postgres.
	StoreDriver         string        `env:"STORE_DRIVER" envDefault:"memory"`
	StoreBreakerTimeout time.Duration `env:"STORE_BREAKER_TIMEOUT" envDefault:"30s"`
	Database            database.Config

	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	// OTelSampleRatio is the fraction of root traces sampled, in (0, 1].
	OTelSampleRatio float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`

	PubSub PubSubConfig

	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// RequireTLS rejects plain HTTP requests that did not arrive through a
	// TLS-terminating proxy.
	RequireTLS bool `env:"REQUIRE_TLS" envDefault:"false"`
}

// PubSubConfig configures log change events.
type PubSubConfig struct {
	Enabled        bool   `env:"PUBSUB_ENABLED" envDefault:"false"`
	ProjectID      string `env:"PUBSUB_PROJECT_ID"`
	Topic          string `env:"PUBSUB_TOPIC" envDefault:"daily-log-changes"`
	Subscription   string `env:"PUBSUB_SUBSCRIPTION" envDefault:"daily-log-reconciler"`
	MaxOutstanding int    `env:"PUBSUB_MAX_OUTSTANDING" envDefault:"10"`

	// PublishTimeout bounds the wait for a change event ack on the request path.
	PublishTimeout time.Duration `env:"PUBSUB_PUBLISH_TIMEOUT" envDefault:"2s"`
}

// Load reads an optional .env file and parses the environment into a Config.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverPostgres, c.StoreDriver)
	}
	if c.PubSub.Enabled && c.PubSub.ProjectID == "" {
		return errors.New("PUBSUB_PROJECT_ID is required when PUBSUB_ENABLED is true")
	}
	if c.OTelSampleRatio <= 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLE_RATIO must be in (0, 1], got %g", c.OTelSampleRatio)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
