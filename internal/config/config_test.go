package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriguide/nutriguide/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.StoreBreakerTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.PubSub.Enabled)
	assert.Equal(t, 2*time.Second, cfg.PubSub.PublishTimeout)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RequireTLS)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_CONN_MAX_LIFETIME", "10m")
	t.Setenv("PUBSUB_ENABLED", "true")
	t.Setenv("PUBSUB_PROJECT_ID", "nutriguide-dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.nutriguide.app,https://admin.nutriguide.app")
	t.Setenv("REQUIRE_TLS", "true")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, config.DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.PubSub.Enabled)
	assert.Equal(t, "nutriguide-dev", cfg.PubSub.ProjectID)
	assert.Equal(t, []string{"https://app.nutriguide.app", "https://admin.nutriguide.app"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RequireTLS)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=production\nRATE_LIMIT_PER_MINUTE=30\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("RATE_LIMIT_PER_MINUTE")
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "pubsub without project", env: map[string]string{"PUBSUB_ENABLED": "true"}},
		{name: "zero rate limit", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}},
		{name: "sample ratio above one", env: map[string]string{"OTEL_TRACES_SAMPLE_RATIO": "1.5"}},
		{name: "bad duration", env: map[string]string{"STORE_BREAKER_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
