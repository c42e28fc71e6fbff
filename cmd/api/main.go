// Package main provides the entrypoint for the NutriGuide API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/api"
	"github.com/nutriguide/nutriguide/internal/api/handler"
	"github.com/nutriguide/nutriguide/internal/api/middleware"
	"github.com/nutriguide/nutriguide/internal/catalog"
	"github.com/nutriguide/nutriguide/internal/config"
	"github.com/nutriguide/nutriguide/internal/dailylog"
	"github.com/nutriguide/nutriguide/internal/database"
	"github.com/nutriguide/nutriguide/internal/events"
	"github.com/nutriguide/nutriguide/internal/profile"
	"github.com/nutriguide/nutriguide/internal/store"
	"github.com/nutriguide/nutriguide/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "nutriguide-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting NutriGuide API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTelEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	guardCfg := store.DefaultGuardConfig("store")
	guardCfg.Timeout = cfg.StoreBreakerTimeout
	guardCfg.Logger = log
	if guardCfg.Metrics, err = store.NewMetrics(nil); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store metrics")
	}
	guard := store.NewGuard(guardCfg)

	// Select repositories for the configured store driver
	var (
		profileRepo profile.Repository
		catalogRepo catalog.Repository
		logRepo     dailylog.Repository
		pinger      handler.Pinger
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.Database).
			Msg("database connected")

		if err := database.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}

		profileRepo = profile.NewPostgresRepository(pool)
		catalogRepo = catalog.NewPostgresRepository(pool)
		logRepo = dailylog.NewPostgresRepository(pool)
		pinger = pool
	default:
		log.Warn().Msg("using in-memory store - data is lost on restart")
		profileRepo = profile.NewInMemoryRepository()
		catalogRepo = catalog.NewInMemoryRepository()
		logRepo = dailylog.NewInMemoryRepository()
	}

	// Initialize log change publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.PubSub.Enabled {
		pubsubPublisher, err := events.NewPubSubPublisher(ctx, events.PubSubConfig{
			ProjectID: cfg.PubSub.ProjectID,
			Topic:     cfg.PubSub.Topic,
			Logger:    log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub publisher")
		}
		defer func() {
			if closeErr := pubsubPublisher.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub publisher")
			}
		}()
		publisher = pubsubPublisher
		log.Info().
			Str("topic", cfg.PubSub.Topic).
			Msg("pubsub publisher initialized")
	}

	profileService := profile.NewService(profile.ServiceConfig{
		Repository: profileRepo,
		Guard:      guard,
		Logger:     log,
	})
	catalogService := catalog.NewService(catalog.ServiceConfig{
		Repository: catalogRepo,
		Guard:      guard,
		Logger:     log,
	})
	logService := dailylog.NewService(dailylog.ServiceConfig{
		Repository:     logRepo,
		Guard:          guard,
		Publisher:      publisher,
		PublishTimeout: cfg.PubSub.PublishTimeout,
		Logger:         log,
	})
	log.Info().Str("store", cfg.StoreDriver).Msg("services initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		ProfileService: profileService,
		CatalogService: catalogService,
		LogService:     logService,
		Store:          pinger,
		StoreGuard:     guard,
		RateLimit:      middleware.PerMinute(cfg.RateLimitPerMinute),
		CORS:           middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		RequireTLS:     cfg.RequireTLS,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}
