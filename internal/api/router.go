// Package api provides the HTTP API for NutriGuide.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/api/handler"
	"github.com/nutriguide/nutriguide/internal/api/middleware"
	"github.com/nutriguide/nutriguide/internal/catalog"
	"github.com/nutriguide/nutriguide/internal/dailylog"
	"github.com/nutriguide/nutriguide/internal/profile"
	"github.com/nutriguide/nutriguide/internal/store"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	ProfileService *profile.Service
	CatalogService *catalog.Service
	LogService     *dailylog.Service

	// Store is pinged by the readiness check; nil for the in-memory store.
	Store      handler.Pinger
	StoreGuard *store.Guard

	RateLimit  middleware.RateLimitConfig
	CORS       middleware.CORSConfig
	RequireTLS bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "nutriguide-api"
	}
	rateLimit := cfg.RateLimit
	if rateLimit.RequestLimit == 0 {
		rateLimit = middleware.StandardRateLimit
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.CORS(cfg.CORS))             // Browser clients
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		ServiceName: serviceName,
		Version:     cfg.Version,
		BuildTime:   cfg.BuildTime,
		Store:       cfg.Store,
		StoreGuard:  cfg.StoreGuard,
	})
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)
	foodHandler := handler.NewFoodHandler(cfg.CatalogService)
	logHandler := handler.NewLogHandler(cfg.LogService)

	r.Get("/", opsHandler.Root)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints are not rate limited so probes never see 429
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(rateLimit))
			r.Use(middleware.RequireJSON)

			r.Post("/profile", profileHandler.UpsertProfile)
			r.Get("/profile/{email}", profileHandler.GetProfile)

			r.Post("/foods", foodHandler.AddFood)
			r.Get("/foods", foodHandler.SearchFoods)

			r.Get("/log/{email}/{date}", logHandler.GetLog)
			r.Post("/log/entry", logHandler.AddEntry)
			r.Delete("/log/entry", logHandler.DeleteEntry)
		})
	})

	return r
}
