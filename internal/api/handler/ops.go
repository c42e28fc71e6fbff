// Package handler provides HTTP handlers for the NutriGuide API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/api/response"
	"github.com/nutriguide/nutriguide/internal/store"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsConfig holds dependencies for the ops handler.
type OpsConfig struct {
	ServiceName string
	Version     string
	BuildTime   string

	// Store is pinged by the readiness check. Nil means the store is in memory.
	Store      Pinger
	StoreGuard *store.Guard

	// PingTimeout bounds the readiness ping. Default: 2 seconds
	PingTimeout time.Duration
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	if cfg.PingTimeout == 0 {
		cfg.PingTimeout = 2 * time.Second
	}
	return &OpsHandler{cfg: cfg}
}

// Root handles GET / - service banner.
func (h *OpsHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.ServiceInfo{
		Service: h.cfg.ServiceName,
		Version: h.cfg.Version,
		Status:  "running",
	})
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - store connectivity check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	storeStatus := models.SubsystemStatus{Name: "store", Status: models.HealthStatusOK}

	if h.cfg.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.cfg.PingTimeout)
		defer cancel()

		if err := h.cfg.Store.Ping(ctx); err != nil {
			detail := err.Error()
			storeStatus.Status = models.HealthStatusFail
			storeStatus.Detail = &detail
		}
	} else {
		detail := "in-memory"
		storeStatus.Detail = &detail
	}

	breaker := models.SubsystemStatus{Name: "store-circuit-breaker", Status: models.HealthStatusOK}
	if state := h.cfg.StoreGuard.State(); state != "closed" {
		breaker.Status = models.HealthStatusDegraded
		breaker.Detail = &state
	}

	readiness := models.Readiness{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{storeStatus, breaker},
	}

	status := http.StatusOK
	if storeStatus.Status == models.HealthStatusFail {
		readiness.Status = models.HealthStatusFail
		status = http.StatusServiceUnavailable
	} else if breaker.Status != models.HealthStatusOK {
		readiness.Status = models.HealthStatusDegraded
	}

	response.JSON(w, r, status, readiness)
}
