package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/dailylog"
	"github.com/nutriguide/nutriguide/internal/events"
)

// LogReconciler recomputes the stored totals of a daily log.
type LogReconciler interface {
	Reconcile(ctx context.Context, email, date string) (bool, error)
}

// Result describes how a message was handled.
type Result string

const (
	ResultReconciled Result = "reconciled"
	ResultUnchanged  Result = "unchanged"
	ResultDropped    Result = "dropped"
)

// Reconciler turns LogChanged messages into reconciliation runs.
type Reconciler struct {
	logs    LogReconciler
	logger  zerolog.Logger
	timeout time.Duration
}

// NewReconciler creates a new Reconciler.
func NewReconciler(logs LogReconciler, cfg Config, logger zerolog.Logger) *Reconciler {
	cfg = cfg.withDefaults()
	return &Reconciler{
		logs:    logs,
		logger:  logger,
		timeout: cfg.Timeout,
	}
}

// Handle processes one message body. A returned error means the message
// should be redelivered; every other outcome is final.
func (r *Reconciler) Handle(ctx context.Context, data []byte) (Result, error) {
	event, err := events.DecodeLogChanged(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("dropping malformed message")
		return ResultDropped, nil
	}
	if event.Type != events.TypeLogChanged || event.Email == "" || event.Date == "" {
		r.logger.Warn().
			Str("type", event.Type).
			Str("date", event.Date).
			Msg("dropping unexpected event")
		return ResultDropped, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	changed, err := r.logs.Reconcile(ctx, event.Email, event.Date)
	switch {
	case errors.Is(err, dailylog.ErrLogNotFound):
		r.logger.Warn().
			Str("email", event.Email).
			Str("date", event.Date).
			Msg("log from event no longer exists")
		return ResultDropped, nil
	case err != nil:
		return "", fmt.Errorf("reconcile %s/%s: %w", event.Email, event.Date, err)
	case changed:
		return ResultReconciled, nil
	default:
		return ResultUnchanged, nil
	}
}
