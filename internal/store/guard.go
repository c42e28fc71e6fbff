// Package store guards calls to the persistence layer with a circuit breaker
// and classifies connectivity failures as ErrUnavailable.
package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned when the store is not configured or not reachable.
var ErrUnavailable = errors.New("store unavailable")

// GuardConfig holds configuration for the store circuit breaker.
type GuardConfig struct {
	// Name identifies the circuit breaker for logging.
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	// Default: 1
	MaxRequests uint32

	// Timeout is how long the breaker stays open before probing again.
	// Default: 30 seconds
	Timeout time.Duration

	// ConsecutiveFailures trips the breaker.
	// Default: 5
	ConsecutiveFailures uint32

	Logger zerolog.Logger

	// Metrics records operation outcomes and breaker transitions. Optional.
	Metrics *Metrics
}

// DefaultGuardConfig returns the default guard configuration.
func DefaultGuardConfig(name string) GuardConfig {
	return GuardConfig{
		Name:                name,
		MaxRequests:         1,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		Logger:              zerolog.Nop(),
	}
}

// Guard runs store operations through a circuit breaker.
// A nil *Guard runs operations directly, still classifying connectivity errors.
type Guard struct {
	cb      *gobreaker.CircuitBreaker[struct{}]
	metrics *Metrics
}

// NewGuard creates a new store guard.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	log := cfg.Logger
	metrics := cfg.Metrics
	threshold := cfg.ConsecutiveFailures

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only connectivity failures count against the store; not-found,
		// conflicts and constraint violations are answers from a healthy store.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsConnectivityError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state changed")
			metrics.recordStateChange(to.String())
		},
	}

	return &Guard{
		cb:      gobreaker.NewCircuitBreaker[struct{}](settings),
		metrics: metrics,
	}
}

// Do executes op through the circuit breaker.
// It returns ErrUnavailable when the breaker rejects the call, and wraps
// connectivity failures so that errors.Is(err, ErrUnavailable) holds.
func (g *Guard) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if g == nil {
		return classify(op(ctx))
	}

	start := time.Now()
	_, err := g.cb.Execute(func() (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.metrics.recordOperation(ctx, OutcomeRejected, 0)
		return ErrUnavailable
	}

	err = classify(err)
	g.metrics.recordOperation(ctx, outcomeOf(err), time.Since(start))
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

// State reports the breaker state name.
func (g *Guard) State() string {
	if g == nil {
		return gobreaker.StateClosed.String()
	}
	return g.cb.State().String()
}

// IsConnectivityError reports whether err means the store could not be reached.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func classify(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	if IsConnectivityError(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
