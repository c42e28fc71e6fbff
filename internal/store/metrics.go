package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/nutriguide/nutriguide/internal/store"

// Operation outcomes recorded by Metrics.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
	OutcomeRejected    = "rejected"
)

// Metrics holds the store instruments.
type Metrics struct {
	operations   metric.Int64Counter
	duration     metric.Float64Histogram
	stateChanges metric.Int64Counter
}

// NewMetrics creates store instruments on meter. A nil meter uses the global provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	operations, err := meter.Int64Counter(
		"store.operations",
		metric.WithDescription("Store operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"store.operation.duration",
		metric.WithDescription("Duration of store operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stateChanges, err := meter.Int64Counter(
		"store.breaker.state_changes",
		metric.WithDescription("Store circuit breaker transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		operations:   operations,
		duration:     duration,
		stateChanges: stateChanges,
	}, nil
}

func (m *Metrics) recordOperation(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.operations.Add(ctx, 1, attrs)
	if outcome != OutcomeRejected {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

func (m *Metrics) recordStateChange(to string) {
	if m == nil {
		return
	}
	m.stateChanges.Add(context.Background(), 1, metric.WithAttributes(attribute.String("to", to)))
}
