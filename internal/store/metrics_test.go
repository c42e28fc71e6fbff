package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/nutriguide/nutriguide/internal/store"
)

// collectCounter sums the data points of an int64 counter by one attribute.
func collectCounter(t *testing.T, reader *sdkmetric.ManualReader, name, key string) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				counts[v.AsString()] += dp.Value
			}
		}
	}
	return counts
}

func TestGuard_RecordsOperationOutcomes(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := store.NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	cfg := store.DefaultGuardConfig("test-store")
	cfg.ConsecutiveFailures = 2
	cfg.Timeout = time.Hour
	cfg.Metrics = metrics
	g := store.NewGuard(cfg)
	ctx := context.Background()

	_ = g.Do(ctx, func(context.Context) error { return nil })
	_ = g.Do(ctx, func(context.Context) error { return errDomain })
	_ = g.Do(ctx, func(context.Context) error { return netError{} })
	_ = g.Do(ctx, func(context.Context) error { return netError{} })
	_ = g.Do(ctx, func(context.Context) error { return nil })

	assert.Equal(t, map[string]int64{
		store.OutcomeOK:          1,
		store.OutcomeError:       1,
		store.OutcomeUnavailable: 2,
		store.OutcomeRejected:    1,
	}, collectCounter(t, reader, "store.operations", "outcome"))

	assert.Equal(t, map[string]int64{"open": 1},
		collectCounter(t, reader, "store.breaker.state_changes", "to"))
}

func TestNewMetrics_GlobalMeter(t *testing.T) {
	metrics, err := store.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, metrics)
}
