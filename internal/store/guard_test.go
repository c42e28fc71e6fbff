package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriguide/nutriguide/internal/store"
)

type netError struct{}

func (netError) Error() string   { return "connection refused" }
func (netError) Timeout() bool   { return false }
func (netError) Temporary() bool { return false }

var errDomain = errors.New("row not found")

func newTestGuard(failures uint32) *store.Guard {
	cfg := store.DefaultGuardConfig("test-store")
	cfg.ConsecutiveFailures = failures
	cfg.Timeout = time.Hour
	return store.NewGuard(cfg)
}

func TestGuard_PassesThroughResults(t *testing.T) {
	g := newTestGuard(3)

	err := g.Do(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)

	err = g.Do(context.Background(), func(context.Context) error { return errDomain })
	assert.ErrorIs(t, err, errDomain)
	assert.NotErrorIs(t, err, store.ErrUnavailable)
}

func TestGuard_WrapsConnectivityErrors(t *testing.T) {
	g := newTestGuard(3)

	err := g.Do(context.Background(), func(context.Context) error { return netError{} })
	assert.ErrorIs(t, err, store.ErrUnavailable)

	var ne netError
	assert.ErrorAs(t, err, &ne)
}

func TestGuard_OpensAfterConsecutiveConnectivityFailures(t *testing.T) {
	g := newTestGuard(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = g.Do(ctx, func(context.Context) error { return netError{} })
	}
	assert.Equal(t, "open", g.State())

	called := false
	err := g.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.False(t, called, "open breaker must not reach the store")
}

func TestGuard_DomainErrorsDoNotTrip(t *testing.T) {
	g := newTestGuard(2)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		err := g.Do(ctx, func(context.Context) error { return errDomain })
		require.ErrorIs(t, err, errDomain)
	}
	assert.Equal(t, "closed", g.State())
}

func TestGuard_NilRunsDirectly(t *testing.T) {
	var g *store.Guard

	assert.Equal(t, "closed", g.State())
	assert.ErrorIs(t, g.Do(context.Background(), func(context.Context) error { return errDomain }), errDomain)
	assert.ErrorIs(t, g.Do(context.Background(), func(context.Context) error { return netError{} }), store.ErrUnavailable)
}

func TestIsConnectivityError(t *testing.T) {
	assert.False(t, store.IsConnectivityError(nil))
	assert.False(t, store.IsConnectivityError(errDomain))
	assert.True(t, store.IsConnectivityError(netError{}))
	assert.True(t, store.IsConnectivityError(store.ErrUnavailable))
}
