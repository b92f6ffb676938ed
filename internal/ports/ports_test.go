package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker is a configurable health checker for tests.
type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return s.err
}

func TestHealthRegistry_Register(t *testing.T) {
	reg := NewHealthRegistry()

	require.NoError(t, reg.Register(&stubChecker{name: "store"}))
	require.NoError(t, reg.Register(&stubChecker{name: "renderer"}))

	err := reg.Register(&stubChecker{name: "store"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateChecker)
}

func TestHealthRegistry_CheckAll_Empty(t *testing.T) {
	reg := NewHealthRegistry()

	result := reg.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestHealthRegistry_CheckAll_AllHealthy(t *testing.T) {
	reg := NewHealthRegistry()
	require.NoError(t, reg.Register(&stubChecker{name: "store"}))
	require.NoError(t, reg.Register(&stubChecker{name: "renderer"}))

	result := reg.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	require.Len(t, result.Checks, 2)
	assert.Equal(t, HealthStatusHealthy, result.Checks["store"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["renderer"].Status)
}

func TestHealthRegistry_CheckAll_OneUnhealthy(t *testing.T) {
	reg := NewHealthRegistry()
	require.NoError(t, reg.Register(&stubChecker{name: "store"}))
	require.NoError(t, reg.Register(&stubChecker{name: "broken", err: errors.New("boom")}))

	result := reg.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["store"].Status)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["broken"].Status)
	assert.Equal(t, "boom", result.Checks["broken"].Message)
}

func TestHealthRegistry_CheckAll_RespectsContext(t *testing.T) {
	reg := NewHealthRegistry()
	require.NoError(t, reg.Register(&stubChecker{name: "slow", delay: time.Second}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result := reg.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow"].Message, "context deadline exceeded")
}
