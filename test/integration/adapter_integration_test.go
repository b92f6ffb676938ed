//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blochwalk/blochwalk/internal/adapters/clients"
	"github.com/blochwalk/blochwalk/internal/adapters/clients/walkapi"
	bwhttp "github.com/blochwalk/blochwalk/internal/adapters/http"
	"github.com/blochwalk/blochwalk/internal/adapters/http/handlers"
	"github.com/blochwalk/blochwalk/internal/adapters/render"
	"github.com/blochwalk/blochwalk/internal/adapters/store/memory"
	"github.com/blochwalk/blochwalk/internal/app"
	"github.com/blochwalk/blochwalk/internal/domain"
	"github.com/blochwalk/blochwalk/internal/platform/config"
	"github.com/blochwalk/blochwalk/internal/ports"
)

// startWalkServer boots the full HTTP stack against an in-memory store
// and returns a walkapi client pointed at it.
func startWalkServer(t *testing.T) *walkapi.Client {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.New(memory.Config{Logger: logger})
	service := app.NewWalkService(store, &app.WalkServiceConfig{Logger: logger})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	engine := gin.New()
	bwhttp.SetupRouter(engine, bwhttp.RouterConfig{
		Logger:        logger,
		AppConfig:     &config.AppConfig{Name: "blochwalk", Version: "test", Environment: "test"},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		WalkHandler:   handlers.NewWalkHandler(service, render.New(render.Config{})),
		GatesHandler:  handlers.NewGatesHandler(),
		Timeout:       10 * time.Second,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	base, err := clients.New(&clients.Config{
		BaseURL:     srv.URL,
		ServiceName: "walk-service",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   10,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
		Logger: logger,
	})
	require.NoError(t, err)

	return walkapi.New(walkapi.Config{Client: base, Logger: logger})
}

// TestWalkAPI_Lifecycle_Integration drives a walk end to end through
// the real router and translates every response back through the client.
func TestWalkAPI_Lifecycle_Integration(t *testing.T) {
	client := startWalkServer(t)
	ctx := context.Background()

	walk, err := client.CreateWalk(ctx, "integration")
	require.NoError(t, err)
	assert.NotEmpty(t, walk.ID)
	assert.Equal(t, "integration", walk.Label)
	assert.InDelta(t, 1.0, walk.State.Position.Z, 1e-9)

	theta := 90.0
	result, err := client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{Gate: "rx", ThetaDeg: &theta})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Gates)
	assert.InDelta(t, 1.5707963, result.StepDistance, 1e-6)
	assert.InDelta(t, -1.0, result.State.Position.Y, 1e-9)

	_, err = client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{Gate: "h"})
	require.NoError(t, err)

	circuit, err := client.GetCircuit(ctx, walk.ID)
	require.NoError(t, err)
	require.Len(t, circuit.Steps, 2)
	assert.Equal(t, "rx", circuit.Steps[0].Gate)
	assert.Equal(t, "h", circuit.Steps[1].Gate)

	trail, err := client.GetTrail(ctx, walk.ID)
	require.NoError(t, err)
	assert.Len(t, trail.Points, 3)

	undone, err := client.UndoGate(ctx, walk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, undone.Gates)

	reset, err := client.ResetWalk(ctx, walk.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.Gates)
	assert.InDelta(t, 1.0, reset.State.Position.Z, 1e-9)

	require.NoError(t, client.DeleteWalk(ctx, walk.ID))

	_, err = client.GetWalk(ctx, walk.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

// TestWalkAPI_ErrorMapping_Integration verifies HTTP error responses
// come back as the matching domain errors.
func TestWalkAPI_ErrorMapping_Integration(t *testing.T) {
	client := startWalkServer(t)
	ctx := context.Background()

	t.Run("unknown walk maps to not found", func(t *testing.T) {
		_, err := client.GetWalk(ctx, "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("unknown gate maps to validation", func(t *testing.T) {
		walk, err := client.CreateWalk(ctx, "")
		require.NoError(t, err)

		_, err = client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{Gate: "cnot"})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("missing angle maps to validation", func(t *testing.T) {
		walk, err := client.CreateWalk(ctx, "")
		require.NoError(t, err)

		_, err = client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{Gate: "rz"})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("undo on empty circuit maps to conflict", func(t *testing.T) {
		walk, err := client.CreateWalk(ctx, "")
		require.NoError(t, err)

		_, err = client.UndoGate(ctx, walk.ID)
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})
}

// TestWalkAPI_Listing_Integration pages through walks with cursors.
func TestWalkAPI_Listing_Integration(t *testing.T) {
	client := startWalkServer(t)
	ctx := context.Background()

	for range 5 {
		_, err := client.CreateWalk(ctx, "page-test")
		require.NoError(t, err)
	}

	page, err := client.ListWalks(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, page.Walks, 3)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.NextCursor)

	rest, err := client.ListWalks(ctx, page.NextCursor, 3)
	require.NoError(t, err)
	assert.Len(t, rest.Walks, 2)
	assert.False(t, rest.HasMore)
}

func TestWalkAPI_BlochSVG_Integration(t *testing.T) {
	client := startWalkServer(t)
	ctx := context.Background()

	walk, err := client.CreateWalk(ctx, "")
	require.NoError(t, err)

	_, err = client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{Gate: "h"})
	require.NoError(t, err)

	svg, err := client.BlochSVG(ctx, walk.ID)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestWalkAPI_GateCatalog_Integration(t *testing.T) {
	client := startWalkServer(t)

	gates, err := client.ListGates(context.Background())
	require.NoError(t, err)
	assert.Len(t, gates, len(domain.Catalog()))
}

func TestWalkAPI_HealthCheck_Integration(t *testing.T) {
	client := startWalkServer(t)

	assert.NoError(t, client.Check(context.Background()))
	assert.Equal(t, "walk-service", client.Name())
}
