// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (business workflows)
//   - Coordinate between domain and infrastructure
//   - Handle cross-cutting concerns (logging)
//   - Enforce business rules that span multiple entities
//
// What does NOT belong here:
//   - HTTP/gRPC specifics (that's adapters)
//   - Storage internals (that's repository adapters)
//   - Core domain logic (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/blochwalk/blochwalk/internal/domain"
	"github.com/blochwalk/blochwalk/internal/platform/logging"
	"github.com/blochwalk/blochwalk/internal/platform/telemetry"
	"github.com/blochwalk/blochwalk/internal/ports"
)

// listConcurrency bounds summary building for walk listings.
const listConcurrency = 8

// updateRetries bounds re-reads when a concurrent writer wins the
// optimistic version race on Update.
const updateRetries = 3

// WalkService orchestrates walk session use cases.
// It depends on port interfaces, not concrete implementations.
type WalkService struct {
	repo     ports.WalkRepository
	exec     *Executor
	metrics  *telemetry.WalkMetrics
	trailCap int
	logger   *slog.Logger
	now      func() time.Time
}

// WalkServiceConfig holds optional configuration for the service.
type WalkServiceConfig struct {
	// TrailCap bounds trail length for new walks; 0 uses the domain default.
	TrailCap int

	// Metrics records walk and gate counters when non-nil.
	Metrics *telemetry.WalkMetrics

	Logger *slog.Logger

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// NewWalkService creates a walk service with the given repository.
func NewWalkService(repo ports.WalkRepository, cfg *WalkServiceConfig) *WalkService {
	logger := slog.Default()

	svc := &WalkService{
		repo: repo,
		now:  time.Now,
	}

	if cfg != nil {
		svc.trailCap = cfg.TrailCap
		svc.metrics = cfg.Metrics

		if cfg.Logger != nil {
			logger = cfg.Logger
		}

		if cfg.Clock != nil {
			svc.now = cfg.Clock
		}
	}

	svc.logger = logger.With(slog.String("component", "app.WalkService"))
	svc.exec = NewExecutor(svc.logger)

	return svc
}

// GateResult is the outcome of applying a single gate.
type GateResult struct {
	Walk *domain.Walk

	// Distance is the arc length this gate moved the state, in radians.
	Distance float64
}

// WalkSummary is a lightweight listing view of a walk.
type WalkSummary struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	Gates     int           `json:"gates"`
	Distance  float64       `json:"distance"`
	Position  domain.Vector `json:"position"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Create starts a new walk at |0⟩.
func (s *WalkService) Create(ctx context.Context, label string) (*domain.Walk, error) {
	logger := s.ctxLogger(ctx).With(slog.String("method", "Create"))

	walk := domain.NewWalk(uuid.NewString(), label, s.trailCap, s.now())

	err := s.repo.Create(ctx, walk)
	if err != nil {
		return nil, fmt.Errorf("creating walk: %w", err)
	}

	s.metrics.RecordWalkCreated(ctx)
	logger.InfoContext(ctx, "walk created", slog.String("walk_id", walk.ID))

	return walk, nil
}

// Get retrieves a walk by ID.
func (s *WalkService) Get(ctx context.Context, id string) (*domain.Walk, error) {
	walk, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting walk: %w", err)
	}

	return walk, nil
}

// appliedGate carries intermediate state through the gate operation.
type appliedGate struct {
	walk     *domain.Walk
	distance float64
}

// ApplyGate applies one gate to a walk and persists the result.
// The operation runs through the transactional pattern: the new state is
// verified to still sit on the sphere before it is archived.
func (s *WalkService) ApplyGate(ctx context.Context, id string, gate domain.Gate) (*GateResult, error) {
	op := Operation[string, appliedGate, appliedGate, *GateResult]{
		Name: "apply_gate",

		Validate: func(_ context.Context, walkID string) error {
			if walkID == "" {
				return domain.NewValidationError("id", "cannot be empty")
			}

			return nil
		},

		Perform: func(ctx context.Context, walkID string) (appliedGate, error) {
			walk, err := s.repo.Get(ctx, walkID)
			if err != nil {
				return appliedGate{}, err
			}

			dist, err := walk.Apply(gate, s.now())
			if err != nil {
				return appliedGate{}, err
			}

			return appliedGate{walk: walk, distance: dist}, nil
		},

		Verify: func(_ context.Context, _ string, performed appliedGate) (appliedGate, error) {
			v := performed.walk.State.Bloch()
			if math.Abs(v.Norm()-1) > 1e-6 {
				return appliedGate{}, fmt.Errorf("state left the sphere: |r|=%g", v.Norm())
			}

			return performed, nil
		},

		Archive: func(ctx context.Context, _ string, verified appliedGate) error {
			return s.repo.Update(ctx, verified.walk)
		},

		Respond: func(ctx context.Context, _ string, verified appliedGate) (*GateResult, error) {
			s.metrics.RecordGateApplied(ctx, gate.Name, verified.distance)

			return &GateResult{Walk: verified.walk, Distance: verified.distance}, nil
		},
	}

	// Gate application itself never conflicts, so a conflict can only be
	// the repository's version check losing a race. Re-read and replay.
	var (
		result *GateResult
		err    error
	)

	for attempt := 0; ; attempt++ {
		result, err = Execute(ctx, s.exec, op, id)
		if err == nil || !domain.IsConflict(err) || attempt >= updateRetries {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("applying gate %q: %w", gate.Name, err)
	}

	return result, nil
}

// Undo removes the last gate from a walk and persists the replayed state.
// An empty circuit is a conflict the caller sees; a version race on save
// is retried internally.
func (s *WalkService) Undo(ctx context.Context, id string) (*domain.Walk, error) {
	logger := s.ctxLogger(ctx).With(slog.String("method", "Undo"), slog.String("walk_id", id))

	walk, err := s.mutate(ctx, id, func(walk *domain.Walk) error {
		return walk.Undo(s.now())
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "gate undone", slog.Int("gates_remaining", len(walk.Circuit)))

	return walk, nil
}

// Reset returns a walk to |0⟩ and persists the cleared state.
func (s *WalkService) Reset(ctx context.Context, id string) (*domain.Walk, error) {
	logger := s.ctxLogger(ctx).With(slog.String("method", "Reset"), slog.String("walk_id", id))

	walk, err := s.mutate(ctx, id, func(walk *domain.Walk) error {
		walk.Reset(s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "walk reset")

	return walk, nil
}

// mutate runs the read-modify-write cycle for a walk. Conflicts raised by
// fn are terminal; conflicts from Update mean a concurrent writer won the
// version race, so the cycle re-reads and retries.
func (s *WalkService) mutate(ctx context.Context, id string, fn func(*domain.Walk) error) (*domain.Walk, error) {
	for attempt := 0; ; attempt++ {
		walk, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("getting walk: %w", err)
		}

		if err := fn(walk); err != nil {
			return nil, fmt.Errorf("updating walk: %w", err)
		}

		err = s.repo.Update(ctx, walk)
		if err == nil {
			return walk, nil
		}

		if !domain.IsConflict(err) || attempt >= updateRetries {
			return nil, fmt.Errorf("saving walk: %w", err)
		}
	}
}

// Delete removes a walk.
func (s *WalkService) Delete(ctx context.Context, id string) error {
	logger := s.ctxLogger(ctx).With(slog.String("method", "Delete"), slog.String("walk_id", id))

	err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting walk: %w", err)
	}

	logger.InfoContext(ctx, "walk deleted")

	return nil
}

// List returns summaries for up to limit walks after the given cursor.
func (s *WalkService) List(ctx context.Context, afterID string, limit int) ([]WalkSummary, error) {
	walks, err := s.repo.List(ctx, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing walks: %w", err)
	}

	if len(walks) == 0 {
		return nil, nil
	}

	fns := make([]func(context.Context) (WalkSummary, error), len(walks))
	for i, walk := range walks {
		fns[i] = func(context.Context) (WalkSummary, error) {
			return WalkSummary{
				ID:        walk.ID,
				Label:     walk.Label,
				Gates:     len(walk.Circuit),
				Distance:  walk.Distance,
				Position:  walk.State.Bloch(),
				CreatedAt: walk.CreatedAt,
				UpdatedAt: walk.UpdatedAt,
			}, nil
		}
	}

	summaries, err := ParallelLimit(ctx, listConcurrency, fns...)
	if err != nil {
		return nil, fmt.Errorf("building summaries: %w", err)
	}

	return summaries, nil
}

// ctxLogger prefers the request-scoped logger when one is present.
func (s *WalkService) ctxLogger(ctx context.Context) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		return s.logger
	}

	return logger
}
