// Package memory provides an in-memory WalkRepository. Walks are
// ephemeral teaching sessions, so process-lifetime storage with TTL
// expiry is the intended production behavior, not a stand-in.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// Default store settings.
const (
	// DefaultTTL is how long a walk survives without activity.
	DefaultTTL = 2 * time.Hour

	// DefaultSweepInterval is how often expired walks are evicted.
	DefaultSweepInterval = 5 * time.Minute
)

// Config contains settings for the in-memory store.
type Config struct {
	// TTL is the idle lifetime of a walk; 0 means DefaultTTL.
	TTL time.Duration

	// SweepInterval is the eviction period; 0 means DefaultSweepInterval.
	SweepInterval time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Store is a thread-safe, TTL-evicting WalkRepository.
type Store struct {
	mu     sync.RWMutex
	walks  map[string]*entry
	ttl    time.Duration
	sweep  time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// entry pairs a stored walk with its last-touched time.
type entry struct {
	walk    *domain.Walk
	touched time.Time
}

// New creates a store from the given config.
func New(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Store{
		walks:  make(map[string]*entry),
		ttl:    cfg.TTL,
		sweep:  cfg.SweepInterval,
		logger: logger.With(slog.String("component", "memory.Store")),
		now:    now,
	}
}

// Run evicts expired walks until ctx is canceled. Call in a goroutine.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.evictExpired()
			if evicted > 0 {
				s.logger.InfoContext(ctx, "evicted expired walks",
					slog.Int("count", evicted),
				)
			}
		}
	}
}

// Create stores a new walk.
func (s *Store) Create(_ context.Context, walk *domain.Walk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.walks[walk.ID]; ok && !s.expired(e) {
		return domain.NewConflictError("walk", "id already exists")
	}

	s.walks[walk.ID] = &entry{walk: walk.Clone(), touched: s.now()}

	return nil
}

// Get retrieves a walk by ID. Expired walks behave as missing.
func (s *Store) Get(_ context.Context, id string) (*domain.Walk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.walks[id]
	if !ok || s.expired(e) {
		return nil, domain.NewNotFoundError("walk", id)
	}

	return e.walk.Clone(), nil
}

/// Update replaces a stored walk with optimistic concurrency control:
// the incoming version must be exactly stored version + 1.
func (s *Store) Update(_ context.Context, walk *domain.Walk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.walks[walk.ID]
	if !ok || s.expired(e) {
		return domain.NewNotFoundError("walk", walk.ID)
	}

	if walk.Version != e.walk.Version+1 {
		return domain.NewConflictErrorWithDetails("walk", "version mismatch",
			"concurrent modification, re-read and retry")
	}

	s.walks[walk.ID] = &entry{walk: walk.Clone(), touched: s.now()}

	return nil
}

// Delete removes a walk by ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.walks[id]
	if !ok || s.expired(e) {
		return domain.NewNotFoundError("walk", id)
	}

	delete(s.walks, id)

	return nil
}

// List returns up to limit live walks ordered by creation time then ID,
// starting after afterID.
func (s *Store) List(_ context.Context, afterID string, limit int) ([]*domain.Walk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := make([]*domain.Walk, 0, len(s.walks))
	for _, e := range s.walks {
		if !s.expired(e) {
			live = append(live, e.walk)
		}
	}

	sort.Slice(live, func(i, j int) bool {
		if !live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].CreatedAt.Before(live[j].CreatedAt)
		}

		return live[i].ID < live[j].ID
	})

	start := 0

	if afterID != "" {
		for i, w := range live {
			if w.ID == afterID {
				start = i + 1
				break
			}
		}
	}

	if start >= len(live) {
		return nil, nil
	}

	end := min(start+limit, len(live))

	out := make([]*domain.Walk, 0, end-start)
	for _, w := range live[start:end] {
		out = append(out, w.Clone())
	}

	return out, nil
}

// Len returns the number of live walks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.walks {
		if !s.expired(e) {
			n++
		}
	}

	return n
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *Store) Name() string {
	return "walk-store"
}

// Check reports store health. The in-memory store is healthy as long as
// the process runs; the check exists so the readiness payload reports
// session counts alongside real dependency checks.
// Implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// expired reports whether the entry has passed its TTL.
func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.touched) > s.ttl
}

// evictExpired removes expired entries and returns how many were dropped.
func (s *Store) evictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0

	for id, e := range s.walks {
		if s.expired(e) {
			delete(s.walks, id)
			evicted++
		}
	}

	return evicted
}
