// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// WalkRepository stores walk sessions. Implementations must hand out
// deep copies so callers cannot mutate stored state except through
// Update, and must enforce optimistic concurrency via Walk.Version.
type WalkRepository interface {
	// Create stores a new walk.
	// Returns domain.ErrConflict if the ID already exists.
	Create(ctx context.Context, walk *domain.Walk) error

	// Get retrieves a walk by ID.
	// Returns domain.ErrNotFound if it does not exist or has expired.
	Get(ctx context.Context, id string) (*domain.Walk, error)

	// Update replaces a stored walk. The given walk's Version must be
	// exactly one greater than the stored version; otherwise the update
	// is rejected with domain.ErrConflict and the caller should re-read
	// and retry.
	Update(ctx context.Context, walk *domain.Walk) error

	// Delete removes a walk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns up to limit walks ordered by creation time then ID,
	// starting after the walk identified by afterID (empty for the
	// first page).
	List(ctx context.Context, afterID string, limit int) ([]*domain.Walk, error)
}
