package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blochwalk/blochwalk/internal/domain"
	"github.com/blochwalk/blochwalk/internal/mocks"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedNow is the frozen clock used across service tests.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mocks.MockWalkRepository) *WalkService {
	return NewWalkService(repo, &WalkServiceConfig{
		Logger: discardLogger(),
		Clock:  func() time.Time { return fixedNow },
	})
}

func mustGate(t *testing.T, name string, theta, phi float64) domain.Gate {
	t.Helper()

	g, err := domain.NewGate(name, theta, phi)
	require.NoError(t, err)

	return g
}

func TestNewWalkService_DefaultsLogger(t *testing.T) {
	repo := mocks.NewMockWalkRepository(t)

	svc := NewWalkService(repo, nil)

	require.NotNil(t, svc)
}

func TestWalkService_Create(t *testing.T) {
	t.Run("stores a new walk at the pole", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(repo)

		walk, err := svc.Create(context.Background(), "lecture")
		require.NoError(t, err)

		assert.NotEmpty(t, walk.ID)
		assert.Equal(t, "lecture", walk.Label)
		assert.Equal(t, fixedNow, walk.CreatedAt)
		assert.InDelta(t, 1.0, walk.State.Bloch().Z, 1e-9)
		assert.Zero(t, walk.Version)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Create(mock.Anything, mock.Anything).
			Return(domain.NewUnavailableError("walk-store", "shutting down"))

		svc := newTestService(repo)

		walk, err := svc.Create(context.Background(), "")
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
		assert.Nil(t, walk)
	})
}

func TestWalkService_Get(t *testing.T) {
	t.Run("returns the stored walk", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "demo", 0, fixedNow)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)

		svc := newTestService(repo)

		walk, err := svc.Get(context.Background(), "walk-1")
		require.NoError(t, err)
		assert.Equal(t, "walk-1", walk.ID)
	})

	t.Run("wraps not found", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "nope").
			Return(nil, domain.NewNotFoundError("walk", "nope"))

		svc := newTestService(repo)

		walk, err := svc.Get(context.Background(), "nope")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
		assert.Nil(t, walk)
	})
}

func TestWalkService_ApplyGate(t *testing.T) {
	t.Run("applies the gate and persists the walk", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "", 0, fixedNow)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)
		repo.EXPECT().Update(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, walk *domain.Walk) error {
				assert.Equal(t, 1, walk.Version)
				assert.Len(t, walk.Circuit, 1)
				return nil
			})

		svc := newTestService(repo)

		result, err := svc.ApplyGate(context.Background(), "walk-1", mustGate(t, "h", 0, 0))
		require.NoError(t, err)

		assert.InDelta(t, math.Pi/2, result.Distance, 1e-9)
		assert.InDelta(t, 1.0, result.Walk.State.Bloch().X, 1e-9)
		assert.InDelta(t, math.Pi/2, result.Walk.Distance, 1e-9)
	})

	t.Run("rejects an empty walk ID before touching the store", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)

		svc := newTestService(repo)

		result, err := svc.ApplyGate(context.Background(), "", mustGate(t, "x", 0, 0))
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Nil(t, result)
	})

	t.Run("propagates missing walk", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "nope").
			Return(nil, domain.NewNotFoundError("walk", "nope"))

		svc := newTestService(repo)

		result, err := svc.ApplyGate(context.Background(), "nope", mustGate(t, "x", 0, 0))
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
		assert.Nil(t, result)
	})

	t.Run("retries after losing the version race", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "", 0, fixedNow)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").
			RunAndReturn(func(context.Context, string) (*domain.Walk, error) {
				return stored.Clone(), nil
			})
		repo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(domain.NewConflictErrorWithDetails("walk", "version mismatch",
				"concurrent modification, re-read and retry")).
			Once()
		repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()

		svc := newTestService(repo)

		result, err := svc.ApplyGate(context.Background(), "walk-1", mustGate(t, "h", 0, 0))
		require.NoError(t, err)

		assert.Len(t, result.Walk.Circuit, 1)
		assert.InDelta(t, math.Pi/2, result.Distance, 1e-9)
	})

	t.Run("propagates version conflicts from archive", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "", 0, fixedNow)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)
		repo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(domain.NewConflictError("walk", "version mismatch"))

		svc := newTestService(repo)

		result, err := svc.ApplyGate(context.Background(), "walk-1", mustGate(t, "h", 0, 0))
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.Nil(t, result)
	})
}

func TestWalkService_Undo(t *testing.T) {
	t.Run("removes the last gate and saves the replayed walk", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "", 0, fixedNow)
		_, err := stored.Apply(mustGate(t, "h", 0, 0), fixedNow)
		require.NoError(t, err)
		_, err = stored.Apply(mustGate(t, "s", 0, 0), fixedNow)
		require.NoError(t, err)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)
		repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(repo)

		walk, err := svc.Undo(context.Background(), "walk-1")
		require.NoError(t, err)

		assert.Len(t, walk.Circuit, 1)
		assert.InDelta(t, math.Pi/2, walk.Distance, 1e-9)
		assert.InDelta(t, 1.0, walk.State.Bloch().X, 1e-9)
	})

	t.Run("empty circuit yields a conflict", func(t *testing.T) {
		stored := domain.NewWalk("walk-1", "", 0, fixedNow)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)

		svc := newTestService(repo)

		walk, err := svc.Undo(context.Background(), "walk-1")
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.Nil(t, walk)
	})
}

func TestWalkService_Reset(t *testing.T) {
	stored := domain.NewWalk("walk-1", "", 0, fixedNow)
	_, err := stored.Apply(mustGate(t, "h", 0, 0), fixedNow)
	require.NoError(t, err)

	repo := mocks.NewMockWalkRepository(t)
	repo.EXPECT().Get(mock.Anything, "walk-1").Return(stored, nil)
	repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo)

	walk, err := svc.Reset(context.Background(), "walk-1")
	require.NoError(t, err)

	assert.Empty(t, walk.Circuit)
	assert.Zero(t, walk.Distance)
	assert.InDelta(t, 1.0, walk.State.Bloch().Z, 1e-9)
}

func TestWalkService_Delete(t *testing.T) {
	t.Run("deletes the walk", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Delete(mock.Anything, "walk-1").Return(nil)

		svc := newTestService(repo)

		require.NoError(t, svc.Delete(context.Background(), "walk-1"))
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().Delete(mock.Anything, "nope").
			Return(domain.NewNotFoundError("walk", "nope"))

		svc := newTestService(repo)

		err := svc.Delete(context.Background(), "nope")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestWalkService_List(t *testing.T) {
	t.Run("builds summaries for every walk", func(t *testing.T) {
		first := domain.NewWalk("walk-1", "first", 0, fixedNow)
		second := domain.NewWalk("walk-2", "second", 0, fixedNow.Add(time.Second))
		_, err := second.Apply(mustGate(t, "x", 0, 0), fixedNow.Add(2*time.Second))
		require.NoError(t, err)

		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().List(mock.Anything, "", 10).
			Return([]*domain.Walk{first, second}, nil)

		svc := newTestService(repo)

		summaries, err := svc.List(context.Background(), "", 10)
		require.NoError(t, err)

		require.Len(t, summaries, 2)
		assert.Equal(t, "walk-1", summaries[0].ID)
		assert.Equal(t, "walk-2", summaries[1].ID)
		assert.Equal(t, 1, summaries[1].Gates)
		assert.InDelta(t, math.Pi, summaries[1].Distance, 1e-9)
		assert.InDelta(t, -1.0, summaries[1].Position.Z, 1e-9)
	})

	t.Run("empty store yields no summaries", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().List(mock.Anything, "", 20).Return(nil, nil)

		svc := newTestService(repo)

		summaries, err := svc.List(context.Background(), "", 20)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := mocks.NewMockWalkRepository(t)
		repo.EXPECT().List(mock.Anything, "", 20).
			Return(nil, errors.New("store offline"))

		svc := newTestService(repo)

		summaries, err := svc.List(context.Background(), "", 20)
		require.Error(t, err)
		assert.Nil(t, summaries)
	})
}
