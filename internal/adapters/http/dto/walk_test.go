package dto

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blochwalk/blochwalk/internal/domain"
)

func ptr(v float64) *float64 { return &v }

// TestApplyGateRequestValidate tests gate-specific angle rules.
func TestApplyGateRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       ApplyGateRequest
		wantErr   bool
		wantField string
	}{
		{
			name: "fixed gate without angles",
			req:  ApplyGateRequest{Gate: "h"},
		},
		{
			name: "phase shift with phi",
			req:  ApplyGateRequest{Gate: "p", PhiDeg: ptr(90)},
		},
		{
			name: "rx with theta",
			req:  ApplyGateRequest{Gate: "rx", ThetaDeg: ptr(45)},
		},
		{
			name:      "unknown gate",
			req:       ApplyGateRequest{Gate: "cnot"},
			wantErr:   true,
			wantField: "gate",
		},
		{
			name:      "rx missing theta",
			req:       ApplyGateRequest{Gate: "rx"},
			wantErr:   true,
			wantField: "thetaDeg",
		},
		{
			name:      "fixed gate rejects theta",
			req:       ApplyGateRequest{Gate: "x", ThetaDeg: ptr(30)},
			wantErr:   true,
			wantField: "thetaDeg",
		},
		{
			name:      "phase shift missing phi",
			req:       ApplyGateRequest{Gate: "p"},
			wantErr:   true,
			wantField: "phiDeg",
		},
		{
			name:      "fixed gate rejects phi",
			req:       ApplyGateRequest{Gate: "s", PhiDeg: ptr(10)},
			wantErr:   true,
			wantField: "phiDeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

// TestApplyGateRequestToGate tests degree-to-radian conversion.
func TestApplyGateRequestToGate(t *testing.T) {
	t.Run("converts theta degrees to radians", func(t *testing.T) {
		req := ApplyGateRequest{Gate: "rx", ThetaDeg: ptr(90)}

		gate, err := req.ToGate()
		require.NoError(t, err)

		assert.Equal(t, "rx", gate.Name)
		assert.InDelta(t, math.Pi/2, gate.Theta, 1e-12)
	})

	t.Run("converts phi degrees to radians", func(t *testing.T) {
		req := ApplyGateRequest{Gate: "p", PhiDeg: ptr(-180)}

		gate, err := req.ToGate()
		require.NoError(t, err)

		assert.Equal(t, "p", gate.Name)
		assert.InDelta(t, -math.Pi, gate.Phi, 1e-12)
	})

	t.Run("fixed gate carries no angles", func(t *testing.T) {
		req := ApplyGateRequest{Gate: "h"}

		gate, err := req.ToGate()
		require.NoError(t, err)

		assert.Equal(t, "h", gate.Name)
		assert.Zero(t, gate.Theta)
		assert.Zero(t, gate.Phi)
	})
}

// TestNewStateResponse tests conversion from a domain state.
func TestNewStateResponse(t *testing.T) {
	t.Run("initial state points to north pole", func(t *testing.T) {
		resp := NewStateResponse(domain.ZeroState())

		assert.InDelta(t, 1.0, resp.Alpha.Re, 1e-9)
		assert.InDelta(t, 0.0, resp.Beta.Re, 1e-9)
		assert.InDelta(t, 1.0, resp.Position.Z, 1e-9)
		assert.InDelta(t, 1.0, resp.ProbZero, 1e-9)
		assert.InDelta(t, 0.0, resp.ProbOne, 1e-9)
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		gate, err := domain.NewGate("h", 0, 0)
		require.NoError(t, err)

		state, err := domain.ZeroState().Apply(gate)
		require.NoError(t, err)

		resp := NewStateResponse(state)

		assert.InDelta(t, 1.0, resp.ProbZero+resp.ProbOne, 1e-9)
		assert.InDelta(t, 0.5, resp.ProbZero, 1e-9)
	})
}

// TestNewWalkResponse tests the full walk representation.
func TestNewWalkResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	walk := domain.NewWalk("walk-1", "demo", 0, now)

	gate, err := domain.NewGate("x", 0, 0)
	require.NoError(t, err)

	_, err = walk.Apply(gate, now.Add(time.Second))
	require.NoError(t, err)

	resp := NewWalkResponse(walk)

	assert.Equal(t, "walk-1", resp.ID)
	assert.Equal(t, "demo", resp.Label)
	assert.Equal(t, 1, resp.Gates)
	assert.Equal(t, walk.Version, resp.Version)
	assert.InDelta(t, math.Pi, resp.Distance, 1e-9)
	assert.InDelta(t, -1.0, resp.State.Position.Z, 1e-9)
}

// TestNewCircuitResponse tests circuit listing order and angle units.
func TestNewCircuitResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	walk := domain.NewWalk("walk-2", "", 0, now)

	h, err := domain.NewGate("h", 0, 0)
	require.NoError(t, err)
	rz, err := domain.NewGate("rz", math.Pi/2, 0)
	require.NoError(t, err)

	_, err = walk.Apply(h, now.Add(time.Second))
	require.NoError(t, err)
	_, err = walk.Apply(rz, now.Add(2*time.Second))
	require.NoError(t, err)

	resp := NewCircuitResponse(walk)

	require.Len(t, resp.Steps, 2)
	assert.Equal(t, "h", resp.Steps[0].Gate)
	assert.Equal(t, "rz", resp.Steps[1].Gate)
	assert.InDelta(t, 90.0, resp.Steps[1].ThetaDeg, 1e-9)
	assert.True(t, resp.Steps[0].AppliedAt.Before(resp.Steps[1].AppliedAt))
	assert.Equal(t, "|0⟩─[H]─[RZ(90°)]─", resp.Diagram)
}

// TestNewTrailResponse tests trail point counting.
func TestNewTrailResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	walk := domain.NewWalk("walk-3", "", 0, now)

	gate, err := domain.NewGate("h", 0, 0)
	require.NoError(t, err)
	_, err = walk.Apply(gate, now.Add(time.Second))
	require.NoError(t, err)

	resp := NewTrailResponse(walk)

	assert.Equal(t, "walk-3", resp.WalkID)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Points, 2)
}

// TestNewGateInfoResponse tests catalog entry conversion.
func TestNewGateInfoResponse(t *testing.T) {
	catalog := domain.Catalog()
	require.NotEmpty(t, catalog)

	var hadamard domain.GateInfo
	for _, info := range catalog {
		if info.Name == "h" {
			hadamard = info
		}
	}
	require.Equal(t, "h", hadamard.Name)

	resp := NewGateInfoResponse(hadamard)

	assert.Equal(t, "h", resp.Name)
	assert.False(t, resp.TakesTheta)
	assert.False(t, resp.TakesPhi)
	assert.InDelta(t, 1/math.Sqrt2, resp.Matrix[0][0].Re, 1e-9)
}
