// Package domain contains core business entities and rules.
package domain

import (
	"fmt"
	"math"
	"math/cmplx"
)

// NormTolerance is the maximum deviation from unit norm a state may carry
// after renormalization. Unitary gate application preserves the norm
// algebraically, so anything beyond float drift indicates corruption.
const NormTolerance = 1e-9

// State is a single-qubit pure state |ψ⟩ = α|0⟩ + β|1⟩.
// Valid states satisfy |α|² + |β|² = 1. The zero value is NOT a valid
// state; use ZeroState to obtain |0⟩.
type State struct {
	// Alpha is the |0⟩ amplitude.
	Alpha complex128

	// Beta is the |1⟩ amplitude.
	Beta complex128
}

// ZeroState returns |0⟩, the north pole of the Bloch sphere.
func ZeroState() State {
	return State{Alpha: 1, Beta: 0}
}

// NewState builds a normalized, canonicalized state from raw amplitudes.
// Returns a validation error if both amplitudes are (near) zero.
func NewState(alpha, beta complex128) (State, error) {
	s := State{Alpha: alpha, Beta: beta}
	if s.Norm() < NormTolerance {
		return State{}, NewValidationError("state", "amplitudes must not both be zero")
	}

	return s.normalized().canonical(), nil
}

// Norm returns ‖ψ‖ = sqrt(|α|² + |β|²).
func (s State) Norm() float64 {
	return math.Sqrt(real(s.Alpha)*real(s.Alpha) + imag(s.Alpha)*imag(s.Alpha) +
		real(s.Beta)*real(s.Beta) + imag(s.Beta)*imag(s.Beta))
}

// Apply returns the state after applying the unitary g.
// The result is renormalized to absorb float drift and canonicalized so
// the global phase is fixed. Returns an error if the post-application norm
// deviates beyond NormTolerance, which indicates a non-unitary matrix.
func (s State) Apply(g Gate) (State, error) {
	next := State{
		Alpha: g.U[0][0]*s.Alpha + g.U[0][1]*s.Beta,
		Beta:  g.U[1][0]*s.Alpha + g.U[1][1]*s.Beta,
	}

	norm := next.Norm()
	if math.Abs(norm-1) > 1e-6 {
		return State{}, fmt.Errorf("gate %q broke the unit-norm invariant (norm=%g)", g.Name, norm)
	}

	return next.normalized().canonical(), nil
}

// normalized scales the state to unit norm.
func (s State) normalized() State {
	n := complex(s.Norm(), 0)

	return State{Alpha: s.Alpha / n, Beta: s.Beta / n}
}

// canonical rotates out the global phase so that α is real and
// non-negative. When α vanishes the phase is fixed on β instead.
// Global phase is unobservable, so this changes nothing physical.
func (s State) canonical() State {
	ref := s.Alpha
	if cmplx.Abs(ref) < NormTolerance {
		ref = s.Beta
	}

	phase := cmplx.Abs(ref)
	if phase == 0 {
		return s
	}

	rot := complex(phase, 0) / ref

	return State{Alpha: s.Alpha * rot, Beta: s.Beta * rot}
}

// Bloch maps the state to its point on the Bloch sphere:
//
//	x = 2·Re(α·conj(β)), y = 2·Im(β·conj(α)), z = |α|² − |β|²
func (s State) Bloch() Vector {
	ab := s.Alpha * cmplx.Conj(s.Beta)
	ba := s.Beta * cmplx.Conj(s.Alpha)

	return Vector{
		X: 2 * real(ab),
		Y: 2 * imag(ba),
		Z: real(s.Alpha*cmplx.Conj(s.Alpha)) - real(s.Beta*cmplx.Conj(s.Beta)),
	}
}

// Probabilities returns the measurement probabilities (P(0), P(1)).
func (s State) Probabilities() (float64, float64) {
	p0 := real(s.Alpha*cmplx.Conj(s.Alpha))
	p1 := real(s.Beta*cmplx.Conj(s.Beta))

	return p0, p1
}

// Angles returns the spherical coordinates (θ, φ) in radians, where
// |ψ⟩ = cos(θ/2)|0⟩ + e^{iφ} sin(θ/2)|1⟩ for the canonical form.
// θ ∈ [0, π], φ ∈ (−π, π]. φ is zero at the poles, where it is degenerate.
func (s State) Angles() (float64, float64) {
	c := s.canonical()

	cosHalf := real(c.Alpha)
	cosHalf = clamp(cosHalf, -1, 1)
	theta := 2 * math.Acos(cosHalf)

	var phi float64
	if cmplx.Abs(c.Beta) > NormTolerance && cmplx.Abs(c.Alpha) > NormTolerance {
		phi = cmplx.Phase(c.Beta)
	}

	return theta, phi
}

// ApproxEqual reports whether two states are physically equal (up to
// global phase) within tol per amplitude component.
func (s State) ApproxEqual(o State, tol float64) bool {
	a, b := s.canonical(), o.canonical()

	return cmplx.Abs(a.Alpha-b.Alpha) <= tol && cmplx.Abs(a.Beta-b.Beta) <= tol
}

// Vector is a point on (or near) the unit sphere in real 3-space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dot returns the inner product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// ArcDistance returns the great-circle distance in radians between two
// points on the unit sphere. The dot product is clamped to [−1, 1] first
// since float drift can push it out of acos's domain.
func ArcDistance(a, b Vector) float64 {
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
