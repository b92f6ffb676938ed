package domain

import (
	"math"
	"math/cmplx"
)

// Gate name constants. These are the wire-level identifiers accepted by
// the API and the CLI.
const (
	GateX   = "x"
	GateY   = "y"
	GateZ   = "z"
	GateH   = "h"
	GateS   = "s"
	GateSdg = "sdg"
	GateT   = "t"
	GateTdg = "tdg"
	GateP   = "p"
	GateR   = "r"
	GateRX  = "rx"
	GateRY  = "ry"
	GateRZ  = "rz"
)

// Matrix is a 2×2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Gate is a single-qubit unitary. Theta and Phi are in radians and are
// zero for non-parameterized gates.
type Gate struct {
	Name  string
	Theta float64
	Phi   float64
	U     Matrix
}

// invSqrt2 is 1/√2, the Hadamard normalization factor.
var invSqrt2 = complex(1/math.Sqrt2, 0)

// fixedGates maps non-parameterized gate names to their matrices.
var fixedGates = map[string]Matrix{
	GateX: {{0, 1}, {1, 0}},
	GateY: {{0, -1i}, {1i, 0}},
	GateZ: {{1, 0}, {0, -1}},
	GateH: {{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}},
	GateS: {{1, 0}, {0, 1i}},
	GateSdg: {{1, 0}, {0, -1i}},
	GateT:   {{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}},
	GateTdg: {{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}},
}

// RequiresTheta reports whether the named gate takes a θ argument.
func RequiresTheta(name string) bool {
	switch name {
	case GateR, GateRX, GateRY, GateRZ:
		return true
	default:
		return false
	}
}

// RequiresPhi reports whether the named gate takes a φ argument.
func RequiresPhi(name string) bool {
	switch name {
	case GateR, GateP:
		return true
	default:
		return false
	}
}

// IsGateName reports whether name is a supported gate identifier.
func IsGateName(name string) bool {
	if _, ok := fixedGates[name]; ok {
		return true
	}

	return RequiresTheta(name) || name == GateP
}

// NewGate builds a gate from its wire name and angle arguments in radians.
// Angles supplied to gates that do not take them are rejected, as is an
// unknown name. Zero rotations are legal: R(0, φ) is the identity.
func NewGate(name string, theta, phi float64) (Gate, error) {
	if !IsGateName(name) {
		return Gate{}, NewValidationErrorWithValue("gate", "unknown gate", name)
	}

	if theta != 0 && !RequiresTheta(name) {
		return Gate{}, NewValidationError("theta", "gate "+name+" does not take a theta argument")
	}

	if phi != 0 && !RequiresPhi(name) {
		return Gate{}, NewValidationError("phi", "gate "+name+" does not take a phi argument")
	}

	g := Gate{Name: name}

	if u, ok := fixedGates[name]; ok {
		g.U = u
		return g, nil
	}

	switch name {
	case GateP:
		g.Phi = phi
		g.U = Matrix{{1, 0}, {0, cmplx.Exp(complex(0, phi))}}

	case GateR:
		g.Theta, g.Phi = theta, phi
		g.U = rotationMatrix(theta, phi)

	case GateRX:
		g.Theta = theta
		g.U = rotationMatrix(theta, 0)

	case GateRY:
		g.Theta = theta
		g.U = rotationMatrix(theta, math.Pi/2)

	case GateRZ:
		g.Theta = theta
		g.U = Matrix{
			{cmplx.Exp(complex(0, -theta/2)), 0},
			{0, cmplx.Exp(complex(0, theta/2))},
		}
	}

	return g, nil
}

// rotationMatrix is R(θ, φ): rotation by θ about the cos(φ)x̂ + sin(φ)ŷ axis.
//
//	R(θ, φ) = [ cos(θ/2)            −i e^{−iφ} sin(θ/2) ]
//	          [ −i e^{iφ} sin(θ/2)   cos(θ/2)           ]
func rotationMatrix(theta, phi float64) Matrix {
	cos := complex(math.Cos(theta/2), 0)
	sin := complex(math.Sin(theta/2), 0)

	return Matrix{
		{cos, -1i * cmplx.Exp(complex(0, -phi)) * sin},
		{-1i * cmplx.Exp(complex(0, phi)) * sin, cos},
	}
}

// GateInfo describes a supported gate for the catalog endpoint.
type GateInfo struct {
	// Name is the wire identifier ("h", "rx", ...).
	Name string

	// Title is the human-readable name.
	Title string

	// TakesTheta and TakesPhi indicate which angle arguments apply.
	TakesTheta bool
	TakesPhi   bool

	// Matrix holds the gate's unitary. For parameterized gates a
	// representative instance is shown (θ=π for rotations, φ=π for P).
	Matrix Matrix
}

// Catalog returns the supported gates in a stable order.
func Catalog() []GateInfo {
	entries := []struct {
		name  string
		title string
	}{
		{GateX, "Pauli X"},
		{GateY, "Pauli Y"},
		{GateZ, "Pauli Z"},
		{GateH, "Hadamard"},
		{GateS, "Phase S"},
		{GateSdg, "Phase S-dagger"},
		{GateT, "Phase T"},
		{GateTdg, "Phase T-dagger"},
		{GateP, "Phase shift P(φ)"},
		{GateR, "Rotation R(θ, φ)"},
		{GateRX, "Rotation RX(θ)"},
		{GateRY, "Rotation RY(θ)"},
		{GateRZ, "Rotation RZ(θ)"},
	}

	infos := make([]GateInfo, 0, len(entries))

	for _, e := range entries {
		var theta, phi float64
		if RequiresTheta(e.name) {
			theta = math.Pi
		} else if RequiresPhi(e.name) {
			phi = math.Pi
		}

		g, _ := NewGate(e.name, theta, phi)
		infos = append(infos, GateInfo{
			Name:       e.name,
			Title:      e.title,
			TakesTheta: RequiresTheta(e.name),
			TakesPhi:   RequiresPhi(e.name),
			Matrix:     g.U,
		})
	}

	return infos
}
