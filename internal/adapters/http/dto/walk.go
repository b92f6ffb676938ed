package dto

import (
	"time"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// Request DTOs

// CreateWalkRequest is the request body for starting a new walk.
type CreateWalkRequest struct {
	// Label is an optional human-readable name for the session.
	Label string `json:"label" validate:"omitempty,max=120"`
}

// ApplyGateRequest is the request body for applying one gate.
// Angles are given in degrees; θ is accepted in [-180, 180] and
// φ in [-360, 360].
type ApplyGateRequest struct {
	Gate     string   `json:"gate"     validate:"required,notempty"`
	ThetaDeg *float64 `json:"thetaDeg" validate:"omitempty,gte=-180,lte=180"`
	PhiDeg   *float64 `json:"phiDeg"   validate:"omitempty,gte=-360,lte=360"`
}

// Validate implements Validatable with gate-specific angle rules that
// struct tags cannot express.
func (r *ApplyGateRequest) Validate() error {
	if !domain.IsGateName(r.Gate) {
		return domain.NewValidationError("gate", "unknown gate name")
	}

	if domain.RequiresTheta(r.Gate) && r.ThetaDeg == nil {
		return domain.NewValidationError("thetaDeg", "required for gate "+r.Gate)
	}

	if !domain.RequiresTheta(r.Gate) && r.ThetaDeg != nil {
		return domain.NewValidationError("thetaDeg", "not accepted for gate "+r.Gate)
	}

	if domain.RequiresPhi(r.Gate) && r.PhiDeg == nil {
		return domain.NewValidationError("phiDeg", "required for gate "+r.Gate)
	}

	if !domain.RequiresPhi(r.Gate) && r.PhiDeg != nil {
		return domain.NewValidationError("phiDeg", "not accepted for gate "+r.Gate)
	}

	return nil
}

// ToGate converts the request into a domain gate. Angles are converted
// from degrees to radians.
func (r *ApplyGateRequest) ToGate() (domain.Gate, error) {
	var theta, phi float64

	if r.ThetaDeg != nil {
		theta = domain.Radians(*r.ThetaDeg)
	}

	if r.PhiDeg != nil {
		phi = domain.Radians(*r.PhiDeg)
	}

	return domain.NewGate(r.Gate, theta, phi)
}

// Response DTOs

// Complex is a JSON-friendly complex number.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// NewComplex converts a complex128 to its DTO form.
func NewComplex(c complex128) Complex {
	return Complex{Re: real(c), Im: imag(c)}
}

// StateResponse describes a qubit state in every representation the UI
// needs: amplitudes, Bloch coordinates, angles and probabilities.
type StateResponse struct {
	Alpha    Complex       `json:"alpha"`
	Beta     Complex       `json:"beta"`
	Position domain.Vector `json:"position"`
	ThetaDeg float64       `json:"thetaDeg"`
	PhiDeg   float64       `json:"phiDeg"`
	ProbZero float64       `json:"probZero"`
	ProbOne  float64       `json:"probOne"`
}

// NewStateResponse builds a state response from a domain state.
func NewStateResponse(s domain.State) StateResponse {
	theta, phi := s.Angles()
	p0, p1 := s.Probabilities()

	return StateResponse{
		Alpha:    NewComplex(s.Alpha),
		Beta:     NewComplex(s.Beta),
		Position: s.Bloch(),
		ThetaDeg: domain.Degrees(theta),
		PhiDeg:   domain.Degrees(phi),
		ProbZero: p0,
		ProbOne:  p1,
	}
}

// WalkResponse is the full representation of a walk session.
type WalkResponse struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	State     StateResponse `json:"state"`
	Gates     int           `json:"gates"`
	Distance  float64       `json:"distance"`
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewWalkResponse builds a walk response from a domain walk.
func NewWalkResponse(w *domain.Walk) *WalkResponse {
	return &WalkResponse{
		ID:        w.ID,
		Label:     w.Label,
		State:     NewStateResponse(w.State),
		Gates:     len(w.Circuit),
		Distance:  w.Distance,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// GateAppliedResponse is returned after applying a gate. It extends the
// walk representation with the distance this step moved the state.
type GateAppliedResponse struct {
	WalkResponse

	StepDistance float64 `json:"stepDistance"`
}

// NewGateAppliedResponse builds the response for a gate application.
func NewGateAppliedResponse(w *domain.Walk, stepDistance float64) *GateAppliedResponse {
	return &GateAppliedResponse{
		WalkResponse: *NewWalkResponse(w),
		StepDistance: stepDistance,
	}
}

// TrailResponse lists the Bloch points a walk has visited, oldest first.
type TrailResponse struct {
	WalkID string          `json:"walkId"`
	Points []domain.Vector `json:"points"`
	Count  int             `json:"count"`
}

// NewTrailResponse builds a trail response from a domain walk.
func NewTrailResponse(w *domain.Walk) *TrailResponse {
	return &TrailResponse{
		WalkID: w.ID,
		Points: w.Trail,
		Count:  len(w.Trail),
	}
}

// StepResponse is one gate in a circuit listing.
type StepResponse struct {
	Gate      string    `json:"gate"`
	ThetaDeg  float64   `json:"thetaDeg,omitempty"`
	PhiDeg    float64   `json:"phiDeg,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
}

// CircuitResponse lists the gates applied to a walk, in order, with a
// single-wire text diagram.
type CircuitResponse struct {
	WalkID  string         `json:"walkId"`
	Diagram string         `json:"diagram"`
	Steps   []StepResponse `json:"steps"`
}

// NewCircuitResponse builds a circuit response from a domain walk.
func NewCircuitResponse(w *domain.Walk) *CircuitResponse {
	steps := make([]StepResponse, 0, len(w.Circuit))
	for _, s := range w.Circuit {
		steps = append(steps, StepResponse{
			Gate:      s.Gate,
			ThetaDeg:  s.ThetaDeg,
			PhiDeg:    s.PhiDeg,
			AppliedAt: s.AppliedAt,
		})
	}

	return &CircuitResponse{WalkID: w.ID, Diagram: w.Diagram(), Steps: steps}
}

// GateInfoResponse describes one gate in the catalog.
type GateInfoResponse struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	TakesTheta bool          `json:"takesTheta"`
	TakesPhi   bool          `json:"takesPhi"`
	Matrix     [2][2]Complex `json:"matrix"`
}

// NewGateInfoResponse builds a catalog entry from domain gate info.
func NewGateInfoResponse(info domain.GateInfo) GateInfoResponse {
	var m [2][2]Complex
	for i := range 2 {
		for j := range 2 {
			m[i][j] = NewComplex(info.Matrix[i][j])
		}
	}

	return GateInfoResponse{
		Name:       info.Name,
		Title:      info.Title,
		TakesTheta: info.TakesTheta,
		TakesPhi:   info.TakesPhi,
		Matrix:     m,
	}
}

// GateCatalogResponse lists every supported gate.
type GateCatalogResponse struct {
	Gates []GateInfoResponse `json:"gates"`
}

// WalkSummaryResponse is a compact listing entry for GET /walks.
type WalkSummaryResponse struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	Gates     int           `json:"gates"`
	Distance  float64       `json:"distance"`
	Position  domain.Vector `json:"position"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
