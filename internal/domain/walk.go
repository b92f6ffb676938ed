package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTrailCap bounds the number of trail points retained per walk.
// Dropping old points does not affect the accumulated distance.
const DefaultTrailCap = 512

// Step is one applied gate in a walk's circuit, recorded left to right.
// Angles are stored in degrees, matching what the user entered.
type Step struct {
	Gate      string    `json:"gate"`
	ThetaDeg  float64   `json:"thetaDeg,omitempty"`
	PhiDeg    float64   `json:"phiDeg,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
}

// Walk is one interactive session around the Bloch sphere: a qubit state,
// the circuit that produced it, the trail of visited points and the total
// great-circle distance travelled.
type Walk struct {
	ID    string
	Label string

	State    State
	Circuit  []Step
	Trail    []Vector
	Distance float64

	// TrailCap bounds len(Trail); 0 means DefaultTrailCap.
	TrailCap int

	// Version increments on every mutation. The repository uses it for
	// optimistic concurrency control.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWalk creates a walk initialized to |0⟩ with the pole as its first
// trail point.
func NewWalk(id, label string, trailCap int, now time.Time) *Walk {
	if trailCap <= 0 {
		trailCap = DefaultTrailCap
	}

	w := &Walk{
		ID:        id,
		Label:     label,
		State:     ZeroState(),
		TrailCap:  trailCap,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.Trail = []Vector{w.State.Bloch()}

	return w
}

// Apply applies g to the walk's state, appends the new Bloch point to the
// trail and accumulates the step's arc distance. Returns that distance.
func (w *Walk) Apply(g Gate, now time.Time) (float64, error) {
	from := w.State.Bloch()

	next, err := w.State.Apply(g)
	if err != nil {
		return 0, err
	}

	to := next.Bloch()
	dist := ArcDistance(from, to)

	w.State = next
	w.Distance += dist
	w.appendTrail(to)
	w.Circuit = append(w.Circuit, Step{
		Gate:      g.Name,
		ThetaDeg:  Degrees(g.Theta),
		PhiDeg:    Degrees(g.Phi),
		AppliedAt: now,
	})
	w.touch(now)

	return dist, nil
}

// Undo removes the last applied gate and rebuilds the walk by replaying
// the remaining circuit from |0⟩. Trail and distance are recomputed; the
// trail cap still applies. Returns a conflict error on an empty circuit.
func (w *Walk) Undo(now time.Time) error {
	if len(w.Circuit) == 0 {
		return NewConflictError("walk", "no gates to undo")
	}

	remaining := w.Circuit[:len(w.Circuit)-1]

	if err := w.replay(remaining); err != nil {
		return err
	}

	w.touch(now)

	return nil
}

// Reset returns the walk to |0⟩ and clears circuit, trail and distance.
func (w *Walk) Reset(now time.Time) {
	w.State = ZeroState()
	w.Circuit = nil
	w.Trail = []Vector{w.State.Bloch()}
	w.Distance = 0
	w.touch(now)
}

// replay rebuilds state, trail and distance from |0⟩ through the given
// steps. The walk is only mutated if every step replays cleanly.
func (w *Walk) replay(steps []Step) error {
	state := ZeroState()
	trail := []Vector{state.Bloch()}

	var distance float64

	for _, step := range steps {
		g, err := NewGate(step.Gate, Radians(step.ThetaDeg), Radians(step.PhiDeg))
		if err != nil {
			return err
		}

		from := state.Bloch()

		state, err = state.Apply(g)
		if err != nil {
			return err
		}

		to := state.Bloch()
		distance += ArcDistance(from, to)
		trail = append(trail, to)
	}

	if len(trail) > w.trailCap() {
		trail = trail[len(trail)-w.trailCap():]
	}

	w.State = state
	w.Trail = trail
	w.Distance = distance
	w.Circuit = append([]Step(nil), steps...)

	return nil
}

// Diagram renders the circuit as a single-wire text diagram, gates left
// to right from |0⟩.
func (w *Walk) Diagram() string {
	var b strings.Builder

	b.WriteString("|0⟩")

	for _, s := range w.Circuit {
		b.WriteString("─[")
		b.WriteString(stepLabel(s))
		b.WriteString("]")
	}

	b.WriteString("─")

	return b.String()
}

// stepLabel formats one circuit step, e.g. "H", "RX(90°)" or "R(90°,45°)".
func stepLabel(s Step) string {
	label := strings.ToUpper(s.Gate)

	takesTheta := RequiresTheta(s.Gate)
	takesPhi := RequiresPhi(s.Gate)

	switch {
	case takesTheta && takesPhi:
		return label + "(" + formatDeg(s.ThetaDeg) + "," + formatDeg(s.PhiDeg) + ")"
	case takesTheta:
		return label + "(" + formatDeg(s.ThetaDeg) + ")"
	case takesPhi:
		return label + "(" + formatDeg(s.PhiDeg) + ")"
	default:
		return label
	}
}

func formatDeg(deg float64) string {
	return strconv.FormatFloat(deg, 'g', 6, 64) + "°"
}

// appendTrail adds a point, evicting the oldest beyond the cap.
func (w *Walk) appendTrail(v Vector) {
	w.Trail = append(w.Trail, v)
	if len(w.Trail) > w.trailCap() {
		w.Trail = w.Trail[len(w.Trail)-w.trailCap():]
	}
}

func (w *Walk) trailCap() int {
	if w.TrailCap <= 0 {
		return DefaultTrailCap
	}

	return w.TrailCap
}

// touch bumps version and updated time after a mutation.
func (w *Walk) touch(now time.Time) {
	w.Version++
	w.UpdatedAt = now
}

// Clone returns a deep copy. Repositories hand out clones so callers
// cannot mutate stored state without going through Update.
func (w *Walk) Clone() *Walk {
	c := *w
	c.Circuit = append([]Step(nil), w.Circuit...)
	c.Trail = append([]Vector(nil), w.Trail...)

	return &c
}
