// Package render draws Bloch sphere snapshots as standalone SVG
// documents. Output is deterministic for a given input so responses
// are cacheable and testable byte for byte.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/blochwalk/blochwalk/internal/domain"
)

// Default rendering settings.
const (
	// DefaultSize is the width and height of the SVG viewport in pixels.
	DefaultSize = 480

	// MinSize and MaxSize bound caller-supplied viewport sizes.
	MinSize = 120
	MaxSize = 1600
)

// View angles match the usual textbook perspective: the z axis points
// up and the viewer looks slightly down from the front right.
const (
	azimuthDeg   = -60.0
	elevationDeg = 30.0
)

const circleSegments = 72

// Config contains settings for the renderer.
type Config struct {
	// Size is the SVG viewport size in pixels; 0 means DefaultSize.
	Size int
}

// Renderer draws Bloch sphere SVGs.
type Renderer struct {
	size float64
}

// New creates a renderer from the given config.
func New(cfg Config) *Renderer {
	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}

	size = max(MinSize, min(MaxSize, size))

	return &Renderer{size: float64(size)}
}

// Render draws the current state vector and its trail on the sphere.
// The last trail point is treated as the current position and drawn
// with the state arrow; earlier points are drawn as fading dots.
func (r *Renderer) Render(current domain.Vector, trail []domain.Vector) []byte {
	var b strings.Builder

	cx := r.size / 2
	cy := r.size / 2
	radius := r.size * 0.38

	p := projector{cx: cx, cy: cy, radius: radius}

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		int(r.size), int(r.size), int(r.size), int(r.size))
	b.WriteString("\n")

	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`)
	b.WriteString("\n")

	// Sphere outline.
	fmt.Fprintf(&b,
		`<circle cx="%s" cy="%s" r="%s" fill="#f4f7fb" stroke="#94a3b8" stroke-width="1.5"/>`,
		fnum(cx), fnum(cy), fnum(radius))
	b.WriteString("\n")

	r.writeGreatCircles(&b, p)
	r.writeAxes(&b, p)
	r.writeTrail(&b, p, trail)
	r.writeState(&b, p, current)

	b.WriteString("</svg>\n")

	return []byte(b.String())
}

// projector maps unit-sphere coordinates onto the SVG canvas with an
// orthographic projection at the package view angles.
type projector struct {
	cx, cy, radius float64
}

// project returns canvas coordinates and a depth value. Positive depth
// faces the viewer.
func (p projector) project(v domain.Vector) (x, y, depth float64) {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180

	sinAz, cosAz := math.Sincos(az)
	sinEl, cosEl := math.Sincos(el)

	u := -v.X*sinAz + v.Y*cosAz
	w := -v.X*cosAz*sinEl - v.Y*sinAz*sinEl + v.Z*cosEl
	depth = v.X*cosAz*cosEl + v.Y*sinAz*cosEl + v.Z*sinEl

	return p.cx + u*p.radius, p.cy - w*p.radius, depth
}

// writeGreatCircles draws the equator and the two principal meridians
// as sampled polylines, with the hidden half dashed.
func (r *Renderer) writeGreatCircles(b *strings.Builder, p projector) {
	circles := []func(t float64) domain.Vector{
		// Equator: z = 0.
		func(t float64) domain.Vector {
			return domain.Vector{X: math.Cos(t), Y: math.Sin(t)}
		},
		// Meridian through x.
		func(t float64) domain.Vector {
			return domain.Vector{X: math.Cos(t), Z: math.Sin(t)}
		},
		// Meridian through y.
		func(t float64) domain.Vector {
			return domain.Vector{Y: math.Cos(t), Z: math.Sin(t)}
		},
	}

	for _, circle := range circles {
		r.writeCircleHalf(b, p, circle, true)
		r.writeCircleHalf(b, p, circle, false)
	}
}

// writeCircleHalf draws the visible or hidden arc segments of one
// great circle.
func (r *Renderer) writeCircleHalf(b *strings.Builder, p projector, circle func(float64) domain.Vector, front bool) {
	var segments []string

	var current []string

	flush := func() {
		if len(current) > 1 {
			segments = append(segments, strings.Join(current, " "))
		}

		current = nil
	}

	for i := 0; i <= circleSegments; i++ {
		t := 2 * math.Pi * float64(i) / circleSegments

		x, y, depth := p.project(circle(t))
		if (depth >= 0) == front {
			current = append(current, fnum(x)+","+fnum(y))
		} else {
			flush()
		}
	}

	flush()

	style := `stroke="#64748b" stroke-width="1"`
	if !front {
		style = `stroke="#cbd5e1" stroke-width="1" stroke-dasharray="4 3"`
	}

	for _, points := range segments {
		fmt.Fprintf(b, `<polyline points="%s" fill="none" %s/>`, points, style)
		b.WriteString("\n")
	}
}

// writeAxes draws the three coordinate axes and pole labels.
func (r *Renderer) writeAxes(b *strings.Builder, p projector) {
	axes := []struct {
		dir   domain.Vector
		label string
	}{
		{domain.Vector{X: 1}, "x"},
		{domain.Vector{Y: 1}, "y"},
		{domain.Vector{Z: 1}, "|0⟩"},
		{domain.Vector{Z: -1}, "|1⟩"},
	}

	for _, axis := range axes {
		x0, y0, _ := p.project(domain.Vector{X: -axis.dir.X, Y: -axis.dir.Y, Z: -axis.dir.Z})
		x1, y1, _ := p.project(axis.dir)

		fmt.Fprintf(b,
			`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#475569" stroke-width="1"/>`,
			fnum(x0), fnum(y0), fnum(x1), fnum(y1))
		b.WriteString("\n")

		lx, ly, _ := p.project(scale(axis.dir, 1.14))

		fmt.Fprintf(b,
			`<text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="#334155" text-anchor="middle">%s</text>`,
			fnum(lx), fnum(ly+4), fnum(r.size/32), axis.label)
		b.WriteString("\n")
	}
}

// writeTrail draws past positions as dots. Older dots fade out.
func (r *Renderer) writeTrail(b *strings.Builder, p projector, trail []domain.Vector) {
	n := len(trail)
	if n < 2 {
		return
	}

	// The final trail point is the current state; skip it here.
	for i, v := range trail[:n-1] {
		x, y, depth := p.project(v)

		opacity := 0.25 + 0.55*float64(i)/float64(n-1)
		if depth < 0 {
			opacity *= 0.45
		}

		fmt.Fprintf(b,
			`<circle cx="%s" cy="%s" r="%s" fill="#7c3aed" fill-opacity="%s"/>`,
			fnum(x), fnum(y), fnum(r.size/160), fnum(opacity))
		b.WriteString("\n")
	}
}

// writeState draws the state arrow from the origin to the current
// Bloch vector, with a filled head.
func (r *Renderer) writeState(b *strings.Builder, p projector, current domain.Vector) {
	ox, oy, _ := p.project(domain.Vector{})
	x, y, _ := p.project(current)

	fmt.Fprintf(b,
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#dc2626" stroke-width="2.5"/>`,
		fnum(ox), fnum(oy), fnum(x), fnum(y))
	b.WriteString("\n")

	fmt.Fprintf(b,
		`<circle cx="%s" cy="%s" r="%s" fill="#dc2626"/>`,
		fnum(x), fnum(y), fnum(r.size/96))
	b.WriteString("\n")

	fmt.Fprintf(b,
		`<text x="%s" y="%s" font-family="monospace" font-size="%s" fill="#334155">(%s, %s, %s)</text>`,
		fnum(r.size/32), fnum(r.size-r.size/32), fnum(r.size/36),
		fnum(current.X), fnum(current.Y), fnum(current.Z))
	b.WriteString("\n")
}

// scale multiplies a vector by a scalar.
func scale(v domain.Vector, s float64) domain.Vector {
	return domain.Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// fnum formats a coordinate with fixed precision so output is stable.
func fnum(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	// Avoid "-0.00" so identical points always serialize identically.
	if s == "-0.00" {
		return "0.00"
	}

	return s
}
