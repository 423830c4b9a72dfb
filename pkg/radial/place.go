package radial

import (
	"github.com/panforge/panlayout/pkg/notation"
)

// Positioned is a note with its place on the diagram. X and Y are relative to
// the shell centre with +y up; Angle and Radius are the polar form of the
// same point, and Size is the note-circle radius.
type Positioned struct {
	notation.Note
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Size   float64 `json:"size"`
}

// Screen maps the position into a y-down frame whose shell centre sits at (cx, cy).
func (p Positioned) Screen(cx, cy float64) (x, y float64) {
	return cx + p.X, cy - p.Y
}

// Option configures placement.
type Option func(*placer)

type placer struct {
	geom Geometry
}

// WithGeometry replaces [DefaultGeometry].
func WithGeometry(g Geometry) Option {
	return func(p *placer) { p.geom = g }
}

// Place positions notes around a shell of radius shellRadius. The output has
// one entry per input note in the same order. Each ring is laid out from the
// notes of its role alone, so the i-th tonal note is placed by
// TonalAngle(i, tonalCount) wherever it appears in notes.
func Place(notes []notation.Note, shellRadius float64, opts ...Option) []Positioned {
	if len(notes) == 0 {
		return nil
	}
	p := placer{geom: DefaultGeometry}
	for _, opt := range opts {
		opt(&p)
	}

	var counts [4]int
	for _, n := range notes {
		counts[ring(n.Role)]++
	}

	out := make([]Positioned, len(notes))
	var seen [4]int
	for i, n := range notes {
		role := ring(n.Role)
		idx := seen[role]
		seen[role]++

		var angle float64
		switch role {
		case notation.Ding:
			angle = south
		case notation.Mutant:
			angle = MutantAngle(idx, counts[role])
		case notation.Bottom:
			angle = BottomAngle(idx, counts[role])
		default:
			angle = TonalAngle(idx, counts[role])
		}

		r := p.geom.RingRatio(role) * shellRadius
		x, y := Polar(angle, r)
		out[i] = Positioned{
			Note:   n,
			X:      x,
			Y:      y,
			Angle:  angle,
			Radius: r,
			Size:   p.geom.SizeRatio(role) * shellRadius,
		}
	}
	return out
}

// ring maps a role to the ring it is drawn on; unknown roles join the tonal ring.
func ring(r notation.Role) notation.Role {
	if r < notation.Ding || r > notation.Bottom {
		return notation.Tonal
	}
	return r
}
