package radial

import (
	"math"
	"testing"

	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/pitch"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestTonalAngle(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{270}},
		{2, []float64{250, 290}},
		{3, []float64{290, 250, 90}},
		{4, []float64{270, 315, 225, 90}},
		{5, []float64{290, 250, 50, 130, 90}},
		{6, []float64{270, 315, 225, 45, 135, 90}},
		{7, []float64{290, 250, 350, 190, 50, 130, 90}},
		{8, []float64{270, 315, 225, 0, 180, 45, 135, 90}},
		{9, []float64{290, 250, 330, 210, 10, 170, 50, 130, 90}},
	}

	for _, tt := range tests {
		for i, want := range tt.want {
			if got := TonalAngle(i, tt.n); !near(got, want) {
				t.Errorf("TonalAngle(%d, %d) = %v, want %v", i, tt.n, got, want)
			}
		}
	}
}

func TestTonalAngleLastIsNorth(t *testing.T) {
	for n := 3; n <= 16; n++ {
		if got := TonalAngle(n-1, n); got != north {
			t.Errorf("TonalAngle(%d, %d) = %v, want 90", n-1, n, got)
		}
	}
}

func TestTonalAngleSymmetric(t *testing.T) {
	// Left and right partners mirror each other about the vertical axis.
	for n := 3; n <= 16; n++ {
		start := 0
		if n%2 == 0 {
			start = 1
		}
		for i := start; i+1 < n-1; i += 2 {
			r, l := TonalAngle(i, n), TonalAngle(i+1, n)
			if !near(normalize(r+l), 180) {
				t.Errorf("n=%d: angles %v and %v are not mirrored", n, r, l)
			}
		}
	}
}

func TestMutantAngle(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{90}},
		{2, []float64{55, 125}},
		{3, []float64{40, 90, 140}},
		{4, []float64{30, 70, 110, 150}},
		{5, []float64{30, 60, 90, 120, 150}},
	}
	for _, tt := range tests {
		for i, want := range tt.want {
			if got := MutantAngle(i, tt.n); !near(got, want) {
				t.Errorf("MutantAngle(%d, %d) = %v, want %v", i, tt.n, got, want)
			}
		}
	}
}

func TestBottomAngle(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{270}},
		{2, []float64{237.5, 302.5}},
		{3, []float64{225, 270, 315}},
		{5, []float64{200, 235, 270, 305, 340}},
		{6, []float64{200, 228, 256, 284, 312, 340}},
	}
	for _, tt := range tests {
		for i, want := range tt.want {
			if got := BottomAngle(i, tt.n); !near(got, want) {
				t.Errorf("BottomAngle(%d, %d) = %v, want %v", i, tt.n, got, want)
			}
		}
	}
}

func TestPlaceEmpty(t *testing.T) {
	if got := Place(nil, 300); len(got) != 0 {
		t.Errorf("Place(nil) = %v, want empty", got)
	}
}

func TestPlacePreservesOrder(t *testing.T) {
	l, err := notation.Parse("D/(F)-(G)-A-Bb-C-D-[E]-F-G-A-C")
	if err != nil {
		t.Fatal(err)
	}
	got := Place(l.Notes, 300)
	if len(got) != len(l.Notes) {
		t.Fatalf("len = %d, want %d", len(got), len(l.Notes))
	}
	for i := range got {
		if got[i].Note != l.Notes[i] {
			t.Errorf("position %d holds %v, want %v", i, got[i].Note, l.Notes[i])
		}
	}
}

func TestPlaceRadii(t *testing.T) {
	const shell = 200.0
	l, err := notation.Parse("D/(F)-A-Bb-[C]-D")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range Place(l.Notes, shell) {
		want := DefaultGeometry.RingRatio(p.Role) * shell
		if !near(math.Hypot(p.X, p.Y), want) {
			t.Errorf("%v at distance %v, want %v", p.Note, math.Hypot(p.X, p.Y), want)
		}
		if !near(p.Radius, want) {
			t.Errorf("%v Radius = %v, want %v", p.Note, p.Radius, want)
		}
	}
}

func TestPlaceDing(t *testing.T) {
	notes := []notation.Note{
		{Pitch: pitch.D, Octave: 3, Role: notation.Ding},
		{Pitch: pitch.A, Octave: 3, Role: notation.Tonal},
	}
	got := Place(notes, 100)
	ding := got[0]
	if !near(ding.X, 0) || !near(ding.Y, -5) {
		t.Errorf("ding at (%v, %v), want (0, -5)", ding.X, ding.Y)
	}
	if !near(ding.Size, 11) {
		t.Errorf("ding size = %v, want 11", ding.Size)
	}
}

func TestPlaceSingleTonalIsSouth(t *testing.T) {
	notes := []notation.Note{
		{Pitch: pitch.D, Octave: 3, Role: notation.Ding},
		{Pitch: pitch.A, Octave: 3, Role: notation.Tonal},
	}
	p := Place(notes, 100)[1]
	if !near(p.X, 0) || !near(p.Y, -31) {
		t.Errorf("single tonal at (%v, %v), want (0, -31)", p.X, p.Y)
	}
}

func TestPlaceLastTonalIsNorth(t *testing.T) {
	l, err := notation.Parse("D/-A-Bb-C-D-E-F-G-A")
	if err != nil {
		t.Fatal(err)
	}
	got := Place(l.Notes, 100)
	last := got[len(got)-1]
	if last.Angle != 90 || !near(last.X, 0) || !near(last.Y, 31) {
		t.Errorf("last tonal at %v° (%v, %v), want 90° (0, 31)", last.Angle, last.X, last.Y)
	}
}

func TestPlaceRolesUseOwnRings(t *testing.T) {
	// Interleaving roles must not shift indices within a ring.
	a, _ := notation.Parse("D/-A-[C]-Bb-(F)-D")
	b, _ := notation.Parse("D/-A-Bb-D-[C]-(F)")
	pa, pb := Place(a.Notes, 100), Place(b.Notes, 100)

	angles := func(ps []Positioned, role notation.Role) []float64 {
		var out []float64
		for _, p := range ps {
			if p.Role == role {
				out = append(out, p.Angle)
			}
		}
		return out
	}
	for _, role := range []notation.Role{notation.Tonal, notation.Mutant, notation.Bottom} {
		x, y := angles(pa, role), angles(pb, role)
		if len(x) != len(y) {
			t.Fatalf("%v: %d vs %d notes", role, len(x), len(y))
		}
		for i := range x {
			if x[i] != y[i] {
				t.Errorf("%v[%d]: %v vs %v", role, i, x[i], y[i])
			}
		}
	}
}

func TestPlaceWithGeometry(t *testing.T) {
	g := DefaultGeometry
	g.TonalRatio = 0.5
	notes := []notation.Note{
		{Pitch: pitch.D, Role: notation.Ding},
		{Pitch: pitch.A, Role: notation.Tonal},
	}
	p := Place(notes, 100, WithGeometry(g))[1]
	if !near(p.Y, -50) {
		t.Errorf("Y = %v, want -50", p.Y)
	}
}

func TestScreen(t *testing.T) {
	p := Positioned{X: 10, Y: 20}
	x, y := p.Screen(100, 100)
	if x != 110 || y != 80 {
		t.Errorf("Screen = (%v, %v), want (110, 80)", x, y)
	}
}

func TestExtent(t *testing.T) {
	got := DefaultGeometry.Extent(100)
	want := (DefaultGeometry.BottomRatio + DefaultGeometry.BottomSize) * 100
	if !near(got, want) {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}
