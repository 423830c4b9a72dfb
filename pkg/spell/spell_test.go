package spell

import (
	"testing"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pitch"
)

func TestShouldUseFlats(t *testing.T) {
	tests := []struct {
		name string
		root pitch.PitchClass
		mode Mode
		want bool
	}{
		{"G# aeolian keeps five sharps", pitch.GSharp, Aeolian, false},
		{"Ab mixolydian beats G# mixolydian", pitch.GSharp, Mixolydian, true},
		{"D minor has one flat", pitch.D, Aeolian, true},
		{"D dorian is natural", pitch.D, Dorian, false},
		{"A minor is natural", pitch.A, Aeolian, false},
		{"E phrygian is natural", pitch.E, Phrygian, false},
		{"F lydian is natural", pitch.F, Lydian, false},
		{"F major has one flat", pitch.F, Ionian, true},
		{"C minor uses flats", pitch.C, Aeolian, true},
		{"C# minor keeps four sharps", pitch.CSharp, Aeolian, false},
		{"Db major beats C# major", pitch.CSharp, Ionian, true},
		{"C# mixolydian tie stays sharp", pitch.CSharp, Mixolydian, false},
		{"F# major tie stays sharp", pitch.FSharp, Ionian, false},
		{"F# minor keeps three sharps", pitch.FSharp, Aeolian, false},
		{"Ab major beats G# major", pitch.GSharp, Ionian, true},
		{"G# phrygian dominant", pitch.GSharp, PhrygianDominant, false},
		{"B locrian is natural", pitch.B, Locrian, false},
		{"unknown mode acts as ionian", pitch.F, Mode("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldUseFlats(tt.root, tt.mode); got != tt.want {
				t.Errorf("ShouldUseFlats(%v, %s) = %v, want %v", tt.root, tt.mode, got, tt.want)
			}
		})
	}
}

func TestShouldUseFlatsAlwaysFlatRoots(t *testing.T) {
	for _, root := range []pitch.PitchClass{pitch.ASharp, pitch.DSharp} {
		for _, mode := range Modes() {
			if !ShouldUseFlats(root, mode) {
				t.Errorf("ShouldUseFlats(%v, %s) = false, want true", root, mode)
			}
		}
	}
}

func TestShouldUseFlatsDeterministic(t *testing.T) {
	for _, root := range pitch.All() {
		for _, mode := range Modes() {
			a := ShouldUseFlats(root, mode)
			b := ShouldUseFlats(root, mode)
			if a != b {
				t.Errorf("ShouldUseFlats(%v, %s) not deterministic", root, mode)
			}
			if Prefer(root, mode).UseFlats != a {
				t.Errorf("Prefer(%v, %s) disagrees with ShouldUseFlats", root, mode)
			}
		}
	}
}

func TestKeySignature(t *testing.T) {
	tests := []struct {
		root pitch.PitchClass
		mode Mode
		want int
	}{
		{pitch.GSharp, Aeolian, 5},
		{pitch.GSharp, Mixolydian, -5},
		{pitch.D, Aeolian, -1},
		{pitch.ASharp, Ionian, -2},
		{pitch.DSharp, Aeolian, -6},
		{pitch.E, Ionian, 4},
	}

	for _, tt := range tests {
		if got := KeySignature(tt.root, tt.mode); got != tt.want {
			t.Errorf("KeySignature(%v, %s) = %d, want %d", tt.root, tt.mode, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"aeolian", Aeolian},
		{"Dorian", Dorian},
		{"Phrygian Dominant", PhrygianDominant},
		{"phrygian-dominant", PhrygianDominant},
		{"phrygian_dominant", PhrygianDominant},
		{"minor", Aeolian},
		{"major", Ionian},
		{"hijaz", PhrygianDominant},
		{"", DefaultMode},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	_, err := ParseMode("pentatonic")
	if !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ParseMode(pentatonic) error = %v, want INVALID_MODE", err)
	}
}

func TestModeOffsets(t *testing.T) {
	want := map[Mode]int{
		Lydian: 1, Ionian: 0, Mixolydian: -1, Dorian: -2,
		Aeolian: -3, Phrygian: -4, PhrygianDominant: -4, Locrian: -5,
	}
	for _, m := range Modes() {
		if m.Offset() != want[m] {
			t.Errorf("%s.Offset() = %d, want %d", m, m.Offset(), want[m])
		}
	}
	if len(Modes()) != len(want) {
		t.Errorf("Modes() has %d entries, want %d", len(Modes()), len(want))
	}
}

func TestSpelling(t *testing.T) {
	tests := []struct {
		name   string
		root   pitch.PitchClass
		mode   Mode
		acc    Accidentals
		naming Naming
		pc     pitch.PitchClass
		octave int
		want   string
	}{
		{"auto flat american", pitch.D, Aeolian, AccidentalsAuto, NamingAmerican, pitch.ASharp, 3, "Bb3"},
		{"auto flat french", pitch.D, Aeolian, AccidentalsAuto, NamingFrench, pitch.ASharp, 3, "Sib3"},
		{"auto sharp", pitch.FSharp, Aeolian, AccidentalsAuto, NamingAmerican, pitch.CSharp, 4, "C#4"},
		{"forced sharp", pitch.D, Aeolian, AccidentalsSharp, NamingAmerican, pitch.ASharp, 3, "A#3"},
		{"forced flat french", pitch.FSharp, Aeolian, AccidentalsFlat, NamingFrench, pitch.FSharp, 3, "Solb3"},
		{"natural unaffected", pitch.D, Aeolian, AccidentalsFlat, NamingFrench, pitch.D, 3, "Ré3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpelling(tt.root, tt.mode, tt.acc, tt.naming)
			if got := s.NoteName(tt.pc, tt.octave); got != tt.want {
				t.Errorf("NoteName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAccidentalsAndNaming(t *testing.T) {
	if a, err := ParseAccidentals(""); err != nil || a != AccidentalsAuto {
		t.Errorf("ParseAccidentals(\"\") = %q, %v", a, err)
	}
	if a, err := ParseAccidentals("FLAT"); err != nil || a != AccidentalsFlat {
		t.Errorf("ParseAccidentals(FLAT) = %q, %v", a, err)
	}
	if _, err := ParseAccidentals("natural"); err == nil {
		t.Error("ParseAccidentals(natural) should fail")
	}

	if n, err := ParseNaming(""); err != nil || n != NamingAmerican {
		t.Errorf("ParseNaming(\"\") = %q, %v", n, err)
	}
	if n, err := ParseNaming("French"); err != nil || n != NamingFrench {
		t.Errorf("ParseNaming(French) = %q, %v", n, err)
	}
	if _, err := ParseNaming("german"); err == nil {
		t.Error("ParseNaming(german) should fail")
	}
}
