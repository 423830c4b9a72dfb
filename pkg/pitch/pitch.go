// Package pitch models the twelve canonical pitch classes.
//
// Every pitch class has exactly one canonical (sharp) spelling. Flat and
// French solfège spellings are derived on demand from fixed tables; nothing in
// this package holds mutable state, so all functions are safe for concurrent use.
//
// # Parsing
//
// [Parse] accepts American names with either accidental ("C#", "Db", "Cs",
// "D♭") and French syllables with or without accents ("Ré", "Re", "Sol#",
// "Sib"). Unknown input fails with an INVALID_PITCH_CLASS error; there is no
// silent default.
//
//	pc, err := pitch.Parse("Bb")   // pitch.ASharp
//	pc.Name(true)                  // "Bb"
//	pc.French()                    // "La#"
//	pc.FileSafe()                  // "As"
package pitch

import (
	"strings"

	"github.com/panforge/panlayout/pkg/errors"
)

// PitchClass is one of the twelve canonical pitch classes, C = 0 through B = 11.
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// Count is the number of pitch classes in an octave.
const Count = 12

var (
	sharpNames  = [Count]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames   = [Count]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	frenchSharp = [Count]string{"Do", "Do#", "Ré", "Ré#", "Mi", "Fa", "Fa#", "Sol", "Sol#", "La", "La#", "Si"}
	frenchFlat  = [Count]string{"Do", "Réb", "Ré", "Mib", "Mi", "Fa", "Solb", "Sol", "Lab", "La", "Sib", "Si"}
)

// letterIndex maps natural note letters to pitch classes.
var letterIndex = map[byte]PitchClass{
	'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B,
}

// All returns the twelve pitch classes in ascending order.
func All() []PitchClass {
	out := make([]PitchClass, Count)
	for i := range out {
		out[i] = PitchClass(i)
	}
	return out
}

// Valid reports whether p is one of the twelve canonical values.
func (p PitchClass) Valid() bool { return p >= C && p <= B }

// Index returns the 0-11 position of p on the chromatic circle.
func (p PitchClass) Index() int { return int(p) }

// String returns the canonical sharp spelling.
func (p PitchClass) String() string {
	if !p.Valid() {
		return "?"
	}
	return sharpNames[p]
}

// Name returns the American spelling, using a flat for black keys when preferFlat is set.
func (p PitchClass) Name(preferFlat bool) string {
	if !p.Valid() {
		return "?"
	}
	if preferFlat {
		return flatNames[p]
	}
	return sharpNames[p]
}

// French returns the French solfège spelling with sharps.
func (p PitchClass) French() string {
	return p.FrenchName(false)
}

// FrenchName returns the French solfège spelling, using flats when preferFlat is set.
func (p PitchClass) FrenchName(preferFlat bool) string {
	if !p.Valid() {
		return "?"
	}
	if preferFlat {
		return frenchFlat[p]
	}
	return frenchSharp[p]
}

// FileSafe returns the sharp spelling with '#' replaced by 's' ("C#" → "Cs"),
// the form audio sample files are named with.
func (p PitchClass) FileSafe() string {
	return strings.ReplaceAll(p.String(), "#", "s")
}

// Accidental reports whether p is a black key, i.e. has distinct sharp and flat spellings.
func (p PitchClass) Accidental() bool {
	return p.Valid() && sharpNames[p] != flatNames[p]
}

// Transpose moves p by n semitones, wrapping around the octave.
func (p PitchClass) Transpose(n int) PitchClass {
	return PitchClass(((int(p)+n)%Count + Count) % Count)
}

// Parse converts a pitch-class name in any supported spelling to its canonical value.
// Surrounding whitespace is ignored. An octave suffix is not accepted here;
// use [ParseWithOctave] for note tokens.
func Parse(name string) (PitchClass, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidPitchClass, "empty pitch class")
	}
	if pc, ok := parseAmerican(s); ok {
		return pc, nil
	}
	if pc, ok := parseFrench(s); ok {
		return pc, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPitchClass, "unrecognized pitch class %q", name)
}

// MustParse is like [Parse] but panics on error. Intended for tables and tests.
func MustParse(name string) PitchClass {
	pc, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return pc
}

// MaxOctave is the highest octave a note token may write.
const MaxOctave = 9

// ParseWithOctave parses a note token such as "C#4", "Bb" or "Sol3".
// hasOctave reports whether a trailing octave number was present. A written
// octave above [MaxOctave] is an INVALID_PITCH_CLASS error.
func ParseWithOctave(token string) (pc PitchClass, octave int, hasOctave bool, err error) {
	token = strings.TrimSpace(token)
	name, octave, hasOctave := SplitOctave(token)
	pc, err = Parse(name)
	if err != nil {
		return 0, 0, false, err
	}
	if octave > MaxOctave {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidPitchClass, "octave out of range 0-%d in %q", MaxOctave, token)
	}
	return pc, octave, hasOctave, nil
}

// SplitOctave separates a trailing run of ASCII digits from s.
// "C#4" yields ("C#", 4, true); "Bb" yields ("Bb", 0, false). Values above
// [MaxOctave] saturate at MaxOctave+1, so long digit runs cannot overflow.
func SplitOctave(s string) (name string, octave int, ok bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) || i == 0 {
		return s, 0, false
	}
	for _, c := range s[i:] {
		octave = octave*10 + int(c-'0')
		if octave > MaxOctave {
			octave = MaxOctave + 1
		}
	}
	return s[:i], octave, true
}

// parseAmerican handles a letter A-G followed by zero or more accidentals.
func parseAmerican(s string) (PitchClass, bool) {
	s = normalizeAccidentals(s)
	base, ok := letterIndex[upper(s[0])]
	if !ok {
		return 0, false
	}
	shift, ok := accidentalShift(s[1:])
	if !ok {
		return 0, false
	}
	return base.Transpose(shift), true
}

// accidentalShift returns the semitone offset of an accidental suffix.
// Accepted: "", "#", "b", "s" (file-safe sharp), and doubled forms.
func accidentalShift(s string) (int, bool) {
	shift := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '#', 's':
			shift++
		case 'b':
			shift--
		default:
			return 0, false
		}
	}
	if shift > 2 || shift < -2 {
		return 0, false
	}
	return shift, true
}

// normalizeAccidentals rewrites the Unicode sharp and flat signs to ASCII.
func normalizeAccidentals(s string) string {
	if !strings.ContainsAny(s, "♯♭") {
		return s
	}
	return strings.NewReplacer("♯", "#", "♭", "b").Replace(s)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// MarshalText encodes p as its canonical sharp spelling.
func (p PitchClass) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPitchClass, "invalid pitch class %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes any spelling accepted by [Parse].
func (p *PitchClass) UnmarshalText(b []byte) error {
	pc, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = pc
	return nil
}
