package spell

import (
	"strconv"
	"strings"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pitch"
)

// Accidentals selects how black keys are spelled in labels.
type Accidentals string

const (
	AccidentalsAuto  Accidentals = "auto"  // decided by ShouldUseFlats
	AccidentalsSharp Accidentals = "sharp" // always sharps
	AccidentalsFlat  Accidentals = "flat"  // always flats
)

// Naming selects the note-name language.
type Naming string

const (
	NamingAmerican Naming = "american" // C D E F G A B
	NamingFrench   Naming = "french"   // Do Ré Mi Fa Sol La Si
)

// ParseAccidentals resolves an accidental policy name; empty means auto.
func ParseAccidentals(s string) (Accidentals, error) {
	switch a := Accidentals(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AccidentalsAuto, nil
	case AccidentalsAuto, AccidentalsSharp, AccidentalsFlat:
		return a, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid accidentals: %q (must be auto, sharp or flat)", s)
	}
}

// ParseNaming resolves a naming convention; empty means american.
func ParseNaming(s string) (Naming, error) {
	switch n := Naming(strings.ToLower(strings.TrimSpace(s))); n {
	case "":
		return NamingAmerican, nil
	case NamingAmerican, NamingFrench:
		return n, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid notation: %q (must be american or french)", s)
	}
}

// Spelling renders note labels for one layout.
// The zero value spells American sharps.
type Spelling struct {
	UseFlats bool
	Naming   Naming
}

// NewSpelling resolves the accidental policy against the layout's root and mode.
func NewSpelling(root pitch.PitchClass, mode Mode, acc Accidentals, naming Naming) Spelling {
	s := Spelling{Naming: naming}
	switch acc {
	case AccidentalsFlat:
		s.UseFlats = true
	case AccidentalsSharp:
		s.UseFlats = false
	default:
		s.UseFlats = ShouldUseFlats(root, mode)
	}
	return s
}

// Name returns the label for a pitch class.
func (s Spelling) Name(pc pitch.PitchClass) string {
	if s.Naming == NamingFrench {
		return pc.FrenchName(s.UseFlats)
	}
	return pc.Name(s.UseFlats)
}

// NoteName returns the label for a pitch class in a given octave, e.g. "Bb3" or "Sib3".
func (s Spelling) NoteName(pc pitch.PitchClass, octave int) string {
	return s.Name(pc) + strconv.Itoa(octave)
}
