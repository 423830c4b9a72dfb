package spell

import (
	"strings"

	"github.com/panforge/panlayout/pkg/errors"
)

// Mode is a diatonic mode name.
type Mode string

// Supported modes.
const (
	Lydian           Mode = "lydian"
	Ionian           Mode = "ionian"
	Mixolydian       Mode = "mixolydian"
	Dorian           Mode = "dorian"
	Aeolian          Mode = "aeolian"
	Phrygian         Mode = "phrygian"
	PhrygianDominant Mode = "phrygian_dominant"
	Locrian          Mode = "locrian"
)

// DefaultMode is used when a caller supplies no mode. Most handpan scales are minor.
const DefaultMode = Aeolian

// modeOffsets are circle-of-fifths offsets relative to Ionian.
var modeOffsets = map[Mode]int{
	Lydian:           1,
	Ionian:           0,
	Mixolydian:       -1,
	Dorian:           -2,
	Aeolian:          -3,
	Phrygian:         -4,
	PhrygianDominant: -4,
	Locrian:          -5,
}

// modeAliases maps common alternative spellings to canonical modes.
var modeAliases = map[string]Mode{
	"major":            Ionian,
	"minor":            Aeolian,
	"natural_minor":    Aeolian,
	"phrygian_major":   PhrygianDominant,
	"spanish_phrygian": PhrygianDominant,
	"hijaz":            PhrygianDominant,
	"freygish":         PhrygianDominant,
	"phrygiandominant": PhrygianDominant,
}

// Modes returns all supported modes from brightest to darkest.
func Modes() []Mode {
	return []Mode{Lydian, Ionian, Mixolydian, Dorian, Aeolian, Phrygian, PhrygianDominant, Locrian}
}

// ParseMode resolves a mode name. Case, spaces and hyphens are ignored, so
// "Phrygian Dominant", "phrygian-dominant" and "phrygian_dominant" are equal.
// An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return DefaultMode, nil
	}
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	if m := Mode(key); m.Valid() {
		return m, nil
	}
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", s)
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	_, ok := modeOffsets[m]
	return ok
}

// Offset returns m's circle-of-fifths offset relative to Ionian (0 if unknown).
func (m Mode) Offset() int {
	return modeOffsets[m]
}

// String returns the canonical mode name.
func (m Mode) String() string { return string(m) }
