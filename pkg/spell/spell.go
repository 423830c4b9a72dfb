// Package spell decides whether a handpan layout is displayed with sharps or flats.
//
// The decision uses standard key-signature arithmetic on the circle of fifths:
// a root's position on the circle plus the mode's offset relative to Ionian
// gives an effective key, whose sign and magnitude are the number of sharps
// (positive) or flats (negative) in the signature.
//
//	spell.ShouldUseFlats(pitch.GSharp, spell.Aeolian)    // false: 5 sharps beats 7 flats
//	spell.ShouldUseFlats(pitch.GSharp, spell.Mixolydian) // true:  5 flats beats 7 sharps
//
// Roots with two usable spellings (C#/Db, F#/Gb, G#/Ab) are evaluated under both
// and the one with fewer accidentals wins. A# and D# always spell flat. All
// tables are read-only and every function is pure.
package spell

import (
	"github.com/panforge/panlayout/pkg/pitch"
)

// practicalRange is the largest key signature used in practice (six sharps or flats).
const practicalRange = 6

// sharpCircle holds circle-of-fifths positions for roots spelled with sharps or naturals.
var sharpCircle = map[pitch.PitchClass]int{
	pitch.F:      -1,
	pitch.C:      0,
	pitch.G:      1,
	pitch.D:      2,
	pitch.A:      3,
	pitch.E:      4,
	pitch.B:      5,
	pitch.FSharp: 6,
	pitch.CSharp: 7,
	pitch.GSharp: 8,
	pitch.DSharp: 9,
	pitch.ASharp: 10,
}

// flatCircle holds circle-of-fifths positions for roots spelled with flats or naturals.
var flatCircle = map[pitch.PitchClass]int{
	pitch.FSharp: -6, // Gb
	pitch.CSharp: -5, // Db
	pitch.GSharp: -4, // Ab
	pitch.DSharp: -3, // Eb
	pitch.ASharp: -2, // Bb
	pitch.F:      -1,
	pitch.C:      0,
	pitch.G:      1,
	pitch.D:      2,
	pitch.A:      3,
	pitch.E:      4,
	pitch.B:      5,
}

// alwaysFlat roots would need double sharps in their major-key sharp spelling.
var alwaysFlat = map[pitch.PitchClass]bool{
	pitch.ASharp: true,
	pitch.DSharp: true,
}

// enharmonic roots have a usable spelling on both sides of the circle.
var enharmonic = map[pitch.PitchClass]bool{
	pitch.CSharp: true,
	pitch.FSharp: true,
	pitch.GSharp: true,
}

// Preference is the derived spelling choice for one (root, mode) pair.
type Preference struct {
	UseFlats bool `json:"use_flats"`
}

// Prefer returns the spelling preference for root in mode.
func Prefer(root pitch.PitchClass, mode Mode) Preference {
	return Preference{UseFlats: ShouldUseFlats(root, mode)}
}

// ShouldUseFlats reports whether notes of a layout rooted at root in mode
// should be displayed with flats. An unknown mode is treated as Ionian.
func ShouldUseFlats(root pitch.PitchClass, mode Mode) bool {
	if alwaysFlat[root] {
		return true
	}

	offset := mode.Offset()
	if !enharmonic[root] {
		return sharpCircle[root]+offset < 0
	}

	sharpKey := sharpCircle[root] + offset
	flatKey := flatCircle[root] + offset
	sharpCount, flatCount := abs(sharpKey), abs(flatKey)

	switch {
	case flatCount < sharpCount:
		return true
	case sharpCount < flatCount:
		return false
	}

	// Tie: keep whichever spelling stays within the practical range, sharp if both do.
	if sharpCount <= practicalRange {
		return false
	}
	return flatCount <= practicalRange
}

// KeySignature returns the effective key for root in mode under the spelling
// ShouldUseFlats selects. Positive values count sharps, negative values flats.
func KeySignature(root pitch.PitchClass, mode Mode) int {
	if ShouldUseFlats(root, mode) {
		return flatCircle[root] + mode.Offset()
	}
	return sharpCircle[root] + mode.Offset()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
