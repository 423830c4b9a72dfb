package pitch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// syllables maps accent-folded, lower-case French solfège syllables to pitch classes.
// Longer syllables come first so prefix matching stays unambiguous.
var syllables = []struct {
	name string
	pc   PitchClass
}{
	{"sol", G},
	{"do", C},
	{"ut", C},
	{"re", D},
	{"mi", E},
	{"fa", F},
	{"la", A},
	{"si", B},
}

// parseFrench handles French solfège names such as "Ré", "re#", "Sib" or "SOL".
func parseFrench(s string) (PitchClass, bool) {
	folded := strings.ToLower(foldAccents(normalizeAccidentals(s)))
	for _, syl := range syllables {
		rest, found := strings.CutPrefix(folded, syl.name)
		if !found {
			continue
		}
		shift, ok := accidentalShift(rest)
		if !ok {
			return 0, false
		}
		return syl.pc.Transpose(shift), true
	}
	return 0, false
}

// foldAccents strips combining marks so "Ré" and "Re" compare equal.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
