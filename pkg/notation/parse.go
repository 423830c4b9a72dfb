package notation

import (
	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pitch"
)

// DefaultOctave is used for any note whose octave is neither written nor inferable.
const DefaultOctave = 3

// Option configures parsing.
type Option func(*parser)

type parser struct {
	defaultOctave int
}

// WithDefaultOctave overrides the octave assumed for the ding (and, in the
// simple grammar, every note) when none is written.
func WithDefaultOctave(octave int) Option {
	return func(p *parser) { p.defaultOctave = octave }
}

// Parse decodes a layout string into notes.
//
// Strings containing '/' use the extended grammar ("D/-A-Bb-C-[D]-(F)"),
// everything else the simple grammar ("D3 A3 Bb3 [C4] (F2)"). Input is
// normalized first, so a trailing '_' and irregular spacing are accepted.
//
// Failures are returned as *ParseError values wrapping PARSE_FAILURE or
// INVALID_PITCH_CLASS; the returned Layout is nil in that case.
func Parse(layout string, opts ...Option) (*Layout, error) {
	p := parser{defaultOctave: DefaultOctave}
	for _, opt := range opts {
		opt(&p)
	}

	src := Normalize(layout)
	if root, notes, ok := splitExtended(src); ok {
		return p.parseExtended(src, root, notes)
	}
	return p.parseSimple(src)
}

// parseSimple reads the simple grammar: the first token is the ding whatever
// its wrapping, later tokens take their role from their wrapping, and octaves
// are either written or the default. Unreadable body tokens are skipped.
func (p parser) parseSimple(src string) (*Layout, error) {
	tokens := Tokenize(src)
	if len(tokens) == 0 {
		return nil, countError(0, 1)
	}

	l := &Layout{Source: src, Format: FormatSimple}
	for i, tok := range tokens {
		name, role := Classify(tok)
		pc, octave, hasOctave, err := pitch.ParseWithOctave(name)
		if !hasOctave {
			octave = p.defaultOctave
		}

		if i == 0 {
			if err != nil {
				return nil, rootError(tok, err)
			}
			l.Notes = append(l.Notes, Note{Pitch: pc, Octave: octave, Role: Ding})
			continue
		}

		if err != nil {
			l.Skipped = append(l.Skipped, Skipped{Token: tok, Position: i, Reason: errors.UserMessage(err)})
			continue
		}
		l.Notes = append(l.Notes, Note{Pitch: pc, Octave: octave, Role: role})
	}

	return l, nil
}

// parseExtended reads the "root/notes" grammar. The root token becomes the
// ding; body octaves are inferred left to right by octaveCursors.
func (p parser) parseExtended(src, rootTok, notesPart string) (*Layout, error) {
	rootName, _ := Classify(rootTok)
	root, rootOctave, hasOctave, err := pitch.ParseWithOctave(rootName)
	if err != nil {
		return nil, rootError(rootTok, err)
	}
	if !hasOctave {
		rootOctave = p.defaultOctave
	}

	l := &Layout{
		Source: src,
		Format: FormatExtended,
		Notes:  []Note{{Pitch: root, Octave: rootOctave, Role: Ding}},
	}

	cur := newOctaveCursors(rootOctave)
	for i, tok := range Tokenize(notesPart) {
		name, role := Classify(tok)
		pc, octave, hasOctave, err := pitch.ParseWithOctave(name)
		if err != nil {
			return nil, &ParseError{Stage: StageNote, Token: tok, Position: i, Err: err}
		}
		l.Notes = append(l.Notes, Note{
			Pitch:  pc,
			Octave: cur.next(pc, role, octave, hasOctave),
			Role:   role,
		})
	}

	if len(l.Notes) <= 1 {
		return nil, countError(len(l.Notes), 2)
	}
	return l, nil
}

// octaveCursors carries the left-to-right octave inference state of the
// extended grammar. Tonal and mutant notes share one cursor that climbs an
// octave whenever the pitch sequence wraps around C; bottom notes have their
// own cursor that only moves when an octave is written.
type octaveCursors struct {
	tonalOctave  int
	bottomOctave int
	isFirstTonal bool
	prevTonal    int // pitch-class index of the previous tonal/mutant note
}

func newOctaveCursors(rootOctave int) *octaveCursors {
	return &octaveCursors{
		tonalOctave:  rootOctave,
		bottomOctave: rootOctave,
		isFirstTonal: true,
		prevTonal:    -1,
	}
}

// next returns the octave for one body note and advances the cursors.
func (c *octaveCursors) next(pc pitch.PitchClass, role Role, written int, hasWritten bool) int {
	if role == Bottom {
		if hasWritten {
			c.bottomOctave = written
		}
		return c.bottomOctave
	}

	idx := pc.Index()
	switch {
	case hasWritten:
		c.tonalOctave = written
	case c.isFirstTonal:
		// The first tonal note stays in the root's octave.
	case idx <= c.prevTonal:
		c.tonalOctave++
	}
	c.isFirstTonal = false
	c.prevTonal = idx
	return c.tonalOctave
}
