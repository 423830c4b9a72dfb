// Package notation decodes hand-authored handpan layout strings.
//
// # Grammars
//
// Two grammars are accepted. The extended grammar names the ding before a
// slash and lists the remaining notes after it:
//
//	D/-A-Bb-C-D-E-F-G-A
//	D3/(F)-(G)-A-Bb-C-D-E-F-G-A-C
//	F#/-G#-A-C#-E-F#-G#-A-C#
//
// The simple grammar is a flat token list whose first token is the ding:
//
//	D3 A3 Bb3 C4 [D4] (F2)
//
// In both, a note wrapped in "[...]" is a mutant, one wrapped in "(...)" is a
// bottom note, and a bare note is tonal. A trailing octave number is used
// verbatim when present.
//
// # Octave inference
//
// The simple grammar assumes octave 3 for any note written without one. The
// extended grammar infers octaves in a single left-to-right pass:
//
//   - The ding defaults to octave 3 and seeds two cursors, one for tonal and
//     mutant notes and one for bottom notes.
//   - A written octave replaces the cursor of its class.
//   - The first tonal/mutant note keeps the cursor; each later one bumps it by
//     one when its pitch-class index is not above the previous tonal/mutant
//     note's (the scale wrapped past C or repeated a pitch class).
//   - Bottom notes never bump their cursor.
//
// The rule encodes how these strings are written by players, so reordering
// tokens changes the result.
//
// # Errors
//
// [Parse] returns a *[ParseError] naming the stage and token that failed. It
// unwraps to a coded error from package errors: PARSE_FAILURE for an invalid
// root or too few notes, INVALID_PITCH_CLASS for an unreadable body note in
// the extended grammar. The simple grammar skips unreadable body notes and
// lists them in [Layout.Skipped] instead.
package notation
