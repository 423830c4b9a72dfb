package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pitch"
	"github.com/panforge/panlayout/pkg/spell"
)

// Role is the physical position class of a note on the instrument.
type Role int

const (
	// Ding is the central note. A parsed layout has exactly one, always first.
	Ding Role = iota
	// Tonal notes form the main playable ring.
	Tonal
	// Mutant notes sit on an inner arc above the ding.
	Mutant
	// Bottom notes sit on the underside, drawn on an arc below the shell.
	Bottom
)

var roleNames = [...]string{"ding", "tonal", "mutant", "bottom"}

// String returns the lower-case role name.
func (r Role) String() string {
	if r < Ding || r > Bottom {
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
	return roleNames[r]
}

// MarshalText encodes the role name.
func (r Role) MarshalText() ([]byte, error) {
	if r < Ding || r > Bottom {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	for i, name := range roleNames {
		if strings.EqualFold(string(b), name) {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("invalid role %q", string(b))
}

// Note is one physical tone of the instrument.
type Note struct {
	Pitch  pitch.PitchClass `json:"pitch" bson:"pitch"`
	Octave int              `json:"octave" bson:"octave"`
	Role   Role             `json:"role" bson:"role"`
}

// String returns the canonical sharp spelling with octave, e.g. "C#4".
func (n Note) String() string {
	return n.Pitch.String() + strconv.Itoa(n.Octave)
}

// SampleName returns the file-safe name audio samples are stored under, e.g. "Cs4".
func (n Note) SampleName() string {
	return n.Pitch.FileSafe() + strconv.Itoa(n.Octave)
}

// DisplayName renders the note label with the given spelling.
func (n Note) DisplayName(s spell.Spelling) string {
	return s.NoteName(n.Pitch, n.Octave)
}

// MIDI returns the MIDI note number, with C4 = 60.
func (n Note) MIDI() int {
	return (n.Octave+1)*pitch.Count + n.Pitch.Index()
}

// Format identifies which notation grammar a layout string was written in.
type Format int

const (
	// FormatSimple is the hyphen/space separated grammar whose first token is the ding.
	FormatSimple Format = iota
	// FormatExtended is the "root/notes" grammar with octave inference.
	FormatExtended
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatExtended {
		return "extended"
	}
	return "simple"
}

// Skipped records a body token the simple grammar could not read.
type Skipped struct {
	Token    string `json:"token"`
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// Layout is the parsed form of one notation string.
// Notes[0] is always the ding; role assignment never changes after parsing.
type Layout struct {
	Source  string    `json:"source"`
	Format  Format    `json:"-"`
	Notes   []Note    `json:"notes"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Ding returns the central note.
func (l *Layout) Ding() Note {
	return l.Notes[0]
}

// Root returns the ding's pitch class, the reference for spelling decisions.
func (l *Layout) Root() pitch.PitchClass {
	return l.Notes[0].Pitch
}

// ByRole returns the notes with role r in parse order.
func (l *Layout) ByRole(r Role) []Note {
	var out []Note
	for _, n := range l.Notes {
		if n.Role == r {
			out = append(out, n)
		}
	}
	return out
}

// Count returns the number of notes with role r.
func (l *Layout) Count(r Role) int {
	c := 0
	for _, n := range l.Notes {
		if n.Role == r {
			c++
		}
	}
	return c
}

// Canonical re-encodes the layout with explicit octaves and sharp spellings.
// Parsing the result yields the same notes. A layout holding only its ding is
// written as that single note, since the extended grammar needs a body.
func (l *Layout) Canonical() string {
	if len(l.Notes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(l.Notes[0].String())
	if len(l.Notes) == 1 {
		return b.String()
	}
	b.WriteByte('/')
	for _, n := range l.Notes[1:] {
		b.WriteByte('-')
		switch n.Role {
		case Mutant:
			b.WriteString("[" + n.String() + "]")
		case Bottom:
			b.WriteString("(" + n.String() + ")")
		default:
			b.WriteString(n.String())
		}
	}
	return b.String()
}

// Stage names the parser step that failed.
type Stage string

const (
	StageRoot  Stage = "root"  // the ding token could not be read
	StageNote  Stage = "note"  // a body token could not be read
	StageCount Stage = "count" // too few notes to form a layout
)

// ParseError describes where parsing failed. It unwraps to a coded
// *errors.Error (PARSE_FAILURE or INVALID_PITCH_CLASS).
type ParseError struct {
	Stage    Stage
	Token    string
	Position int
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %q at token %d: %v", e.Stage, e.Token, e.Position, e.Err)
}

// Unwrap returns the coded cause.
func (e *ParseError) Unwrap() error { return e.Err }

func rootError(tok string, cause error) *ParseError {
	return &ParseError{
		Stage: StageRoot,
		Token: tok,
		Err:   errors.Wrap(errors.ErrCodeParseFailure, cause, "invalid root note"),
	}
}

func countError(got, want int) *ParseError {
	return &ParseError{
		Stage:    StageCount,
		Position: -1,
		Err:      errors.New(errors.ErrCodeParseFailure, "layout has %d note(s), need at least %d", got, want),
	}
}
