package sink

import "github.com/panforge/panlayout/pkg/notation"

// Style is the colour scheme of a diagram. Colours are CSS hex strings.
type Style struct {
	Background  string
	ShellFill   string
	ShellStroke string
	Text        string
	Fill        map[notation.Role]string
	Stroke      map[notation.Role]string
}

// DefaultStyle is a light, print-friendly scheme.
var DefaultStyle = Style{
	Background:  "#ffffff",
	ShellFill:   "#e9e4da",
	ShellStroke: "#6b6357",
	Text:        "#1f1c18",
	Fill: map[notation.Role]string{
		notation.Ding:   "#d9c8a9",
		notation.Tonal:  "#f6f1e7",
		notation.Mutant: "#efe3cc",
		notation.Bottom: "#ffffff",
	},
	Stroke: map[notation.Role]string{
		notation.Ding:   "#4a4238",
		notation.Tonal:  "#4a4238",
		notation.Mutant: "#8a6d3b",
		notation.Bottom: "#8a8378",
	},
}

// DarkStyle suits on-screen players with a dark page.
var DarkStyle = Style{
	Background:  "#15171a",
	ShellFill:   "#2b2f35",
	ShellStroke: "#8b949e",
	Text:        "#e6edf3",
	Fill: map[notation.Role]string{
		notation.Ding:   "#4b5563",
		notation.Tonal:  "#374151",
		notation.Mutant: "#3f3a2e",
		notation.Bottom: "#15171a",
	},
	Stroke: map[notation.Role]string{
		notation.Ding:   "#d1d5db",
		notation.Tonal:  "#d1d5db",
		notation.Mutant: "#d4a72c",
		notation.Bottom: "#8b949e",
	},
}

// Styles lists the named schemes selectable from config and the CLI.
var Styles = map[string]Style{
	"light": DefaultStyle,
	"dark":  DarkStyle,
}

func (s Style) fill(r notation.Role) string {
	if c, ok := s.Fill[r]; ok {
		return c
	}
	return s.Fill[notation.Tonal]
}

func (s Style) stroke(r notation.Role) string {
	if c, ok := s.Stroke[r]; ok {
		return c
	}
	return s.Stroke[notation.Tonal]
}
