package pipeline

import (
	"github.com/panforge/panlayout/pkg/notation"
)

// Parse reads the notation string in opts.Layout.
// Options must already be validated.
func Parse(opts Options) (*notation.Layout, error) {
	return notation.Parse(opts.Layout, notation.WithDefaultOctave(opts.DefaultOctave))
}
