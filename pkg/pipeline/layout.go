package pipeline

import (
	"encoding/json"

	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/radial"
)

// Placed is a parsed layout together with its diagram positions.
// It is the unit the layout stage caches.
type Placed struct {
	Layout     *notation.Layout    `json:"layout"`
	Format     string              `json:"format"`
	Positioned []radial.Positioned `json:"positioned"`
}

// Place positions every note of l on a shell of opts.ShellRadius.
func Place(l *notation.Layout, opts Options) Placed {
	return Placed{
		Layout:     l,
		Format:     l.Format.String(),
		Positioned: radial.Place(l.Notes, opts.ShellRadius),
	}
}

// MarshalPlaced serializes a placement for caching.
func MarshalPlaced(p Placed) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalPlaced restores a cached placement.
func UnmarshalPlaced(data []byte) (Placed, error) {
	var p Placed
	if err := json.Unmarshal(data, &p); err != nil {
		return Placed{}, err
	}
	if p.Layout == nil || len(p.Layout.Notes) == 0 || len(p.Positioned) != len(p.Layout.Notes) {
		return Placed{}, errInvalidPlaced
	}
	if p.Format == notation.FormatExtended.String() {
		p.Layout.Format = notation.FormatExtended
	}
	return p, nil
}
