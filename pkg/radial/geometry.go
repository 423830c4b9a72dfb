package radial

import (
	"github.com/panforge/panlayout/pkg/notation"
)

// Geometry holds ring radii and note sizes as fractions of the shell radius
// passed to [Place].
type Geometry struct {
	TonalRatio      float64 `json:"tonal_ratio"`
	MutantRatio     float64 `json:"mutant_ratio"`
	BottomRatio     float64 `json:"bottom_ratio"`
	ShellRatio      float64 `json:"shell_ratio"`       // outline of the instrument itself
	DingOffsetRatio float64 `json:"ding_offset_ratio"` // distance of the ding centre below the origin

	DingSize   float64 `json:"ding_size"`
	TonalSize  float64 `json:"tonal_size"`
	MutantSize float64 `json:"mutant_size"`
	BottomSize float64 `json:"bottom_size"`
}

// DefaultGeometry is the proportion set shared by every renderer.
var DefaultGeometry = Geometry{
	TonalRatio:      0.31,
	MutantRatio:     0.18,
	BottomRatio:     0.46,
	ShellRatio:      0.42,
	DingOffsetRatio: 0.05,

	DingSize:   0.11,
	TonalSize:  0.07,
	MutantSize: 0.05,
	BottomSize: 0.055,
}

// RingRatio returns the ring radius fraction for a role.
func (g Geometry) RingRatio(r notation.Role) float64 {
	switch r {
	case notation.Ding:
		return g.DingOffsetRatio
	case notation.Mutant:
		return g.MutantRatio
	case notation.Bottom:
		return g.BottomRatio
	default:
		return g.TonalRatio
	}
}

// SizeRatio returns the note-circle radius fraction for a role.
func (g Geometry) SizeRatio(r notation.Role) float64 {
	switch r {
	case notation.Ding:
		return g.DingSize
	case notation.Mutant:
		return g.MutantSize
	case notation.Bottom:
		return g.BottomSize
	default:
		return g.TonalSize
	}
}

// Extent returns the distance from the origin to the farthest point any note
// circle can reach for the given shell radius. Renderers size their canvas
// from it.
func (g Geometry) Extent(shellRadius float64) float64 {
	ext := g.ShellRatio
	for _, r := range []notation.Role{notation.Tonal, notation.Mutant, notation.Bottom} {
		ext = max(ext, g.RingRatio(r)+g.SizeRatio(r))
	}
	ext = max(ext, g.DingOffsetRatio+g.DingSize)
	return ext * shellRadius
}
