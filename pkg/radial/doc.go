// Package radial places parsed handpan notes around a circular shell.
//
// # Overview
//
// [Place] turns the ordered notes of a [notation.Layout] into [Positioned]
// notes carrying x/y coordinates. The result is render-agnostic: SVG, PNG,
// PDF and Graphviz sinks all draw from the same positions and never re-derive
// them.
//
// # Coordinates
//
// The origin is the shell centre. Angles are in degrees with 0° pointing
// east and positive angles turning counter-clockwise, so +y is up:
//
//	x = r·cos(θ)
//	y = r·sin(θ)
//
// Screen and page renderers flip y themselves (see [Positioned.Screen]).
//
// # Rings
//
// Each role has its own ring, sized as a fraction of the caller's shell
// radius (see [Geometry]):
//
//   - Ding: a small fixed offset below centre.
//   - Tonal ring (0.31×): the last note is pinned north at 90°. For even
//     counts the first is pinned south at 270°; remaining notes alternate
//     right and left of the vertical axis across a 90° arc per side (odd
//     counts: 120° per side starting at 290° and 250°).
//   - Mutant arc (0.18×): centred on 90°, up to 120° wide, enumerated from
//     the right end.
//   - Bottom arc (0.46×, outside the 0.42× shell outline): centred on 270°,
//     up to 140° wide, enumerated from the left end.
//
// # Usage
//
//	l, err := notation.Parse("D/-A-Bb-C-D-E-F-G-A")
//	if err != nil {
//	    return err
//	}
//	for _, p := range radial.Place(l.Notes, 300) {
//	    fmt.Printf("%s at (%.1f, %.1f)\n", p.Note, p.X, p.Y)
//	}
//
// Placement has no failure mode: empty input yields an empty result.
//
// [notation.Layout]: github.com/panforge/panlayout/pkg/notation
package radial
