// Package sink turns positioned notes into diagram files.
//
// # Overview
//
// A "sink" consumes the output of [radial.Place] and writes one format. No
// sink re-derives positions, so every format shows the identical layout:
//
//   - SVG: interactive diagram with per-note sample bindings
//   - PNG: raster image drawn with a pure-Go canvas
//   - PDF: print output (SVG converted by rsvg-convert)
//   - JSON: positions and labels for external players
//   - DOT: Graphviz source, rendered by neato with pinned positions
//
// # Usage
//
//	ps := radial.Place(layout.Notes, 300)
//	sp := spell.NewSpelling(layout.Root(), spell.Aeolian, spell.AccidentalsAuto, spell.NamingAmerican)
//	svg := sink.RenderSVG(ps,
//	    sink.WithShellRadius(300),
//	    sink.WithSpelling(sp),
//	    sink.WithTitle("D Kurd 9"),
//	)
//
// The shell radius passed to [WithShellRadius] must be the one the notes were
// placed with; it sizes the canvas and the shell outline.
//
// # Options
//
//   - [WithShellRadius]: radius used by [radial.Place] (default 300)
//   - [WithGeometry]: ring proportions (default [radial.DefaultGeometry])
//   - [WithSpelling]: label spelling (sharp/flat, American/French)
//   - [WithTitle]: caption above the shell
//   - [WithStyle]: colour scheme ([DefaultStyle] or [DarkStyle])
//   - [WithEmbeddedFont]: embed the label font in SVG output
//   - [WithSamplePath]: prefix for SVG data-sample attributes
//   - [WithScale]: PNG resolution multiplier
//
// [radial.Place]: github.com/panforge/panlayout/pkg/radial.Place
// [radial.DefaultGeometry]: github.com/panforge/panlayout/pkg/radial.DefaultGeometry
package sink
