// Package render holds format conversion shared by the diagram sinks.
//
// # Overview
//
// Diagrams are drawn once as SVG by [sink.RenderSVG]. The [ToPDF] and [ToPNG]
// functions convert that SVG to print and raster formats using the external
// rsvg-convert tool (from librsvg), so the PDF is the same vector drawing the
// interactive view shows.
//
//	svg := sink.RenderSVG(positioned, sink.WithShellRadius(300))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// When rsvg-convert is missing, both return an UNSUPPORTED error. PNG output
// has a pure-Go path as well ([sink.RenderPNG]) that needs no external tool.
//
// [sink.RenderSVG]: github.com/panforge/panlayout/pkg/render/sink.RenderSVG
// [sink.RenderPNG]: github.com/panforge/panlayout/pkg/render/sink.RenderPNG
package render
