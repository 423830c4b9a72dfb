package sink

import (
	"github.com/panforge/panlayout/pkg/radial"
	"github.com/panforge/panlayout/pkg/render"
)

// RenderPDF renders the diagram as PDF via SVG conversion, so the printed
// sheet matches the interactive view exactly. The label font is always
// embedded.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ps []radial.Positioned, opts ...Option) ([]byte, error) {
	svg := RenderSVG(ps, append(opts[:len(opts):len(opts)], WithEmbeddedFont())...)
	return render.ToPDF(svg)
}
