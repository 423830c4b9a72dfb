package sink

import (
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/radial"
	"github.com/panforge/panlayout/pkg/spell"
)

// DefaultShellRadius is assumed when no [WithShellRadius] option is given.
const DefaultShellRadius = 300.0

// marginRatio pads the canvas around the farthest note, as a fraction of the shell radius.
const marginRatio = 0.06

// titleRatio is the height of the optional title band, as a fraction of the shell radius.
const titleRatio = 0.14

// Option configures a sink. Options a format has no use for are ignored.
type Option func(*frame)

// frame is the resolved drawing configuration shared by all sinks.
type frame struct {
	shellRadius float64
	geom        radial.Geometry
	spelling    spell.Spelling
	title       string
	embedFont   bool
	scale       float64
	samplePath  string
	style       Style
}

// WithShellRadius sets the radius the positions were computed for.
func WithShellRadius(r float64) Option { return func(f *frame) { f.shellRadius = r } }

// WithGeometry sets the ring proportions the positions were computed with.
func WithGeometry(g radial.Geometry) Option { return func(f *frame) { f.geom = g } }

// WithSpelling sets how note labels are spelled (default: American sharps).
func WithSpelling(s spell.Spelling) Option { return func(f *frame) { f.spelling = s } }

// WithTitle draws a caption above the shell.
func WithTitle(t string) Option { return func(f *frame) { f.title = t } }

// WithEmbeddedFont embeds the label font into SVG output so it renders the
// same on machines without it.
func WithEmbeddedFont() Option { return func(f *frame) { f.embedFont = true } }

// WithScale sets the raster scale factor for PNG output (default 2.0).
func WithScale(s float64) Option { return func(f *frame) { f.scale = s } }

// WithSamplePath sets a prefix for the data-sample attribute in SVG output,
// e.g. "/samples/" turns "Cs4" into "/samples/Cs4".
func WithSamplePath(p string) Option { return func(f *frame) { f.samplePath = p } }

// WithStyle overrides the colour scheme.
func WithStyle(s Style) Option { return func(f *frame) { f.style = s } }

func newFrame(opts ...Option) frame {
	f := frame{
		shellRadius: DefaultShellRadius,
		geom:        radial.DefaultGeometry,
		scale:       2.0,
		style:       DefaultStyle,
	}
	for _, opt := range opts {
		opt(&f)
	}
	if f.shellRadius <= 0 {
		f.shellRadius = DefaultShellRadius
	}
	if f.scale <= 0 {
		f.scale = 2.0
	}
	return f
}

// size returns the canvas dimensions.
func (f frame) size() (w, h float64) {
	side := 2 * (f.geom.Extent(f.shellRadius) + marginRatio*f.shellRadius)
	return side, side + f.titleHeight()
}

func (f frame) titleHeight() float64 {
	if f.title == "" {
		return 0
	}
	return titleRatio * f.shellRadius
}

// center returns the shell centre in canvas coordinates.
func (f frame) center() (cx, cy float64) {
	w, h := f.size()
	return w / 2, f.titleHeight() + (h-f.titleHeight())/2
}

// label returns the display text for a note.
func (f frame) label(n notation.Note) string {
	return n.DisplayName(f.spelling)
}

// fontSize returns the label size for a note circle of radius r.
func fontSize(r float64) float64 {
	return r * 0.62
}
