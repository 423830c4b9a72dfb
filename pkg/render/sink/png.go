package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/fonts"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/radial"
)

// MaxPNGPixels bounds the raster canvas area, about 100 MB of RGBA.
const MaxPNGPixels = 25_000_000

// PNGSize returns the canvas dimensions in pixels that [RenderPNG] allocates
// for opts.
func PNGSize(opts ...Option) (w, h int) {
	return newFrame(opts...).pixelSize()
}

// RenderPNG rasterizes the diagram directly with a gg canvas, scaled by
// [WithScale] (default 2x). Unlike [RenderPDF] it needs no external tools.
// Canvases larger than [MaxPNGPixels] are refused.
func RenderPNG(ps []radial.Positioned, opts ...Option) ([]byte, error) {
	f := newFrame(opts...)
	s := f.scale
	w, h := f.size()
	cx, cy := f.center()

	pw, ph := f.pixelSize()
	if pw*ph > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png canvas %dx%d exceeds %d pixels", pw, ph, MaxPNGPixels)
	}
	dc := gg.NewContext(pw, ph)
	dc.SetHexColor(f.style.Background)
	dc.Clear()

	faces := faceCache{}
	defer faces.close()

	if f.title != "" {
		face, err := faces.get(f.titleHeight() * 0.45 * s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(f.style.Text)
		dc.DrawStringAnchored(f.title, w/2*s, (f.titleHeight()/2+marginRatio*f.shellRadius/2)*s, 0.5, 0.5)
	}

	dc.DrawCircle(cx*s, cy*s, f.geom.ShellRatio*f.shellRadius*s)
	dc.SetHexColor(f.style.ShellFill)
	dc.FillPreserve()
	dc.SetHexColor(f.style.ShellStroke)
	dc.SetLineWidth(2 * s)
	dc.Stroke()

	for _, p := range ps {
		x, y := p.Screen(cx, cy)
		dc.DrawCircle(x*s, y*s, p.Size*s)
		dc.SetHexColor(f.style.fill(p.Role))
		dc.FillPreserve()
		dc.SetHexColor(f.style.stroke(p.Role))
		dc.SetLineWidth(1.5 * s)
		if p.Role == notation.Bottom {
			dc.SetDash(4*s, 3*s)
		}
		dc.Stroke()
		dc.SetDash()

		face, err := faces.get(fontSize(p.Size) * s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(f.style.Text)
		dc.DrawStringAnchored(f.label(p.Note), x*s, y*s, 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (f frame) pixelSize() (w, h int) {
	fw, fh := f.size()
	return int(math.Ceil(fw * f.scale)), int(math.Ceil(fh * f.scale))
}

// faceCache reuses one face per point size within a render.
type faceCache map[float64]font.Face

func (c faceCache) get(size float64) (font.Face, error) {
	size = math.Round(size*4) / 4
	if face, ok := c[size]; ok {
		return face, nil
	}
	face, err := fonts.Face(size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}
	c[size] = face
	return face, nil
}

func (c faceCache) close() {
	for _, face := range c {
		_ = face.Close()
	}
}
