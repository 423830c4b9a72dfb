// Package fonts provides the label font shared by every renderer.
//
// The Go Regular face from golang.org/x/image is compiled into the binary, so
// SVG output can embed it and raster output can draw with it without any
// system fonts installed.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name the embedded font is declared under.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore embedded fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// TTF returns the raw TrueType data.
func TTF() []byte {
	return goregular.TTF
}

// Cache for the parsed font and its base64 form (computed once on first access).
var (
	parsed     *truetype.Font
	parseErr   error
	parseOnce  sync.Once
	ttfBase64  string
	base64Once sync.Once
)

// TTFBase64 returns the TrueType data as a base64 string for CSS data URLs.
func TTFBase64() string {
	base64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// Font returns the parsed font.
func Font() (*truetype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = truetype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Face returns a drawable face at the given point size.
func Face(size float64) (font.Face, error) {
	f, err := Font()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
