// Package pipeline provides the core parse → layout → render pipeline for panlayout.
//
// This package runs the complete pipeline that the CLI and the HTTP server
// both use. By centralizing this logic, every entry point validates options,
// caches results and names its outputs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read the notation string into notes with roles and octaves
//  2. Layout: resolve the spelling and place every note on the radial diagram
//  3. Render: write the positioned notes in one or more formats (SVG, PNG, PDF, JSON, DOT)
//
// Parse and layout are cached together under one key; each rendered format is
// cached separately.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Layout:  "D/-A-Bb-C-D-E-F-G-A",
//	    Mode:    "aeolian",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse and place only
//	placed, err := runner.Layout(ctx, opts)
//
//	// Render an existing placement
//	artifacts, err := runner.Render(ctx, placed, opts)
package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/panforge/panlayout/pkg/cache"
	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/radial"
	"github.com/panforge/panlayout/pkg/render/sink"
	"github.com/panforge/panlayout/pkg/spell"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultShellRadius is the shell radius in output units.
	DefaultShellRadius = sink.DefaultShellRadius

	// DefaultStyle is the default colour scheme.
	DefaultStyle = "light"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxShellRadius bounds the canvas size requested through the API.
	MaxShellRadius = 4000.0

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "image/svg+xml",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Layout        string `json:"layout"`
	// DefaultOctave is 1-8; zero selects notation.DefaultOctave.
	DefaultOctave int    `json:"default_octave,omitempty"`

	// Layout options
	Mode        string  `json:"mode,omitempty"`
	ShellRadius float64 `json:"radius,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Accidentals string   `json:"accidentals,omitempty"`
	Naming      string   `json:"notation,omitempty"`
	Style       string   `json:"style,omitempty"`
	Title       string   `json:"title,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	SamplePath  string   `json:"sample_path,omitempty"`
	EmbedFont   bool     `json:"embed_font,omitempty"`

	// Runtime options (not serialized)
	Refresh bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the parsed notation.
	Layout *notation.Layout

	// Positioned holds every note of Layout with its diagram position.
	Positioned []radial.Positioned

	// UseFlats reports whether labels were spelled with flats.
	UseFlats bool

	// Spelling is the resolved label spelling.
	Spelling spell.Spelling

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NoteCount   int
	SkipCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
	ArtifactLen map[string]int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether parse and placement came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := sink.Styles[style]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: light, dark)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.DefaultOctave == 0 {
		o.DefaultOctave = notation.DefaultOctave
	}
	if o.Mode == "" {
		o.Mode = string(spell.DefaultMode)
	}
	if o.ShellRadius == 0 {
		o.ShellRadius = DefaultShellRadius
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Accidentals == "" {
		o.Accidentals = string(spell.AccidentalsAuto)
	}
	if o.Naming == "" {
		o.Naming = string(spell.NamingAmerican)
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate applies defaults, canonicalizes enum fields and checks every option.
// Musical content is not checked here; that is the parser's job.
func (o *Options) Validate() error {
	if err := errors.ValidateLayoutString(o.Layout); err != nil {
		return err
	}
	o.SetDefaults()

	mode, err := spell.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.Mode = string(mode)

	acc, err := spell.ParseAccidentals(o.Accidentals)
	if err != nil {
		return err
	}
	o.Accidentals = string(acc)

	naming, err := spell.ParseNaming(o.Naming)
	if err != nil {
		return err
	}
	o.Naming = string(naming)

	if o.ShellRadius < 0 || o.ShellRadius > MaxShellRadius {
		return errors.New(errors.ErrCodeInvalidLayout, "radius must be between 0 and %g", MaxShellRadius)
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %g", MaxScale)
	}
	if o.DefaultOctave < 1 || o.DefaultOctave > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "default octave must be between 1 and 8")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		w, h := sink.PNGSize(sink.WithShellRadius(o.ShellRadius), sink.WithScale(o.Scale), sink.WithTitle(o.Title))
		if w*h > sink.MaxPNGPixels {
			return errors.New(errors.ErrCodeInvalidInput,
				"png canvas %dx%d exceeds %d pixels; lower the radius or scale", w, h, sink.MaxPNGPixels)
		}
	}
	return ValidateStyle(o.Style)
}

// SpellMode returns the validated mode.
func (o *Options) SpellMode() spell.Mode {
	return spell.Mode(o.Mode)
}

// Spelling resolves label spelling for a layout rooted at l's ding.
func (o *Options) Spelling(l *notation.Layout) spell.Spelling {
	return spell.NewSpelling(l.Root(), o.SpellMode(), spell.Accidentals(o.Accidentals), spell.Naming(o.Naming))
}

// SinkOptions returns the render options shared by every format.
func (o *Options) SinkOptions(sp spell.Spelling) []sink.Option {
	opts := []sink.Option{
		sink.WithShellRadius(o.ShellRadius),
		sink.WithSpelling(sp),
		sink.WithScale(o.Scale),
		sink.WithStyle(sink.Styles[o.Style]),
	}
	if o.Title != "" {
		opts = append(opts, sink.WithTitle(o.Title))
	}
	if o.SamplePath != "" {
		opts = append(opts, sink.WithSamplePath(o.SamplePath))
	}
	if o.EmbedFont {
		opts = append(opts, sink.WithEmbeddedFont())
	}
	return opts
}

// LayoutKeyOpts returns cache key options for parsing and placement.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:          o.Mode,
		ShellRadius:   o.ShellRadius,
		DefaultOctave: o.DefaultOctave,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Accidentals: o.Accidentals,
		Naming:      o.Naming,
		Title:       o.Title,
		Scale:       o.Scale,
		SamplePath:  o.SamplePath,
		EmbedFont:   o.EmbedFont,
	}
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("layout=%q mode=%s radius=%g formats=%v", o.Layout, o.Mode, o.ShellRadius, o.Formats)
}
