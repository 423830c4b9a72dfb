package sink

import (
	"encoding/json"

	"github.com/panforge/panlayout/pkg/radial"
)

type jsonOutput struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	ShellRadius float64         `json:"shell_radius"`
	Title       string          `json:"title,omitempty"`
	UseFlats    bool            `json:"use_flats"`
	Naming      string          `json:"naming"`
	Geometry    radial.Geometry `json:"geometry"`
	Notes       []jsonNote      `json:"notes"`
}

type jsonNote struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Sample string  `json:"sample"`
	Role   string  `json:"role"`
	Pitch  string  `json:"pitch"`
	Octave int     `json:"octave"`
	MIDI   int     `json:"midi"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Size   float64 `json:"size"`
}

// RenderJSON exports the positioned notes as a pretty-printed JSON document.
// Coordinates are relative to the shell centre with +y up, exactly as
// [radial.Place] produced them; width and height give the canvas the other
// sinks would draw on.
//
// RenderJSON returns an error only if JSON marshaling fails.
func RenderJSON(ps []radial.Positioned, opts ...Option) ([]byte, error) {
	f := newFrame(opts...)
	w, h := f.size()

	naming := string(f.spelling.Naming)
	if naming == "" {
		naming = "american"
	}

	out := jsonOutput{
		Width:       w,
		Height:      h,
		ShellRadius: f.shellRadius,
		Title:       f.title,
		UseFlats:    f.spelling.UseFlats,
		Naming:      naming,
		Geometry:    f.geom,
		Notes:       make([]jsonNote, len(ps)),
	}
	for i, p := range ps {
		out.Notes[i] = jsonNote{
			Name:   p.Note.String(),
			Label:  f.label(p.Note),
			Sample: f.samplePath + p.SampleName(),
			Role:   p.Role.String(),
			Pitch:  p.Pitch.String(),
			Octave: p.Octave,
			MIDI:   p.MIDI(),
			X:      p.X,
			Y:      p.Y,
			Angle:  p.Angle,
			Radius: p.Radius,
			Size:   p.Size,
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
