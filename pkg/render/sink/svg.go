package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/panforge/panlayout/pkg/fonts"
	"github.com/panforge/panlayout/pkg/radial"
)

const noteInteractionCSS = `
    .note { cursor: pointer; }
    .note circle { transition: stroke-width 0.15s ease; }
    .note:hover circle, .note.playing circle { stroke-width: 3; }
    .note-bottom circle { stroke-dasharray: 4 3; }`

// RenderSVG draws the positioned notes as an SVG document.
//
// Each note is a <g class="note note-ROLE"> carrying data-note (canonical
// name such as "C#4"), data-sample (file-safe sample name such as "Cs4",
// prefixed by [WithSamplePath]), data-role and data-midi, so an interactive
// player can bind audio without re-parsing the layout.
func RenderSVG(ps []radial.Positioned, opts ...Option) []byte {
	f := newFrame(opts...)
	w, h := f.size()
	cx, cy := f.center()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	renderDefs(&buf, f)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", f.style.Background)

	if f.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.1f" fill="%s">%s</text>`+"\n",
			w/2, f.titleHeight()/2+marginRatio*f.shellRadius/2, f.titleHeight()*0.45, f.style.Text, escapeXML(f.title))
	}

	fmt.Fprintf(&buf, `  <circle class="shell" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		cx, cy, f.geom.ShellRatio*f.shellRadius, f.style.ShellFill, f.style.ShellStroke)

	for i, p := range ps {
		renderNote(&buf, f, i, p, cx, cy)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, f frame) {
	buf.WriteString("  <defs>\n    <style>")
	if f.embedFont {
		fmt.Fprintf(buf, `
    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }`,
			fonts.FontFamily, fonts.TTFBase64())
	}
	fmt.Fprintf(buf, `
    text { font-family: %s; }`, fonts.FallbackFontFamily)
	buf.WriteString(noteInteractionCSS)
	buf.WriteString("\n    </style>\n  </defs>\n")
}

func renderNote(buf *bytes.Buffer, f frame, i int, p radial.Positioned, cx, cy float64) {
	x, y := p.Screen(cx, cy)
	role := p.Role.String()

	fmt.Fprintf(buf, `  <g id="note-%d" class="note note-%s" data-note="%s" data-sample="%s" data-role="%s" data-midi="%d">`+"\n",
		i, role, escapeXML(p.Note.String()), escapeXML(f.samplePath+p.SampleName()), role, p.MIDI())
	fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		x, y, p.Size, f.style.fill(p.Role), f.style.stroke(p.Role))
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x, y, fontSize(p.Size), f.style.Text, escapeXML(f.label(p.Note)))
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
