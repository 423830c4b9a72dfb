package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/radial"
)

// ToDOT converts positioned notes to a Graphviz graph for the neato engine.
// Every node is pinned ("pos=x,y!") in points with +y up, which is also
// Graphviz's convention, so neato draws the radial layout unchanged. Tonal
// notes are chained in playing order.
func ToDOT(ps []radial.Positioned, opts ...Option) string {
	f := newFrame(opts...)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", f.style.Background)
	if f.title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", f.title)
	}
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, style=filled, fontname=%q, fontcolor=%q];\n",
		"Helvetica", f.style.Text)
	buf.WriteString("\n")

	shellD := 2 * f.geom.ShellRatio * f.shellRadius / 72
	fmt.Fprintf(&buf, "  shell [label=\"\", pos=\"0,0!\", width=%s, fillcolor=%q, color=%q];\n",
		fmtFloat(shellD), f.style.ShellFill, f.style.ShellStroke)

	prev := ""
	var edges []string
	for i, p := range ps {
		id := "n" + strconv.Itoa(i)
		attrs := fmt.Sprintf("label=%q, pos=\"%s,%s!\", width=%s, fontsize=%s, fillcolor=%q, color=%q",
			f.label(p.Note), fmtFloat(p.X), fmtFloat(p.Y), fmtFloat(2*p.Size/72), fmtFloat(fontSize(p.Size)),
			f.style.fill(p.Role), f.style.stroke(p.Role))
		if p.Role == notation.Bottom {
			attrs += ", style=\"filled,dashed\""
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, attrs)

		if p.Role == notation.Tonal {
			if prev != "" {
				edges = append(edges, fmt.Sprintf("  %s -- %s;\n", prev, id))
			}
			prev = id
		}
	}

	if len(edges) > 0 {
		buf.WriteString("\n  edge [color=\"#9a917f\", style=dotted];\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz renders the diagram through Graphviz's neato engine and
// returns SVG bytes, which can be converted further with [render.ToPDF] or
// [render.ToPNG].
func RenderGraphviz(ctx context.Context, ps []radial.Positioned, opts ...Option) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(ps, opts...)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the output scales like the other sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
