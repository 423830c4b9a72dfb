package pipeline

import (
	"context"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/render/sink"
)

var errInvalidPlaced = errors.New(errors.ErrCodeInternal, "cached placement is incomplete")

// Render generates output artifacts in the requested formats.
// Options must already be validated.
func Render(ctx context.Context, p Placed, opts Options) (map[string][]byte, error) {
	sp := opts.Spelling(p.Layout)
	sinkOpts := opts.SinkOptions(sp)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, p, format, sinkOpts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, p Placed, format string, opts []sink.Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(p.Positioned, opts...), nil
	case FormatPNG:
		return sink.RenderPNG(p.Positioned, opts...)
	case FormatPDF:
		return sink.RenderPDF(p.Positioned, opts...)
	case FormatJSON:
		return sink.RenderJSON(p.Positioned, opts...)
	case FormatDOT:
		return sink.RenderGraphviz(ctx, p.Positioned, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
