package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/render"
)

// RenderLayout generates output artifacts in the requested formats. It does
// not touch the cache; see [Runner.Render].
func RenderLayout(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "nil layout")
	}
	svgOpts := buildSVGOptions(opts)

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(l, svgOpts...)
		}
		return svg
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(svgOnce(), DefaultPNGZoom)
		case FormatPDF:
			data, err = render.ToPDF(svgOnce())
		case FormatJSON:
			data, err = layout.Marshal(l)
		case FormatDOT:
			data = []byte(render.ToDOT(l))
		case FormatText:
			var buf bytes.Buffer
			err = render.RenderText(&buf, l)
			data = buf.Bytes()
		case FormatGraphviz:
			data, err = render.RenderDOTSVG(ctx, render.ToDOT(l))
		default:
			return nil, errors.New(errors.ErrCodeInvalidArgument, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(stageCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{
		render.WithFrames(!opts.NoFrames),
		render.WithLabels(!opts.NoLabels),
	}
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, render.WithScale(opts.Scale))
	}
	return svgOpts
}
