package pipeline

import (
	"context"

	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/sink"
)

// RenderDiagram renders d in every format of opts without consulting a
// cache. opts must have been validated.
func RenderDiagram(ctx context.Context, d layout.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, d, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, d layout.Diagram, format string, opts Options) ([]byte, error) {
	cfg := opts.Config()
	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, buildSVGOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(d,
			sink.WithScale(opts.Scale),
			sink.WithPNGBackground(cfg.Background),
			sink.WithFont(fonts.GoRegular()))
	case FormatPDF:
		return sink.RenderPDF(ctx, d, sink.WithPDFSVGOptions(buildSVGOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONChord(opts.Chord), sink.WithJSONMode(cfg.ShowMode))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithBackground(opts.Config().Background)}
	if opts.Chord != nil && opts.Chord.Name != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Chord.Name))
	}
	return svgOpts
}
