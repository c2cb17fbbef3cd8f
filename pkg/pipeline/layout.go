package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chordview/pkg/observability"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
)

// Layout resolves the chord and computes its diagram.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Diagram{}, err
	}
	return r.layout(ctx, &opts)
}

func (r *Runner) layout(ctx context.Context, opts *Options) (layout.Diagram, error) {
	notation := opts.Chord.String()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, notation)

	start := time.Now()
	cfg := opts.Config()
	d, err := r.Engine.Compute(opts.Chord, &cfg, opts.Width, opts.Height)
	hooks.OnLayoutComplete(ctx, notation, len(d.Primitives), time.Since(start), err)
	if err != nil {
		return layout.Diagram{}, err
	}

	opts.Logger.Debug("computed layout",
		"chord", notation,
		"rows", d.Geometry.Rows,
		"least_fret", d.Geometry.LeastFret,
		"barre", d.Barre != nil,
		"primitives", len(d.Primitives))
	return d, nil
}
