package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/pipeline"
	"github.com/matzehuels/chordview/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	fingers string  // finger notation for fret-notation input
	name    string  // label for fret-notation input
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated output formats
	style   string  // TOML theme file
	mode    string  // show mode: normal or simple
	width   float64 // drawing area width in pixels
	height  float64 // drawing area height in pixels
	scale   float64 // PNG scale factor
	library string  // chord library file for name lookups
	noCache bool    // bypass the artifact cache
	refresh bool    // re-render and overwrite cached artifacts
}

func defaultRenderOpts() renderOpts {
	return renderOpts{
		formats: pipeline.FormatSVG,
		width:   pipeline.DefaultWidth,
		height:  pipeline.DefaultHeight,
		scale:   pipeline.DefaultScale,
	}
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := defaultRenderOpts()

	cmd := &cobra.Command{
		Use:   "render <chord>",
		Short: "Render a chord diagram",
		Long: `Render a chord diagram from a library name or from fret notation.

Fret notation lists the six strings from low E to high E, with x for a
muted string: "x32010", "8-10-10-9-8-8" or "-1,3,2,0,1,0".`,
		Example: `  chordview render Am
  chordview render x32010 --fingers 032010 -f svg,png
  chordview render 8-10-10-9-8-8 --mode simple -o c8.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeChordNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.fingers, "fingers", "", "finger notation (0 = no finger)")
	cmd.Flags().StringVar(&opts.name, "name", "", "diagram title for fret-notation input")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "TOML theme file")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "show mode: normal, simple (default from style)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "drawing area width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "drawing area height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.library, "library", "", "chord library file (.toml, .yaml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, arg string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	if slices.Contains(formats, pipeline.FormatPDF) && !render.HasRSVG() {
		printWarning("Skipping PDF: rsvg-convert not found")
		formats = slices.DeleteFunc(formats, func(f string) bool { return f == pipeline.FormatPDF })
		if len(formats) == 0 {
			return errors.New(errors.ErrCodeUnsupported, "no renderable format left")
		}
	}

	style, err := loadStyle(opts.style)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Mode:    opts.mode,
		Width:   opts.width,
		Height:  opts.height,
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Style:   style,
		Logger:  logger,
	}
	if pipeline.LooksLikeFrets(arg) {
		popts.Frets = arg
		popts.Fingers = opts.fingers
		popts.Name = opts.name
	} else {
		lib, err := c.loadLibrary(ctx, opts.library)
		if err != nil {
			return err
		}
		popts.Name = arg
		popts.Library = lib
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+arg+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, defaultBase(res.Chord, arg), formats)
	for _, f := range formats {
		if err := writeFile(paths[f], res.Artifacts[f]); err != nil {
			return err
		}
	}

	prog.done("Rendered " + res.Chord.String())
	printSuccess("Rendered %s", StyleHighlight.Render(displayName(res.Chord)))
	for _, f := range formats {
		printFile(paths[f])
	}
	printStats(res.Stats.Primitives, res.Stats.Bytes, res.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each format to a file. A single format writes to output
// as given; several formats share output's base name.
func outputPaths(output, defaultBase string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := defaultBase
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// defaultBase derives a file name from the chord name, or from the input
// when the chord is unnamed. "C/8" becomes "c-8".
func defaultBase(c *chord.Chord, arg string) string {
	name := arg
	if c != nil && c.Name != "" {
		name = c.Name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == '#':
			b.WriteString("sharp")
		default:
			b.WriteByte('-')
		}
	}
	base := strings.Trim(b.String(), "-")
	if base == "" {
		return "chord"
	}
	return base
}

func displayName(c *chord.Chord) string {
	if c.Name != "" {
		return c.Name + " " + StyleDim.Render(c.FretString())
	}
	return c.FretString()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
