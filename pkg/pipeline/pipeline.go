// Package pipeline provides the chord diagram pipeline shared by the CLI
// and the HTTP server.
//
// A run resolves a chord, lays it out with the fretboard engine and renders
// the result in one or more output formats. Rendered artifacts are cached;
// layouts are recomputed on every run since they are cheap.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:    "Am",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	d, err := runner.Layout(ctx, opts)
//	artifacts, err := runner.Render(ctx, d, opts)
package pipeline

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordview/pkg/cache"
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default drawing area width in pixels.
	DefaultWidth = 400.0

	// DefaultHeight is the default drawing area height in pixels.
	DefaultHeight = 500.0

	// MaxDimension bounds width and height so a single request cannot
	// allocate an enormous raster.
	MaxDimension = 4096.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chord selection. Frets takes precedence over a library lookup by
	// Name; when both are set Name only labels the diagram.
	Name    string `json:"name,omitempty"`
	Frets   string `json:"frets,omitempty"`
	Fingers string `json:"fingers,omitempty"`

	// Layout options
	Mode   string  `json:"mode,omitempty"` // overrides the style's show mode
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Chord   *chord.Chord     `json:"-"` // takes precedence over Name and Frets
	Style   *styles.Config   `json:"-"` // nil selects styles.Default
	Library *library.Library `json:"-"` // nil selects library.Default
	Logger  *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	config    styles.Config
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chord is the resolved chord.
	Chord *chord.Chord

	// Diagram is the computed layout.
	Diagram layout.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Primitives int
	Bytes      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the chord, checks every field and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := o.resolveChord(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the drawing area and style, applying defaults.
func (o *Options) ValidateForLayout() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidLayoutArea, "area %vx%v exceeds %v", o.Width, o.Height, MaxDimension)
	}

	cfg := styles.Default()
	if o.Style != nil {
		cfg = *o.Style
	}
	if o.Mode != "" {
		mode, err := styles.ParseShowMode(o.Mode)
		if err != nil {
			return err
		}
		cfg.ShowMode = mode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.Mode = cfg.ShowMode.String()
	o.config = cfg
	return nil
}

// ValidateForRender checks formats and scale, applying defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be within (0, %v], got %v", MaxScale, o.Scale)
	}
	return nil
}

// Config returns the resolved style. It is only meaningful after
// validation.
func (o *Options) Config() styles.Config { return o.config }

// StyleHash returns a content hash of the resolved style.
func (o *Options) StyleHash() string {
	data, err := styles.EncodeTheme(o.config)
	if err != nil {
		return ""
	}
	for _, ind := range []*styles.Indicator{o.config.ClosedString, o.config.EmptyString} {
		data = append(data, indicatorDigest(ind)...)
	}
	return cache.Hash(data)
}

// indicatorDigest identifies an indicator by placement size, glyph color and
// pixels, so re-colored glyphs or edited image files get fresh keys.
func indicatorDigest(ind *styles.Indicator) string {
	if ind == nil {
		return "\x00none"
	}
	pixels := ""
	if ind.Image != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, ind.Image); err == nil {
			pixels = cache.Hash(buf.Bytes())
		}
	}
	return fmt.Sprintf("\x00%s:%gx%g:%s:%s", ind.Name, ind.Width, ind.Height, styles.FormatColor(ind.Color), pixels)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		StyleHash: o.StyleHash(),
		Mode:      o.Mode,
		Width:     o.Width,
		Height:    o.Height,
		Format:    format,
	}
	if o.Chord != nil {
		opts.Chord = o.Chord.String()
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
