package styles

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/chordview/pkg/errors"
)

// ShowMode selects the display density of a diagram.
type ShowMode int

const (
	// Normal shows finger numbers and a label for every fret row.
	Normal ShowMode = iota
	// Simple hides finger numbers, labels only the first fret row and may
	// collapse to three rows for chords near the nut.
	Simple
)

// String implements fmt.Stringer.
func (m ShowMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Simple:
		return "simple"
	}
	return fmt.Sprintf("ShowMode(%d)", int(m))
}

// ParseShowMode parses "normal" or "simple" (case-insensitive).
func ParseShowMode(s string) (ShowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return Normal, nil
	case "simple":
		return Simple, nil
	}
	return Normal, errors.New(errors.ErrCodeInvalidStyle, "invalid show mode %q (must be 'normal' or 'simple')", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m ShowMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ShowMode) UnmarshalText(b []byte) error {
	v, err := ParseShowMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Common colors.
var (
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = color.NRGBA{A: 0xff}
	Transparent = color.NRGBA{}
)

// Config is the complete visual configuration of a diagram. All lengths are
// in output units (pixels for raster sinks).
type Config struct {
	ShowMode ShowMode

	// Indicators drawn above closed (muted) and empty (open) strings. A nil
	// indicator suppresses that glyph entirely.
	ClosedString  *Indicator
	EmptyString   *Indicator
	StringOffsetY float64

	HeadRadius float64
	HeadColor  color.NRGBA

	FretTextSize    float64
	FretTextColor   color.NRGBA
	FretTextOffsetX float64

	GridLineWidth float64
	GridLineColor color.NRGBA

	NoteColor       color.NRGBA
	NoteRadius      float64
	NoteTextSize    float64
	NoteTextColor   color.NRGBA
	NoteStrokeWidth float64
	NoteStrokeColor color.NRGBA
	NoteAlpha       uint8

	BarreColor       color.NRGBA
	BarreAlpha       uint8
	BarreStrokeWidth float64
	BarreStrokeColor color.NRGBA

	// Background is painted by sinks behind the diagram. The layout engine
	// ignores it.
	Background color.NRGBA
}

// Default returns the stock configuration: white strokes and notes with
// black finger numbers on a transparent background, no indicators.
func Default() Config {
	return Config{
		ShowMode:         Normal,
		FretTextSize:     40,
		FretTextColor:    White,
		HeadColor:        White,
		GridLineWidth:    10,
		GridLineColor:    White,
		NoteColor:        White,
		NoteRadius:       40,
		NoteTextSize:     40,
		NoteTextColor:    Black,
		NoteStrokeColor:  White,
		NoteAlpha:        255,
		BarreColor:       White,
		BarreAlpha:       255,
		BarreStrokeColor: White,
		Background:       Transparent,
	}
}

// IndicatorHeight returns the height of the tallest configured indicator.
func (c *Config) IndicatorHeight() float64 {
	return max(c.ClosedString.height(), c.EmptyString.height())
}

// Validate rejects negative lengths and unknown show modes.
func (c *Config) Validate() error {
	switch c.ShowMode {
	case Normal, Simple:
	default:
		return errors.New(errors.ErrCodeInvalidStyle, "unknown show mode %d", int(c.ShowMode))
	}

	lengths := []struct {
		name string
		v    float64
	}{
		{"string_offset_y", c.StringOffsetY},
		{"head_radius", c.HeadRadius},
		{"fret_text_size", c.FretTextSize},
		{"fret_text_offset_x", c.FretTextOffsetX},
		{"grid_line_width", c.GridLineWidth},
		{"note_radius", c.NoteRadius},
		{"note_text_size", c.NoteTextSize},
		{"note_stroke_width", c.NoteStrokeWidth},
		{"barre_stroke_width", c.BarreStrokeWidth},
	}
	for _, l := range lengths {
		if l.v < 0 {
			return errors.New(errors.ErrCodeInvalidStyle, "%s must not be negative, got %v", l.name, l.v)
		}
	}
	for _, ind := range []*Indicator{c.ClosedString, c.EmptyString} {
		if ind != nil && (ind.Width < 0 || ind.Height < 0) {
			return errors.New(errors.ErrCodeInvalidStyle, "indicator %q has negative size", ind.Name)
		}
	}
	return nil
}
