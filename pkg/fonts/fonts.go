// Package fonts provides text metrics and font faces for diagram rendering.
//
// The layout engine never touches a font directly: it asks a [Measurer] how
// wide a label is and how far it reaches above and below the baseline. The
// default measurer uses the Go Regular typeface that ships with
// golang.org/x/image, so measurements are identical on every machine and
// match what the SVG and PNG sinks draw.
//
// Measurers are safe for concurrent use.
package fonts

import (
	"math"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/chordview/pkg/errors"
)

// FontFamily is the CSS font-family that matches the default measurer.
const FontFamily = "Go"

// FallbackFontFamily is used in SVG output when the Go font is not installed.
const FallbackFontFamily = `'Go', 'DejaVu Sans', 'Helvetica Neue', Arial, sans-serif`

// Metrics describes a measured run of text. Ascent and Descent are both
// positive distances from the baseline.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Measurer measures text at a font size given in pixels.
type Measurer interface {
	Measure(text string, size float64) Metrics
}

// Font is a parsed TrueType/OpenType font usable as a Measurer.
type Font struct {
	name string
	f    *sfnt.Font
}

var (
	goRegular     *Font
	goRegularErr  error
	goRegularOnce sync.Once
)

// GoRegular returns the embedded Go Regular font. The font is parsed once.
func GoRegular() *Font {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = Parse("Go Regular", goregular.TTF)
	})
	if goRegularErr != nil {
		// The embedded font is part of x/image; failing to parse it is a build defect.
		panic(goRegularErr)
	}
	return goRegular
}

// Parse parses TrueType or OpenType font data.
func Parse(name string, data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s", name)
	}
	return &Font{name: name, f: f}, nil
}

// Find locates a system font file by name (e.g. "DejaVuSans.ttf") and parses it.
func Find(name string) (*Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
	}
	return Parse(name, data)
}

// Name returns the name the font was loaded under.
func (f *Font) Name() string { return f.name }

// Measure implements Measurer. Each call uses its own sfnt.Buffer.
func (f *Font) Measure(text string, size float64) Metrics {
	if size <= 0 {
		return Metrics{}
	}
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(math.Round(size * 64))

	var m Metrics
	if fm, err := f.f.Metrics(&buf, ppem, font.HintingNone); err == nil {
		m.Ascent = fromFixed(fm.Ascent)
		m.Descent = fromFixed(fm.Descent)
	}

	var (
		width fixed.Int26_6
		prev  sfnt.GlyphIndex
	)
	for i, r := range text {
		idx, err := f.f.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			if k, err := f.f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				width += k
			}
		}
		if adv, err := f.f.GlyphAdvance(&buf, idx, ppem, font.HintingNone); err == nil {
			width += adv
		}
		prev = idx
	}
	m.Width = fromFixed(width)
	return m
}

// Face returns a font.Face at the given pixel size for raster drawing.
// A Face is not safe for concurrent use; callers create one per drawing.
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face %s@%.1f", f.name, size)
	}
	return face, nil
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Fixed approximates text metrics from ratios of the font size. It is
// deterministic and font-free, which makes it the measurer of choice for
// tests and for environments without font data.
type Fixed struct {
	CharWidth float64 // advance per rune, relative to size
	Ascent    float64 // relative to size
	Descent   float64 // relative to size
}

// DefaultFixed mirrors the proportions of a typical sans-serif face.
var DefaultFixed = Fixed{CharWidth: 0.55, Ascent: 0.8, Descent: 0.2}

// Measure implements Measurer.
func (f Fixed) Measure(text string, size float64) Metrics {
	return Metrics{
		Width:   float64(utf8.RuneCountInString(text)) * size * f.CharWidth,
		Ascent:  size * f.Ascent,
		Descent: size * f.Descent,
	}
}

var (
	_ Measurer = (*Font)(nil)
	_ Measurer = Fixed{}
)
