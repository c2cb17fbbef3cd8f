package styles

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/chordview/pkg/errors"
)

// Built-in indicator glyph names.
const (
	BuiltinCross = "cross"
	BuiltinRing  = "ring"
)

// Indicator is an image drawn above a closed or open string. Width and
// Height are the placement size; Image holds decoded pixels when available.
// Color is the stroke color of builtin glyphs and zero for file images.
type Indicator struct {
	Name   string
	Width  float64
	Height float64
	Color  color.NRGBA
	Image  image.Image
}

func (i *Indicator) height() float64 {
	if i == nil {
		return 0
	}
	return i.Height
}

// LoadIndicator decodes an image file. If width or height is zero the
// image keeps its aspect ratio; if both are zero it keeps its native size.
func LoadIndicator(path string, width, height float64) (*Indicator, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open indicator %s", path)
	}
	if width > 0 || height > 0 {
		img = imaging.Resize(img, int(math.Round(width)), int(math.Round(height)), imaging.Lanczos)
	}
	b := img.Bounds()
	return &Indicator{
		Name:   path,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
		Image:  img,
	}, nil
}

// Builtin returns one of the vector glyphs rasterized at size×size.
func Builtin(name string, size float64, c color.NRGBA) (*Indicator, error) {
	switch name {
	case BuiltinCross:
		return CrossIndicator(size, c), nil
	case BuiltinRing:
		return RingIndicator(size, c), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown builtin indicator %q (must be 'cross' or 'ring')", name)
}

// CrossIndicator draws an "×" glyph, the usual mark for a muted string.
func CrossIndicator(size float64, c color.NRGBA) *Indicator {
	return drawIndicator(BuiltinCross, size, c, func(dc *gg.Context, s, lw float64) {
		inset := lw
		dc.DrawLine(inset, inset, s-inset, s-inset)
		dc.DrawLine(s-inset, inset, inset, s-inset)
		dc.Stroke()
	})
}

// RingIndicator draws an "○" glyph, the usual mark for an open string.
func RingIndicator(size float64, c color.NRGBA) *Indicator {
	return drawIndicator(BuiltinRing, size, c, func(dc *gg.Context, s, lw float64) {
		dc.DrawCircle(s/2, s/2, s/2-lw)
		dc.Stroke()
	})
}

func drawIndicator(name string, size float64, c color.NRGBA, draw func(dc *gg.Context, s, lw float64)) *Indicator {
	px := max(1, int(math.Ceil(size)))
	lw := max(1, size/8)

	dc := gg.NewContext(px, px)
	dc.SetColor(c)
	dc.SetLineWidth(lw)
	dc.SetLineCap(gg.LineCapRound)
	draw(dc, float64(px), lw)

	return &Indicator{
		Name:   name,
		Width:  float64(px),
		Height: float64(px),
		Color:  c,
		Image:  dc.Image(),
	}
}
