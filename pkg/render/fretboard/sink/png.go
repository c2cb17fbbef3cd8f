package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/primitive"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.NRGBA
	font       *fonts.Font
	faces      map[float64]font.Face
}

// WithScale sets the raster scale factor (default 1). A 400×500 diagram
// rendered at scale 2 is 800×1000 pixels.
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGBackground fills the image before drawing. The default is
// transparent.
func WithPNGBackground(c color.NRGBA) PNGOption { return func(r *pngRenderer) { r.background = c } }

// WithFont draws text with f instead of Go Regular. Layouts should be
// computed with the same font for labels to line up.
func WithFont(f *fonts.Font) PNGOption { return func(r *pngRenderer) { r.font = f } }

// RenderPNG rasterizes the diagram.
func RenderPNG(d layout.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, faces: make(map[float64]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", r.scale)
	}
	if r.font == nil {
		r.font = fonts.GoRegular()
	}
	defer r.closeFaces()

	w := int(math.Ceil(d.Width * r.scale))
	h := int(math.Ceil(d.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayoutArea, "cannot rasterize a %vx%v diagram", d.Width, d.Height)
	}

	dc := gg.NewContext(w, h)
	if r.background.A > 0 {
		dc.SetColor(r.background)
		dc.Clear()
	}
	for _, p := range d.Primitives {
		if err := r.draw(dc, p); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) draw(dc *gg.Context, p primitive.Primitive) error {
	s := r.scale
	switch v := p.(type) {
	case primitive.Line:
		if v.Width <= 0 {
			return nil
		}
		dc.SetColor(v.Color)
		dc.SetLineWidth(v.Width * s)
		dc.SetLineCapButt()
		dc.DrawLine(v.X1*s, v.Y1*s, v.X2*s, v.Y2*s)
		dc.Stroke()
	case primitive.Circle:
		if v.Fill != nil {
			dc.SetColor(*v.Fill)
			dc.DrawCircle(v.CX*s, v.CY*s, v.Radius*s)
			dc.Fill()
		}
		if v.Stroke != nil && v.StrokeWidth > 0 {
			dc.SetColor(*v.Stroke)
			dc.SetLineWidth(v.StrokeWidth * s)
			dc.DrawCircle(v.CX*s, v.CY*s, v.Radius*s)
			dc.Stroke()
		}
	case primitive.Rect:
		dc.SetColor(v.Fill)
		dc.DrawRectangle(v.Left*s, v.Top*s, v.Width()*s, v.Height()*s)
		dc.Fill()
	case primitive.Path:
		dc.NewSubPath()
		for _, c := range v.Commands {
			switch c.Op {
			case primitive.MoveTo:
				dc.MoveTo(c.X*s, c.Y*s)
			case primitive.LineTo:
				dc.LineTo(c.X*s, c.Y*s)
			case primitive.QuadTo:
				dc.QuadraticTo(c.X1*s, c.Y1*s, c.X*s, c.Y*s)
			}
		}
		dc.ClosePath()
		dc.SetColor(v.Fill)
		dc.Fill()
	case primitive.Text:
		face, err := r.face(v.Size * s)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(v.Color)
		dc.DrawString(v.Content, v.X*s, v.Y*s)
	case primitive.Image:
		if v.Source == nil {
			return nil
		}
		img := imaging.Resize(v.Source, max(1, int(math.Round(v.Width*s))), max(1, int(math.Round(v.Height*s))), imaging.Lanczos)
		dc.DrawImage(img, int(math.Round(v.X*s)), int(math.Round(v.Y*s)))
	}
	return nil
}

func (r *pngRenderer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := r.font.Face(size)
	if err != nil {
		return nil, err
	}
	r.faces[size] = f
	return f, nil
}

func (r *pngRenderer) closeFaces() {
	for _, f := range r.faces {
		_ = f.Close()
	}
}
