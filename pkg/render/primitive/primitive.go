// Package primitive defines the drawing primitives produced by the fretboard
// layout engine.
//
// A diagram is an ordered slice of [Primitive] values in a 2D coordinate
// space with the origin at the top-left corner and y growing downwards.
// Renderers draw them in slice order, so later primitives paint over
// earlier ones.
//
// Every primitive carries its complete style (colors with alpha, stroke
// widths, text size). There is no shared paint state between primitives, so
// a renderer may draw them in any context without tracking what the
// previous primitive configured.
package primitive

import (
	"image"
	"image/color"
)

// Kind identifies the concrete primitive type.
type Kind string

// Primitive kinds.
const (
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindPath   Kind = "path"
	KindText   Kind = "text"
	KindImage  Kind = "image"
)

// Primitive is implemented by every drawable shape in this package. The
// unexported method keeps the set closed so renderers can switch on it
// exhaustively.
type Primitive interface {
	Kind() Kind
	primitive()
}

// Line is a straight stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          color.NRGBA
	Width          float64
}

// Circle is a filled and/or stroked circle. A nil Fill or Stroke means that
// part is not drawn.
type Circle struct {
	CX, CY, Radius float64
	Fill           *color.NRGBA
	Stroke         *color.NRGBA
	StrokeWidth    float64
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	Left, Top, Right, Bottom float64
	Fill                     color.NRGBA
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Op is a path drawing operation.
type Op string

// Path operations.
const (
	MoveTo Op = "M"
	LineTo Op = "L"
	QuadTo Op = "Q" // quadratic Bézier: control point (X1,Y1), end point (X,Y)
)

// PathCommand is one step of a Path. X1/Y1 are only used by QuadTo.
type PathCommand struct {
	Op     Op
	X1, Y1 float64
	X, Y   float64
}

// Path is a filled outline. It is implicitly closed when filled.
type Path struct {
	Commands []PathCommand
	Fill     color.NRGBA
}

// Text is a single line of text. X,Y is the left end of the baseline.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Color   color.NRGBA
}

// Image places a bitmap with its top-left corner at X,Y. Name identifies the
// image for renderers that reference assets by name; Source holds decoded
// pixels when they are available.
type Image struct {
	Name          string
	Source        image.Image
	X, Y          float64
	Width, Height float64
}

func (Line) Kind() Kind   { return KindLine }
func (Circle) Kind() Kind { return KindCircle }
func (Rect) Kind() Kind   { return KindRect }
func (Path) Kind() Kind   { return KindPath }
func (Text) Kind() Kind   { return KindText }
func (Image) Kind() Kind  { return KindImage }

func (Line) primitive()   {}
func (Circle) primitive() {}
func (Rect) primitive()   {}
func (Path) primitive()   {}
func (Text) primitive()   {}
func (Image) primitive()  {}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}

// Ptr returns a pointer to a copy of c, for the optional Circle colors.
func Ptr(c color.NRGBA) *color.NRGBA { return &c }

// Count returns how many primitives of kind k are in ps.
func Count(ps []Primitive, k Kind) int {
	n := 0
	for _, p := range ps {
		if p.Kind() == k {
			n++
		}
	}
	return n
}

// Filter returns the primitives of type T in order.
func Filter[T Primitive](ps []Primitive) []T {
	var out []T
	for _, p := range ps {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
