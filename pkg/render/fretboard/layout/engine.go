package layout

import (
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/barre"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
	"github.com/matzehuels/chordview/pkg/render/primitive"
)

// Engine lays out chord diagrams. The zero value is not usable; create
// engines with New.
type Engine struct {
	measure fonts.Measurer
}

// New returns an engine that measures text with m. A nil m selects the
// embedded Go Regular font.
func New(m fonts.Measurer) *Engine {
	if m == nil {
		m = fonts.GoRegular()
	}
	return &Engine{measure: m}
}

// Diagram is the full result of a layout: the primitives plus the geometry
// and barre they were derived from.
type Diagram struct {
	Width      float64               `json:"width"`
	Height     float64               `json:"height"`
	Geometry   Geometry              `json:"geometry"`
	Barre      *barre.Span           `json:"barre,omitempty"`
	Primitives []primitive.Primitive `json:"-"`
}

// Layout returns the primitives for c drawn into a width×height area.
// A nil cfg selects styles.Default. A nil chord yields no primitives and no
// error.
func (e *Engine) Layout(c *chord.Chord, cfg *styles.Config, width, height float64) ([]primitive.Primitive, error) {
	d, err := e.Compute(c, cfg, width, height)
	if err != nil {
		return nil, err
	}
	return d.Primitives, nil
}

// Compute is like Layout but also returns the derived geometry.
func (e *Engine) Compute(c *chord.Chord, cfg *styles.Config, width, height float64) (Diagram, error) {
	if c == nil {
		return Diagram{Width: width, Height: height, Primitives: []primitive.Primitive{}}, nil
	}
	if err := c.ValidateShape(); err != nil {
		return Diagram{}, err
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return Diagram{}, err
	}
	if cfg == nil {
		def := styles.Default()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return Diagram{}, err
	}

	g := computeGeometry(c, cfg, e.measure, width, height)
	if g.collapsed() {
		return Diagram{}, errors.New(errors.ErrCodeInvalidLayoutArea,
			"area %vx%v leaves no room for the grid (grid %vx%v, line width %v)", width, height, g.GridWidth, g.GridHeight, g.LineWidth)
	}

	d := Diagram{Width: width, Height: height, Geometry: g}
	span, ok := barre.Detect(c)
	if ok {
		d.Barre = &span
	}

	em := emitter{c: c, cfg: cfg, g: g, measure: e.measure}
	em.indicators()
	em.fretLabels()
	em.head()
	em.grid()
	if ok {
		em.barre(span)
	}
	em.notes(d.Barre)

	d.Primitives = em.out
	return d, nil
}
