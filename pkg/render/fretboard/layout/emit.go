package layout

import (
	"strconv"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/barre"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
	"github.com/matzehuels/chordview/pkg/render/primitive"
)

// emitter appends the primitives of one diagram in drawing order.
type emitter struct {
	c       *chord.Chord
	cfg     *styles.Config
	g       Geometry
	measure fonts.Measurer
	out     []primitive.Primitive
}

func (em *emitter) add(p primitive.Primitive) { em.out = append(em.out, p) }

func (em *emitter) indicators() {
	slot := em.cfg.IndicatorHeight()
	for i, f := range em.c.Frets {
		var ind *styles.Indicator
		switch f {
		case chord.Closed:
			ind = em.cfg.ClosedString
		case chord.Open:
			ind = em.cfg.EmptyString
		}
		if ind == nil {
			continue
		}
		// shorter indicators sit centred in the tallest indicator's slot
		em.add(primitive.Image{
			Name:   ind.Name,
			Source: ind.Image,
			X:      em.g.GridLeft - ind.Width/2 + em.g.ColumnWidth*float64(i),
			Y:      (slot - ind.Height) / 2,
			Width:  ind.Width,
			Height: ind.Height,
		})
	}
}

func (em *emitter) fretLabels() {
	if !em.g.Exceeds {
		return
	}
	n := em.g.Rows
	switch em.cfg.ShowMode {
	case styles.Simple:
		n = 1
	case styles.Normal:
	}
	for i := range n {
		label := strconv.Itoa(em.g.LeastFret + i)
		m := em.measure.Measure(label, em.cfg.FretTextSize)
		em.add(primitive.Text{
			X:       em.g.FretColumnWidth - m.Width - em.cfg.FretTextOffsetX,
			Y:       em.g.GridTop + em.g.RowHeight*float64(i+1),
			Content: label,
			Size:    em.cfg.FretTextSize,
			Color:   em.cfg.FretTextColor,
		})
	}
}

// head draws the nut as a bar with rounded top corners sitting on the
// first fret line.
func (em *emitter) head() {
	if !em.g.Head || em.g.HeadHeight <= 0 {
		return
	}
	x, y := em.g.GridLeft, em.g.IndicatorHeight
	w, r := em.g.GridWidth, em.g.HeadHeight
	em.add(primitive.Path{
		Commands: []primitive.PathCommand{
			{Op: primitive.MoveTo, X: x, Y: y + r},
			{Op: primitive.QuadTo, X1: x, Y1: y, X: x + r, Y: y},
			{Op: primitive.LineTo, X: x + w - r, Y: y},
			{Op: primitive.QuadTo, X1: x + w, Y1: y, X: x + w, Y: y + r},
		},
		Fill: em.cfg.HeadColor,
	})
}

func (em *emitter) grid() {
	lw, col := em.cfg.GridLineWidth, em.cfg.GridLineColor
	left, right := em.g.GridLeft, em.g.GridLeft+em.g.GridWidth
	top, bottom := em.g.GridTop, em.g.GridTop+em.g.GridHeight
	for _, y := range em.g.HorizontalLines() {
		em.add(primitive.Line{X1: left, Y1: y, X2: right, Y2: y, Color: col, Width: lw})
	}
	for _, x := range em.g.VerticalLines() {
		em.add(primitive.Line{X1: x, Y1: top, X2: x, Y2: bottom, Color: col, Width: lw})
	}
}

func (em *emitter) barre(s barre.Span) {
	r := em.cfg.NoteRadius
	cy := em.g.NoteY(em.g.Row(s.Fret))
	left, right := em.g.NoteX(s.First), em.g.NoteX(s.Last())
	top, bottom := cy-r, cy+r

	// The rect joins the anchor centres; the anchor circles cap both ends.
	em.add(primitive.Rect{
		Left: left, Top: top, Right: right, Bottom: bottom,
		Fill: primitive.WithAlpha(em.cfg.BarreColor, em.cfg.BarreAlpha),
	})
	if sw := em.cfg.BarreStrokeWidth; sw > 0 {
		for _, y := range []float64{top + sw/2, bottom - sw/2} {
			em.add(primitive.Line{X1: left, Y1: y, X2: right, Y2: y, Color: em.cfg.BarreStrokeColor, Width: sw})
		}
	}

	for _, i := range []int{s.First, s.Last()} {
		cx := em.g.NoteX(i)
		em.add(primitive.Circle{
			CX: cx, CY: cy, Radius: r,
			Fill: primitive.Ptr(primitive.WithAlpha(em.cfg.NoteColor, 0xff)),
		})
		if em.c.HasFingers() {
			em.fingerLabel(cx, cy, "1")
		}
	}
}

func (em *emitter) notes(span *barre.Span) {
	r := em.cfg.NoteRadius
	for i, f := range em.c.Frets {
		if f < 1 {
			continue
		}
		if span != nil && span.Absorbs(i, f) {
			continue
		}
		cx, cy := em.g.NoteX(i), em.g.NoteY(em.g.Row(f))
		em.add(primitive.Circle{
			CX: cx, CY: cy, Radius: r,
			Fill: primitive.Ptr(primitive.WithAlpha(em.cfg.NoteColor, em.cfg.NoteAlpha)),
		})
		if finger := em.c.Finger(i); em.c.HasFingers() && finger > 0 {
			em.fingerLabel(cx, cy, strconv.Itoa(finger))
		}
		if sw := em.cfg.NoteStrokeWidth; sw > 0 {
			em.add(primitive.Circle{
				CX: cx, CY: cy, Radius: r,
				Stroke:      primitive.Ptr(em.cfg.NoteStrokeColor),
				StrokeWidth: sw,
			})
		}
	}
}

// fingerLabel centres text on a note. Simple mode shows no finger numbers.
func (em *emitter) fingerLabel(cx, cy float64, label string) {
	switch em.cfg.ShowMode {
	case styles.Simple:
		return
	case styles.Normal:
	}
	m := em.measure.Measure(label, em.cfg.NoteTextSize)
	em.add(primitive.Text{
		X:       cx - m.Width/2,
		Y:       cy + (m.Ascent-m.Descent)/2,
		Content: label,
		Size:    em.cfg.NoteTextSize,
		Color:   em.cfg.NoteTextColor,
	})
}
