package layout

import (
	"strconv"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// Row counts.
const (
	DefaultRows = 4
	SimpleRows  = 3
)

// Window thresholds on the highest pressed fret.
const (
	defaultFretSpan = 4 // above this the window slides and labels appear
	headMaxFret     = 5 // above this there is no nut to draw
)

// Geometry holds every derived quantity of one diagram. Lengths are in
// output units; X grows rightwards, Y downwards.
type Geometry struct {
	Rows        int  `json:"rows"`
	LeastFret   int  `json:"least_fret"`
	LargestFret int  `json:"largest_fret"`
	Exceeds     bool `json:"exceeds"`
	Head        bool `json:"head"`

	FretColumnWidth float64 `json:"fret_column_width"`
	IndicatorHeight float64 `json:"indicator_height"`
	HeadHeight      float64 `json:"head_height"`

	GridLeft   float64 `json:"grid_left"`
	GridTop    float64 `json:"grid_top"`
	GridWidth  float64 `json:"grid_width"`
	GridHeight float64 `json:"grid_height"`

	ColumnWidth float64 `json:"column_width"`
	RowHeight   float64 `json:"row_height"`
	LineWidth   float64 `json:"line_width"`
}

// Rows returns the number of fret rows for c in the given mode.
func Rows(c *chord.Chord, mode styles.ShowMode) int {
	switch mode {
	case styles.Simple:
		if c.LargestFret()-c.LeastFret() < 3 && c.LeastFret() == 1 {
			return SimpleRows
		}
		return DefaultRows
	case styles.Normal:
		return DefaultRows
	}
	return DefaultRows
}

// computeGeometry derives the diagram geometry. The caller validates the
// chord shape and the area beforehand.
func computeGeometry(c *chord.Chord, cfg *styles.Config, m fonts.Measurer, width, height float64) Geometry {
	g := Geometry{
		Rows:        Rows(c, cfg.ShowMode),
		LeastFret:   c.LeastFret(),
		LargestFret: c.LargestFret(),
		LineWidth:   cfg.GridLineWidth,
	}
	g.Exceeds = g.LargestFret > defaultFretSpan
	g.Head = g.LargestFret <= headMaxFret

	widest := strconv.Itoa(g.LeastFret + g.Rows - 1)
	g.FretColumnWidth = m.Measure(widest, cfg.FretTextSize).Width + cfg.FretTextOffsetX

	if c.HasClosed() || c.HasOpen() {
		g.IndicatorHeight = cfg.IndicatorHeight() + cfg.StringOffsetY
	}
	if g.Head {
		g.HeadHeight = cfg.HeadRadius
	}

	g.GridLeft = g.FretColumnWidth
	g.GridTop = g.IndicatorHeight + g.HeadHeight
	g.GridWidth = width - g.FretColumnWidth - cfg.NoteRadius
	g.GridHeight = height - g.IndicatorHeight - g.HeadHeight
	g.ColumnWidth = g.GridWidth / (chord.Strings - 1)
	g.RowHeight = g.GridHeight / float64(g.Rows)
	return g
}

// Row maps a pressed fret to its 1-based row in the visible window.
func (g Geometry) Row(fret int) int {
	if !g.Exceeds {
		return fret
	}
	if fret == g.LeastFret {
		return 1
	}
	if m := (fret - g.LeastFret) % g.LeastFret; m != 0 {
		return m + 1
	}
	return fret - g.LeastFret + 1
}

// NoteX returns the horizontal centre of a note on string i. The last
// string is pulled in by a full line width to stay inside the grid.
func (g Geometry) NoteX(i int) float64 {
	inset := g.LineWidth / 2
	if i == chord.Strings-1 {
		inset = g.LineWidth
	}
	return g.GridLeft + g.LineWidth/2 + g.ColumnWidth*float64(i) - inset
}

// NoteY returns the vertical centre of a note in the given 1-based row.
func (g Geometry) NoteY(row int) float64 {
	return g.GridTop + g.RowHeight*float64(row) - g.RowHeight/2
}

// HorizontalLines returns the y coordinates of the rows+1 fret lines.
func (g Geometry) HorizontalLines() []float64 {
	return linePositions(g.GridTop, g.GridHeight, g.LineWidth, g.Rows+1)
}

// VerticalLines returns the x coordinates of the six string lines.
func (g Geometry) VerticalLines() []float64 {
	return linePositions(g.GridLeft, g.GridWidth, g.LineWidth, chord.Strings)
}

// collapsed reports whether the grid is too small to hold its lines with a
// positive gap between neighbours.
func (g Geometry) collapsed() bool {
	return g.GridWidth <= 0 || g.GridHeight <= 0 ||
		lineGap(g.GridWidth, g.LineWidth, chord.Strings) <= 0 ||
		lineGap(g.GridHeight, g.LineWidth, g.Rows+1) <= 0
}

func lineGap(extent, lw float64, n int) float64 {
	return (extent - lw*float64(n)) / float64(n-1)
}

// linePositions spreads n lines of width lw over extent so that the first
// line's outer edge sits on origin and the last one's on origin+extent.
func linePositions(origin, extent, lw float64, n int) []float64 {
	cell := lineGap(extent, lw, n)
	out := make([]float64, n)
	for i := range out {
		out[i] = origin + lw/2 + float64(i)*(cell+lw)
	}
	return out
}
