package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// Terminal fretboard glyphs.
const (
	tbNote    = "●"
	tbClosed  = "x"
	tbOpen    = "o"
	tbString  = "│"
	tbFret    = "┼"
	tbNut     = "═"
	tbBarre   = "━━"
	tbSpacing = "  "
)

var (
	styleBoardGrid  = lipgloss.NewStyle().Foreground(colorGray)
	styleBoardNote  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleBoardLabel = lipgloss.NewStyle().Foreground(colorDim)
)

// boardEngine computes the geometry behind terminal previews. Only the
// fret window and the barre are used, so a fixed-ratio measurer suffices.
var boardEngine = layout.New(fonts.DefaultFixed)

// renderFretboard draws c as text using the same fret window and barre
// detection as the diagram renderers. Strings run left to right from the
// lowest string; each row is one fret.
func renderFretboard(c *chord.Chord, mode styles.ShowMode) (string, error) {
	cfg := styles.Default()
	cfg.ShowMode = mode
	d, err := boardEngine.Compute(c, &cfg, pipelineArea, pipelineArea)
	if err != nil {
		return "", err
	}
	g := d.Geometry

	labelWidth := len(strconv.Itoa(g.LeastFret + g.Rows - 1))
	if !g.Exceeds {
		labelWidth = 0
	}
	pad := strings.Repeat(" ", labelWidth+1)

	var b strings.Builder

	// indicator row
	b.WriteString(pad)
	for i, f := range c.Frets {
		if i > 0 {
			b.WriteString(tbSpacing)
		}
		switch f {
		case chord.Closed:
			b.WriteString(styleBoardLabel.Render(tbClosed))
		case chord.Open:
			b.WriteString(styleBoardLabel.Render(tbOpen))
		default:
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	if g.Head {
		b.WriteString(pad + styleBoardGrid.Render(strings.Repeat(tbNut, chord.Strings*3-2)) + "\n")
	}

	barreRow := 0
	if d.Barre != nil {
		barreRow = g.Row(d.Barre.Fret)
	}

	for row := 1; row <= g.Rows; row++ {
		label := ""
		if g.Exceeds && (mode == styles.Normal || row == 1) {
			label = strconv.Itoa(g.LeastFret + row - 1)
		}
		b.WriteString(styleBoardLabel.Render(fmt.Sprintf("%*s", labelWidth, label)) + " ")

		for i, f := range c.Frets {
			if i > 0 {
				if row == barreRow && d.Barre.Contains(i-1) && d.Barre.Contains(i) {
					b.WriteString(styleBoardNote.Render(tbBarre))
				} else {
					b.WriteString(tbSpacing)
				}
			}
			pressed := f > 0 && g.Row(f) == row
			inBarre := row == barreRow && d.Barre.Contains(i)
			switch {
			case pressed || inBarre:
				b.WriteString(styleBoardNote.Render(noteGlyph(c, i, mode)))
			default:
				b.WriteString(styleBoardGrid.Render(tbString))
			}
		}
		b.WriteString("\n")

		b.WriteString(pad + styleBoardGrid.Render(fretLine()) + "\n")
	}
	return b.String(), nil
}

// pipelineArea is the square area previews are laid out in. It only has
// to be large enough for the default style not to collapse.
const pipelineArea = 500

func noteGlyph(c *chord.Chord, i int, mode styles.ShowMode) string {
	if mode == styles.Normal {
		if f := c.Finger(i); f > 0 {
			return strconv.Itoa(f)
		}
	}
	return tbNote
}

func fretLine() string {
	parts := make([]string, chord.Strings)
	for i := range parts {
		parts[i] = tbFret
	}
	return strings.Join(parts, "──")
}
