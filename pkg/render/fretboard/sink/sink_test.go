package sink

import (
	"testing"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

func testDiagram(t *testing.T, frets, fingers string) layout.Diagram {
	t.Helper()
	cfg := styles.Default()
	cfg.HeadRadius = 12
	cfg.NoteStrokeWidth = 2
	cfg.NoteAlpha = 128
	cfg.ClosedString = styles.CrossIndicator(24, styles.White)
	cfg.EmptyString = styles.RingIndicator(24, styles.White)
	cfg.StringOffsetY = 8

	d, err := layout.New(fonts.DefaultFixed).Compute(chord.MustParse(frets, fingers), &cfg, 400, 500)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return d
}
