package sink

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

func TestRenderPNG(t *testing.T) {
	d := testDiagram(t, "x32010", "032010")

	tests := []struct {
		name  string
		scale float64
		w, h  int
	}{
		{"native", 1, 400, 500},
		{"double", 2, 800, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(d, WithScale(tt.scale), WithPNGBackground(styles.Black))
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderPNGDrawsGrid(t *testing.T) {
	d := testDiagram(t, "x32010", "")
	data, err := RenderPNG(d)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	// centre of the first vertical grid line, halfway down the grid
	g := d.Geometry
	x := int(g.VerticalLines()[0])
	y := int(g.GridTop + g.GridHeight/2)
	if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
		t.Errorf("pixel (%d,%d) on the grid is transparent", x, y)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner pixel should stay transparent without a background")
	}
}

func TestRenderPNGErrors(t *testing.T) {
	if _, err := RenderPNG(layout.Diagram{Width: 10, Height: 10}, WithScale(0)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero scale error = %v", err)
	}
	if _, err := RenderPNG(layout.Diagram{}); !errors.Is(err, errors.ErrCodeInvalidLayoutArea) {
		t.Errorf("empty diagram error = %v", err)
	}
}
