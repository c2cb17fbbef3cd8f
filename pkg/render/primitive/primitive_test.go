package primitive

import (
	"image/color"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		p    Primitive
		want Kind
	}{
		{Line{}, KindLine},
		{Circle{}, KindCircle},
		{Rect{}, KindRect},
		{Path{}, KindPath},
		{Text{}, KindText},
		{Image{}, KindImage},
	}
	for _, tt := range tests {
		if got := tt.p.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestRectExtent(t *testing.T) {
	r := Rect{Left: 10, Top: 5, Right: 40, Bottom: 25}
	if r.Width() != 30 || r.Height() != 20 {
		t.Errorf("Width/Height = %v/%v, want 30/20", r.Width(), r.Height())
	}
}

func TestWithAlphaAndPtr(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	half := WithAlpha(white, 128)
	if half.A != 128 || half.R != 255 {
		t.Errorf("WithAlpha = %+v", half)
	}
	if white.A != 255 {
		t.Error("WithAlpha mutated its argument")
	}

	p := Ptr(white)
	p.R = 0
	if white.R != 255 {
		t.Error("Ptr should copy")
	}
}

func TestCountAndFilter(t *testing.T) {
	ps := []Primitive{
		Line{X1: 1}, Circle{CX: 1}, Line{X1: 2}, Text{Content: "3"}, Circle{CX: 2},
	}
	if n := Count(ps, KindLine); n != 2 {
		t.Errorf("Count(line) = %d, want 2", n)
	}
	if n := Count(ps, KindImage); n != 0 {
		t.Errorf("Count(image) = %d, want 0", n)
	}

	circles := Filter[Circle](ps)
	if len(circles) != 2 || circles[0].CX != 1 || circles[1].CX != 2 {
		t.Errorf("Filter[Circle] = %+v", circles)
	}
	texts := Filter[Text](ps)
	if len(texts) != 1 || texts[0].Content != "3" {
		t.Errorf("Filter[Text] = %+v", texts)
	}
}
