package sink

import (
	"encoding/json"
	"image/color"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/render/fretboard/barre"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
	"github.com/matzehuels/chordview/pkg/render/primitive"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	chord *chord.Chord
	mode  string
}

// WithJSONChord records the input chord in the output.
func WithJSONChord(c *chord.Chord) JSONOption { return func(r *jsonRenderer) { r.chord = c } }

// WithJSONMode records the show mode the diagram was laid out with.
func WithJSONMode(m styles.ShowMode) JSONOption {
	return func(r *jsonRenderer) { r.mode = m.String() }
}

type jsonOutput struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Mode       string          `json:"mode,omitempty"`
	Chord      *chord.Chord    `json:"chord,omitempty"`
	Geometry   layout.Geometry `json:"geometry"`
	Barre      *barre.Span     `json:"barre,omitempty"`
	Primitives []any           `json:"primitives"`
}

type jsonLine struct {
	Kind  primitive.Kind `json:"kind"`
	X1    float64        `json:"x1"`
	Y1    float64        `json:"y1"`
	X2    float64        `json:"x2"`
	Y2    float64        `json:"y2"`
	Color string         `json:"color"`
	Width float64        `json:"width"`
}

type jsonCircle struct {
	Kind        primitive.Kind `json:"kind"`
	CX          float64        `json:"cx"`
	CY          float64        `json:"cy"`
	Radius      float64        `json:"radius"`
	Fill        string         `json:"fill,omitempty"`
	Stroke      string         `json:"stroke,omitempty"`
	StrokeWidth float64        `json:"stroke_width,omitempty"`
}

type jsonRect struct {
	Kind   primitive.Kind `json:"kind"`
	Left   float64        `json:"left"`
	Top    float64        `json:"top"`
	Right  float64        `json:"right"`
	Bottom float64        `json:"bottom"`
	Fill   string         `json:"fill"`
}

type jsonPath struct {
	Kind     primitive.Kind `json:"kind"`
	Commands []jsonPathCmd  `json:"commands"`
	Fill     string         `json:"fill"`
}

type jsonPathCmd struct {
	Op primitive.Op `json:"op"`
	X1 float64      `json:"x1,omitempty"`
	Y1 float64      `json:"y1,omitempty"`
	X  float64      `json:"x"`
	Y  float64      `json:"y"`
}

type jsonText struct {
	Kind    primitive.Kind `json:"kind"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Content string         `json:"content"`
	Size    float64        `json:"size"`
	Color   string         `json:"color"`
}

type jsonImage struct {
	Kind   primitive.Kind `json:"kind"`
	Name   string         `json:"name"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
}

// RenderJSON exports the diagram geometry and primitives as a
// pretty-printed JSON document. Colors are written as #rrggbb or
// #aarrggbb; image pixels are omitted, only their names are kept.
//
// The output is a pure function of its input, so identical diagrams produce
// byte-identical documents.
func RenderJSON(d layout.Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      d.Width,
		Height:     d.Height,
		Mode:       r.mode,
		Chord:      r.chord,
		Geometry:   d.Geometry,
		Barre:      d.Barre,
		Primitives: make([]any, 0, len(d.Primitives)),
	}
	for _, p := range d.Primitives {
		out.Primitives = append(out.Primitives, toJSON(p))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSON(p primitive.Primitive) any {
	switch v := p.(type) {
	case primitive.Line:
		return jsonLine{Kind: v.Kind(), X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2, Color: styles.FormatColor(v.Color), Width: v.Width}
	case primitive.Circle:
		c := jsonCircle{Kind: v.Kind(), CX: v.CX, CY: v.CY, Radius: v.Radius}
		c.Fill = optColor(v.Fill)
		if v.Stroke != nil {
			c.Stroke = optColor(v.Stroke)
			c.StrokeWidth = v.StrokeWidth
		}
		return c
	case primitive.Rect:
		return jsonRect{Kind: v.Kind(), Left: v.Left, Top: v.Top, Right: v.Right, Bottom: v.Bottom, Fill: styles.FormatColor(v.Fill)}
	case primitive.Path:
		cmds := make([]jsonPathCmd, len(v.Commands))
		for i, c := range v.Commands {
			cmds[i] = jsonPathCmd{Op: c.Op, X1: c.X1, Y1: c.Y1, X: c.X, Y: c.Y}
		}
		return jsonPath{Kind: v.Kind(), Commands: cmds, Fill: styles.FormatColor(v.Fill)}
	case primitive.Text:
		return jsonText{Kind: v.Kind(), X: v.X, Y: v.Y, Content: v.Content, Size: v.Size, Color: styles.FormatColor(v.Color)}
	case primitive.Image:
		return jsonImage{Kind: v.Kind(), Name: v.Name, X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
	}
	return nil
}

func optColor(c *color.NRGBA) string {
	if c == nil {
		return ""
	}
	return styles.FormatColor(*c)
}
