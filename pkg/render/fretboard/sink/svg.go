package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/matzehuels/chordview/pkg/fonts"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
	"github.com/matzehuels/chordview/pkg/render/primitive"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background color.NRGBA
	fontFamily string
	title      string
}

// WithBackground paints a full-size rectangle behind the diagram. A fully
// transparent color paints nothing.
func WithBackground(c color.NRGBA) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFontFamily overrides the CSS font-family used for text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithTitle adds a <title> element, typically the chord name.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the diagram as a standalone SVG document.
func RenderSVG(d layout.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(d.Width), num(d.Height), d.Width, d.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.background.A > 0 {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" %s/>`+"\n",
			num(d.Width), num(d.Height), paint("fill", r.background))
	}
	for _, p := range d.Primitives {
		r.writePrimitive(&buf, p)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) writePrimitive(buf *bytes.Buffer, p primitive.Primitive) {
	switch v := p.(type) {
	case primitive.Line:
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" %s stroke-width="%s"/>`+"\n",
			num(v.X1), num(v.Y1), num(v.X2), num(v.Y2), paint("stroke", v.Color), num(v.Width))
	case primitive.Circle:
		attrs := []string{`fill="none"`}
		if v.Fill != nil {
			attrs[0] = paint("fill", *v.Fill)
		}
		if v.Stroke != nil && v.StrokeWidth > 0 {
			attrs = append(attrs, paint("stroke", *v.Stroke), fmt.Sprintf(`stroke-width="%s"`, num(v.StrokeWidth)))
		}
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			num(v.CX), num(v.CY), num(v.Radius), strings.Join(attrs, " "))
	case primitive.Rect:
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
			num(v.Left), num(v.Top), num(v.Width()), num(v.Height()), paint("fill", v.Fill))
	case primitive.Path:
		fmt.Fprintf(buf, `  <path d="%s" %s/>`+"\n", pathData(v.Commands), paint("fill", v.Fill))
	case primitive.Text:
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s" %s>%s</text>`+"\n",
			num(v.X), num(v.Y), escapeXML(r.fontFamily), num(v.Size), paint("fill", v.Color), escapeXML(v.Content))
	case primitive.Image:
		fmt.Fprintf(buf, `  <image x="%s" y="%s" width="%s" height="%s" href="%s"/>`+"\n",
			num(v.X), num(v.Y), num(v.Width), num(v.Height), escapeXML(imageHref(v)))
	}
}

func pathData(cmds []primitive.PathCommand) string {
	parts := make([]string, 0, len(cmds)+1)
	for _, c := range cmds {
		switch c.Op {
		case primitive.QuadTo:
			parts = append(parts, fmt.Sprintf("Q%s,%s %s,%s", num(c.X1), num(c.Y1), num(c.X), num(c.Y)))
		default:
			parts = append(parts, fmt.Sprintf("%s%s,%s", c.Op, num(c.X), num(c.Y)))
		}
	}
	parts = append(parts, "Z")
	return strings.Join(parts, " ")
}

func imageHref(im primitive.Image) string {
	if im.Source == nil {
		return im.Name
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, im.Source); err != nil {
		return im.Name
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// paint renders a color attribute plus an opacity attribute when the color
// is not opaque.
func paint(attr string, c color.NRGBA) string {
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	if c.A == 0xff {
		return fmt.Sprintf(`%s="%s"`, attr, hex)
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%s"`, attr, hex, attr, num(float64(c.A)/255))
}

// num formats a coordinate with at most three decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
