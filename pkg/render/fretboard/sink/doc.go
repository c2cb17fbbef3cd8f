// Package sink turns laid-out chord diagrams into output formats.
//
// # Overview
//
// A "sink" draws a [layout.Diagram] into a final format. Primitives are
// drawn in slice order, so later ones paint over earlier ones.
//
//   - SVG: one element per primitive ([RenderSVG])
//   - PNG: native rasterization with fogleman/gg ([RenderPNG])
//   - PDF: SVG converted by rsvg-convert ([RenderPDF])
//   - JSON: geometry and primitives for external tools ([RenderJSON])
//
// Basic usage:
//
//	d, err := layout.New(nil).Compute(c, &cfg, 400, 500)
//	svg := sink.RenderSVG(d, sink.WithBackground(cfg.Background))
//	png, err := sink.RenderPNG(d, sink.WithScale(2))
//
// # Text
//
// SVG text uses the Go font family with a sans-serif fallback. The PNG sink
// draws text with the embedded Go Regular face so raster output matches the
// metrics the layout engine measured with.
//
// # Images
//
// Indicator images carrying decoded pixels are embedded in SVG as PNG data
// URIs and composited directly in PNG output. Images without pixels are
// referenced by name in SVG and skipped in PNG.
//
// [layout.Diagram]: github.com/matzehuels/chordview/pkg/render/fretboard/layout.Diagram
package sink
