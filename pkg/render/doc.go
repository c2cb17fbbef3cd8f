// Package render holds the drawing side of chordview.
//
// # Overview
//
// Rendering a chord diagram happens in two steps:
//
//   - [fretboard/layout] computes an ordered list of drawing primitives
//     (see [primitive]) from a chord, a style and an area size.
//   - [fretboard/sink] turns those primitives into SVG, PNG, PDF or JSON.
//
// Visual parameters live in [fretboard/styles]; barre detection in
// [fretboard/barre].
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). PNG output is rasterized natively by the PNG sink.
//
//	svg := sink.RenderSVG(diagram)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [fretboard/layout]: github.com/matzehuels/chordview/pkg/render/fretboard/layout
// [fretboard/sink]: github.com/matzehuels/chordview/pkg/render/fretboard/sink
// [fretboard/styles]: github.com/matzehuels/chordview/pkg/render/fretboard/styles
// [fretboard/barre]: github.com/matzehuels/chordview/pkg/render/fretboard/barre
// [primitive]: github.com/matzehuels/chordview/pkg/render/primitive
package render
