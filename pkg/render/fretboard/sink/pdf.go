package sink

import (
	"bytes"
	"context"

	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/render"
	"github.com/matzehuels/chordview/pkg/render/fretboard/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the SVG the PDF is built from.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF converts the SVG rendering of d with rsvg-convert. It fails
// with UNSUPPORTED when rsvg-convert is not installed.
func RenderPDF(ctx context.Context, d layout.Diagram, opts ...PDFOption) ([]byte, error) {
	var r pdfRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out, err := render.ToPDF(ctx, RenderSVG(d, r.svgOpts...))
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		return nil, errors.New(errors.ErrCodeInternal, "rsvg-convert produced no PDF (%d bytes)", len(out))
	}
	return out, nil
}
