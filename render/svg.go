package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

// svgBackend emits primitives as SVG elements. Coordinates are page
// millimeters with the SVG convention of Y running down.
type svgBackend struct {
	sb   strings.Builder
	proj projector
}

func newSVGBackend(ext model.Extents, lay layout.ResolvedLayout) *svgBackend {
	b := &svgBackend{proj: newProjector(ext, lay)}
	fmt.Fprintf(&b.sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.2fmm" height="%.2fmm" viewBox="0 0 %.2f %.2f">`+"\n",
		lay.PageWidth, lay.PageHeight, lay.PageWidth, lay.PageHeight)
	fmt.Fprintf(&b.sb, `<rect width="%.2f" height="%.2f" fill="#FFFFFF"/>`+"\n", lay.PageWidth, lay.PageHeight)
	return b
}

func (b *svgBackend) Polyline(pts []model.Point, closed bool, layer string) {
	if len(pts) < 2 {
		return
	}
	var coords []string
	for _, p := range pts {
		x, y := b.proj.pageTopDown(p)
		coords = append(coords, fmt.Sprintf("%.3f,%.3f", x, y))
	}
	tag := "polyline"
	if closed {
		tag = "polygon"
	}
	fmt.Fprintf(&b.sb, `<%s points="%s" fill="none" stroke="#000000" stroke-width="0.2"/>`+"\n",
		tag, strings.Join(coords, " "))
}

func (b *svgBackend) Text(pos model.Point, height float64, value string, layer string) {
	x, y := b.proj.pageTopDown(pos)
	fmt.Fprintf(&b.sb, `<text x="%.3f" y="%.3f" font-size="%.3f" fill="#000000">%s</text>`+"\n",
		x, y, height*b.proj.lay.Scale, escapeXML(value))
}

func (b *svgBackend) Point(pos model.Point, layer string) {
	x, y := b.proj.pageTopDown(pos)
	fmt.Fprintf(&b.sb, `<circle cx="%.3f" cy="%.3f" r="0.3" fill="#000000"/>`+"\n", x, y)
}

func (b *svgBackend) finish() string {
	b.sb.WriteString("</svg>\n")
	return b.sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// writeSVG renders doc as a vector preview to w.
func writeSVG(w io.Writer, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout) error {
	b := newSVGBackend(ext, lay)
	NewFrontend(doc).Draw(b)
	if _, err := io.WriteString(w, b.finish()); err != nil {
		return fmt.Errorf("svg backend: %w", err)
	}
	return nil
}
