package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

// pdfBackend draws primitives onto one fpdf page. Black strokes on a
// white page, matching the print-oriented preview style.
type pdfBackend struct {
	pdf  *fpdf.Fpdf
	proj projector
}

func newPDFBackend(ext model.Extents, lay layout.ResolvedLayout) *pdfBackend {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: lay.PageWidth, Ht: lay.PageHeight},
	})
	pdf.SetCreator("dxfpipe", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	return &pdfBackend{pdf: pdf, proj: newProjector(ext, lay)}
}

func (b *pdfBackend) Polyline(pts []model.Point, closed bool, layer string) {
	if len(pts) < 2 {
		return
	}
	x0, y0 := b.proj.pageTopDown(pts[0])
	for _, p := range pts[1:] {
		x1, y1 := b.proj.pageTopDown(p)
		b.pdf.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	if closed {
		xc, yc := b.proj.pageTopDown(pts[0])
		b.pdf.Line(x0, y0, xc, yc)
	}
}

func (b *pdfBackend) Text(pos model.Point, height float64, value string, layer string) {
	sizeMM := height * b.proj.lay.Scale
	if sizeMM <= 0 {
		return
	}
	b.pdf.SetFont("Helvetica", "", sizeMM*mmToPoints)
	x, y := b.proj.pageTopDown(pos)
	b.pdf.Text(x, y, value)
}

func (b *pdfBackend) Point(pos model.Point, layer string) {
	x, y := b.proj.pageTopDown(pos)
	b.pdf.Circle(x, y, 0.3, "D")
}

// writePDF renders doc as a one-page PDF preview to w.
func writePDF(w io.Writer, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout) error {
	b := newPDFBackend(ext, lay)
	NewFrontend(doc).Draw(b)
	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("pdf backend: %w", err)
	}
	return nil
}
