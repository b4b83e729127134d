package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

// rasterBackend draws primitives into an RGBA image at a fixed DPI.
// Strokes are single-pixel black on white; text uses a fixed bitmap face
// since preview labels do not need font fidelity.
type rasterBackend struct {
	img  *image.RGBA
	proj projector
	ppmm float64 // pixels per millimeter
}

var rasterInk = color.RGBA{A: 255}

func newRasterBackend(ext model.Extents, lay layout.ResolvedLayout, dpi int) *rasterBackend {
	ppmm := float64(dpi) / 25.4
	w := int(math.Round(lay.PageWidth * ppmm))
	h := int(math.Round(lay.PageHeight * ppmm))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &rasterBackend{img: img, proj: newProjector(ext, lay), ppmm: ppmm}
}

func (b *rasterBackend) pixel(pt model.Point) (float64, float64) {
	x, y := b.proj.pageTopDown(pt)
	return x * b.ppmm, y * b.ppmm
}

func (b *rasterBackend) Polyline(pts []model.Point, closed bool, layer string) {
	if len(pts) < 2 {
		return
	}
	x0, y0 := b.pixel(pts[0])
	for _, p := range pts[1:] {
		x1, y1 := b.pixel(p)
		b.segment(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	if closed {
		xc, yc := b.pixel(pts[0])
		b.segment(x0, y0, xc, yc)
	}
}

// segment plots a line by stepping the major axis one pixel at a time.
func (b *rasterBackend) segment(x0, y0, x1, y1 float64) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(x0 + (x1-x0)*t))
		y := int(math.Round(y0 + (y1-y0)*t))
		b.img.SetRGBA(x, y, rasterInk)
	}
}

func (b *rasterBackend) Text(pos model.Point, height float64, value string, layer string) {
	x, y := b.pixel(pos)
	d := font.Drawer{
		Dst:  b.img,
		Src:  image.NewUniform(rasterInk),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(value)
}

func (b *rasterBackend) Point(pos model.Point, layer string) {
	x, y := b.pixel(pos)
	// 3px cross marker
	b.segment(x-1, y, x+1, y)
	b.segment(x, y-1, x, y+1)
}

// writePNG renders doc as a raster preview to w.
func writePNG(w io.Writer, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout, dpi int) error {
	b := newRasterBackend(ext, lay, dpi)
	NewFrontend(doc).Draw(b)
	if err := png.Encode(w, b.img); err != nil {
		return fmt.Errorf("png backend: %w", err)
	}
	return nil
}
