package render

import (
	"github.com/tsawler/dxfpipe/model"
)

// documentBackend collects primitives into a fresh document.
type documentBackend struct {
	doc *model.Document
}

func (b *documentBackend) Polyline(pts []model.Point, closed bool, layer string) {
	b.doc.AddEntity(&model.LWPolyline{Layer: layer, Vertices: pts, Closed: closed})
}

func (b *documentBackend) Text(pos model.Point, height float64, value string, layer string) {
	b.doc.AddEntity(&model.Text{Layer: layer, Insert: pos, Height: height, Value: value})
}

func (b *documentBackend) Point(pos model.Point, layer string) {
	b.doc.AddEntity(&model.PointEntity{Layer: layer, Position: pos})
}

// Flatten returns a new document whose modelspace holds the source
// drawing's geometry with every block reference resolved: inserts become
// concrete polylines, text and points under their insert transforms. The
// result carries the source header (minus stored extents, which no longer
// match byte-for-byte and are recomputed) and layer table, but no block
// definitions. The source document is not modified.
func Flatten(src *model.Document) *model.Document {
	out := model.NewDocument(src.Header.Version)
	out.Header = src.Header
	out.Header.ExtMin = nil
	out.Header.ExtMax = nil
	for _, name := range src.LayerNames() {
		l := src.Layer(name)
		out.AddLayer(l.Name).Color = l.Color
	}

	NewFrontend(src).Draw(&documentBackend{doc: out})

	if ext := out.ModelExtents(); ext.Defined() {
		min, max := ext.Min(), ext.Max()
		out.Header.ExtMin = &min
		out.Header.ExtMax = &max
	}
	return out
}
