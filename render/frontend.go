package render

import (
	"math"

	"github.com/tsawler/dxfpipe/model"
)

// Backend receives drawing-space primitives from the Frontend.
type Backend interface {
	// Polyline is an open or closed stroke through pts (at least two).
	Polyline(pts []model.Point, closed bool, layer string)
	// Text is a text run anchored at its lower-left corner. Height is in
	// drawing units, already scaled by any enclosing INSERT.
	Text(pos model.Point, height float64, value string, layer string)
	// Point is a position marker.
	Point(pos model.Point, layer string)
}

// segments used to tessellate a full circle
const circleSegments = 64

// insert recursion guard, matching the model package's expansion limit
const maxInsertDepth = 16

// Frontend walks a document's modelspace and emits primitives to a
// Backend. INSERT references are resolved recursively with their affine
// transforms applied; unsupported or missing references are skipped, as
// the reader's audit has already reported them.
type Frontend struct {
	doc *model.Document
}

// NewFrontend creates a frontend for doc.
func NewFrontend(doc *model.Document) *Frontend {
	return &Frontend{doc: doc}
}

// Draw emits the whole modelspace to b.
func (f *Frontend) Draw(b Backend) {
	f.draw(f.doc.Entities, model.Identity(), 0, b)
}

func (f *Frontend) draw(entities []model.Entity, m model.Matrix, depth int, b Backend) {
	if depth > maxInsertDepth {
		return
	}
	for _, e := range entities {
		switch v := e.(type) {
		case *model.Line:
			b.Polyline(transform([]model.Point{v.Start, v.End}, m), false, v.Layer)
		case *model.LWPolyline:
			if len(v.Vertices) >= 2 {
				b.Polyline(transform(v.Vertices, m), v.Closed, v.Layer)
			}
		case *model.Circle:
			pts := tessellate(v.Center, v.Radius, 0, 360, circleSegments, m)
			// last sample duplicates the first; the closed flag re-closes it
			b.Polyline(pts[:len(pts)-1], true, v.Layer)
		case *model.Arc:
			start, end := v.StartAngle, v.EndAngle
			for end <= start {
				end += 360
			}
			n := int(float64(circleSegments) * (end - start) / 360)
			if n < 2 {
				n = 2
			}
			b.Polyline(tessellate(v.Center, v.Radius, start, end, n, m), false, v.Layer)
		case *model.Text:
			b.Text(m.Apply(v.Insert), v.Height*scaleOf(m), v.Value, v.Layer)
		case *model.PointEntity:
			b.Point(m.Apply(v.Position), v.Layer)
		case *model.Insert:
			blk := f.doc.Block(v.Block)
			if blk == nil {
				continue
			}
			f.draw(blk.Entities, v.Transform(blk.Base).Mul(m), depth+1, b)
		}
	}
}

func transform(pts []model.Point, m model.Matrix) []model.Point {
	out := make([]model.Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// tessellate samples an arc from startDeg to endDeg (counter-clockwise)
// into n chords, inclusive of both endpoints, transformed by m.
func tessellate(center model.Point, radius, startDeg, endDeg float64, n int, m model.Matrix) []model.Point {
	pts := make([]model.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (startDeg + (endDeg-startDeg)*float64(i)/float64(n)) * math.Pi / 180
		sin, cos := math.Sincos(a)
		pts = append(pts, m.Apply(model.Point{
			X: center.X + radius*cos,
			Y: center.Y + radius*sin,
		}))
	}
	return pts
}

// scaleOf approximates the uniform scale of m by the length of its
// transformed x unit vector; sufficient for text sizing.
func scaleOf(m model.Matrix) float64 {
	return math.Hypot(m[0], m[1])
}
