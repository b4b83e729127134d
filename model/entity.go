package model

import "math"

// Entity is implemented by every modelspace entity the pipeline
// understands.
//
// Extents returns the entity's own bounding box. For INSERT entities the
// box depends on the referenced block definition and cannot be computed in
// isolation; Insert.Extents therefore returns the undefined box and
// [Document.ModelExtents] resolves the reference.
type Entity interface {
	DXFType() string
	LayerName() string
	Extents() Extents
}

// Line is a LINE entity.
type Line struct {
	Layer      string
	Start, End Point
}

func (l *Line) DXFType() string   { return "LINE" }
func (l *Line) LayerName() string { return l.Layer }

func (l *Line) Extents() Extents {
	return NewExtents(l.Start, l.End)
}

// LWPolyline is a lightweight polyline (LWPOLYLINE entity). Bulges are not
// modeled; arc segments contribute only their endpoints to extents.
type LWPolyline struct {
	Layer    string
	Vertices []Point
	Closed   bool
}

func (p *LWPolyline) DXFType() string   { return "LWPOLYLINE" }
func (p *LWPolyline) LayerName() string { return p.Layer }

func (p *LWPolyline) Extents() Extents {
	e := Extents{}
	for _, v := range p.Vertices {
		e = e.AddPoint(v)
	}
	return e
}

// Circle is a CIRCLE entity.
type Circle struct {
	Layer  string
	Center Point
	Radius float64
}

func (c *Circle) DXFType() string   { return "CIRCLE" }
func (c *Circle) LayerName() string { return c.Layer }

func (c *Circle) Extents() Extents {
	return NewExtents(
		Point{c.Center.X - c.Radius, c.Center.Y - c.Radius},
		Point{c.Center.X + c.Radius, c.Center.Y + c.Radius},
	)
}

// Arc is an ARC entity. Angles are in degrees, counter-clockwise from the
// positive X axis. Extents uses the full circle as a conservative bound.
type Arc struct {
	Layer      string
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (a *Arc) DXFType() string   { return "ARC" }
func (a *Arc) LayerName() string { return a.Layer }

func (a *Arc) Extents() Extents {
	return NewExtents(
		Point{a.Center.X - a.Radius, a.Center.Y - a.Radius},
		Point{a.Center.X + a.Radius, a.Center.Y + a.Radius},
	)
}

// Text is a TEXT entity. Width is estimated from the glyph count since the
// pipeline does not load fonts.
type Text struct {
	Layer  string
	Insert Point
	Height float64
	Value  string
}

func (t *Text) DXFType() string   { return "TEXT" }
func (t *Text) LayerName() string { return t.Layer }

// approximate advance per glyph relative to text height
const textAspect = 0.6

func (t *Text) Extents() Extents {
	w := t.Height * textAspect * float64(len([]rune(t.Value)))
	return NewExtents(t.Insert, Point{t.Insert.X + w, t.Insert.Y + t.Height})
}

// PointEntity is a POINT entity.
type PointEntity struct {
	Layer    string
	Position Point
}

func (p *PointEntity) DXFType() string   { return "POINT" }
func (p *PointEntity) LayerName() string { return p.Layer }

func (p *PointEntity) Extents() Extents {
	return NewExtents(p.Position, p.Position)
}

// Insert is an INSERT entity: a placement of a named block definition.
type Insert struct {
	Layer    string
	Block    string
	Position Point
	ScaleX   float64 // 0 is normalized to 1 by the reader
	ScaleY   float64
	Rotation float64 // degrees, counter-clockwise
}

func (i *Insert) DXFType() string   { return "INSERT" }
func (i *Insert) LayerName() string { return i.Layer }

// Extents returns the undefined box; see the Entity interface note.
func (i *Insert) Extents() Extents {
	return Extents{}
}

// Transform returns the block-to-modelspace transformation for this
// placement: scale, then rotation, then translation, relative to the block
// base point.
func (i *Insert) Transform(base Point) Matrix {
	sx, sy := i.ScaleX, i.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	m := Translate(-base.X, -base.Y)
	m = m.Mul(Scale(sx, sy))
	if i.Rotation != 0 {
		m = m.Mul(Rotate(i.Rotation * math.Pi / 180))
	}
	return m.Mul(Translate(i.Position.X, i.Position.Y))
}
