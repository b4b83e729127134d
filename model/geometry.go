package model

import "math"

// Point represents a 2D point in drawing units.
type Point struct {
	X, Y float64
}

// Extents represents an axis-aligned bounding box in drawing units.
//
// The zero value is the undefined state: a box that contains nothing and
// reports Defined() == false. This is distinct from a degenerate box at the
// origin, which is defined but has zero width and height.
type Extents struct {
	MinX, MinY float64
	MaxX, MaxY float64

	defined bool
}

// NewExtents creates a defined box from two opposite corners, normalizing
// the coordinate order.
func NewExtents(a, b Point) Extents {
	return Extents{
		MinX:    math.Min(a.X, b.X),
		MinY:    math.Min(a.Y, b.Y),
		MaxX:    math.Max(a.X, b.X),
		MaxY:    math.Max(a.Y, b.Y),
		defined: true,
	}
}

// Defined reports whether the box holds any data.
func (e Extents) Defined() bool {
	return e.defined
}

// Width returns the horizontal size, or 0 for an undefined box.
func (e Extents) Width() float64 {
	if !e.defined {
		return 0
	}
	return e.MaxX - e.MinX
}

// Height returns the vertical size, or 0 for an undefined box.
func (e Extents) Height() float64 {
	if !e.defined {
		return 0
	}
	return e.MaxY - e.MinY
}

// Min returns the lower-left corner.
func (e Extents) Min() Point {
	return Point{e.MinX, e.MinY}
}

// Max returns the upper-right corner.
func (e Extents) Max() Point {
	return Point{e.MaxX, e.MaxY}
}

// AddPoint returns the box grown to contain p. Adding a point to an
// undefined box yields a defined box containing exactly that point.
func (e Extents) AddPoint(p Point) Extents {
	if !e.defined {
		return Extents{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y, defined: true}
	}
	return Extents{
		MinX:    math.Min(e.MinX, p.X),
		MinY:    math.Min(e.MinY, p.Y),
		MaxX:    math.Max(e.MaxX, p.X),
		MaxY:    math.Max(e.MaxY, p.Y),
		defined: true,
	}
}

// Union returns the smallest box containing both operands. An undefined
// operand contributes nothing.
func (e Extents) Union(other Extents) Extents {
	if !other.defined {
		return e
	}
	if !e.defined {
		return other
	}
	return e.AddPoint(other.Min()).AddPoint(other.Max())
}

// Transformed returns the bounding box of this box under m. All four
// corners are transformed so rotations are handled correctly.
func (e Extents) Transformed(m Matrix) Extents {
	if !e.defined {
		return Extents{}
	}
	out := Extents{}
	for _, p := range [4]Point{
		{e.MinX, e.MinY},
		{e.MaxX, e.MinY},
		{e.MaxX, e.MaxY},
		{e.MinX, e.MaxY},
	} {
		out = out.AddPoint(m.Apply(p))
	}
	return out
}

// Matrix represents a 2D affine transformation.
type Matrix [6]float64

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate creates a translation.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a (possibly non-uniform) scaling.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a counter-clockwise rotation by angle radians.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Mul returns the composition "m then n": applying the result is
// equivalent to applying m first and n second.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}
