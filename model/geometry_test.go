package model

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtentsZeroValueUndefined(t *testing.T) {
	var e Extents
	if e.Defined() {
		t.Error("zero Extents should be undefined")
	}
	if e.Width() != 0 || e.Height() != 0 {
		t.Errorf("undefined box size = %v x %v, want 0 x 0", e.Width(), e.Height())
	}
}

func TestNewExtentsNormalizesCorners(t *testing.T) {
	e := NewExtents(Point{10, 5}, Point{-2, 8})
	if !e.Defined() {
		t.Fatal("expected defined box")
	}
	if e.MinX != -2 || e.MaxX != 10 || e.MinY != 5 || e.MaxY != 8 {
		t.Errorf("box = %+v", e)
	}
}

func TestExtentsAddPoint(t *testing.T) {
	var e Extents
	e = e.AddPoint(Point{3, 4})
	if !e.Defined() {
		t.Fatal("adding a point should define the box")
	}
	if e.Width() != 0 || e.Height() != 0 {
		t.Errorf("single point box size = %v x %v, want 0 x 0", e.Width(), e.Height())
	}
	e = e.AddPoint(Point{-1, 10})
	if e.MinX != -1 || e.MaxX != 3 || e.MinY != 4 || e.MaxY != 10 {
		t.Errorf("box = %+v", e)
	}
}

func TestExtentsUnion(t *testing.T) {
	a := NewExtents(Point{0, 0}, Point{1, 1})
	b := NewExtents(Point{5, 5}, Point{6, 6})
	var undef Extents

	u := a.Union(b)
	if u.MinX != 0 || u.MaxX != 6 {
		t.Errorf("union = %+v", u)
	}
	if got := a.Union(undef); got != a {
		t.Errorf("union with undefined = %+v, want %+v", got, a)
	}
	if got := undef.Union(b); got != b {
		t.Errorf("undefined union b = %+v, want %+v", got, b)
	}
	if undef.Union(undef).Defined() {
		t.Error("union of two undefined boxes should stay undefined")
	}
}

func TestExtentsTransformedRotation(t *testing.T) {
	// A unit square rotated 90 degrees around the origin lands in the
	// second quadrant; the axis-aligned bound must cover all corners.
	e := NewExtents(Point{0, 0}, Point{2, 1})
	r := e.Transformed(Rotate(math.Pi / 2))
	if !almostEqual(r.MinX, -1) || !almostEqual(r.MaxX, 0) ||
		!almostEqual(r.MinY, 0) || !almostEqual(r.MaxY, 2) {
		t.Errorf("rotated box = %+v", r)
	}
}

func TestMatrixCompositionOrder(t *testing.T) {
	// Mul applies the receiver first: scale by 2, then translate by (10, 0).
	m := Scale(2, 2).Mul(Translate(10, 0))
	got := m.Apply(Point{1, 1})
	if !almostEqual(got.X, 12) || !almostEqual(got.Y, 2) {
		t.Errorf("Apply = %+v, want (12, 2)", got)
	}
}

func TestInsertTransform(t *testing.T) {
	ins := &Insert{Block: "B", Position: Point{100, 50}, ScaleX: 2, ScaleY: 2}
	m := ins.Transform(Point{10, 10})
	// Block-local point (11, 10) is 1 unit right of the base point; scaled
	// by 2 it lands 2 units right of the insert position.
	got := m.Apply(Point{11, 10})
	if !almostEqual(got.X, 102) || !almostEqual(got.Y, 50) {
		t.Errorf("Apply = %+v, want (102, 50)", got)
	}
}

func TestInsertTransformZeroScaleDefaultsToOne(t *testing.T) {
	ins := &Insert{Block: "B", Position: Point{5, 5}}
	got := ins.Transform(Point{}).Apply(Point{1, 0})
	if !almostEqual(got.X, 6) || !almostEqual(got.Y, 5) {
		t.Errorf("Apply = %+v, want (6, 5)", got)
	}
}
