package extents

import (
	"testing"

	"github.com/tsawler/dxfpipe/model"
)

func docWithGeometry() *model.Document {
	doc := model.NewDocument("AC1032")
	doc.AddEntity(&model.Line{Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 100, Y: 50}})
	return doc
}

func docWithHeaderExtents(min, max model.Point) *model.Document {
	doc := model.NewDocument("AC1032")
	doc.Header.ExtMin = &min
	doc.Header.ExtMax = &max
	return doc
}

func TestResolveGeometryFastPath(t *testing.T) {
	doc := docWithGeometry()
	// stale header extents must not win over geometry
	doc.Header.ExtMin = &model.Point{X: -999, Y: -999}
	doc.Header.ExtMax = &model.Point{X: 999, Y: 999}

	ext, source := NewResolver().Resolve(doc)
	if source != SourceGeometry {
		t.Fatalf("source = %s, want %s", source, SourceGeometry)
	}
	if ext.MaxX != 100 || ext.MaxY != 50 {
		t.Errorf("extents = %+v", ext)
	}
}

func TestResolveHeaderFallback(t *testing.T) {
	doc := docWithHeaderExtents(model.Point{X: 0, Y: 0}, model.Point{X: 200, Y: 100})

	ext, source := NewResolver().Resolve(doc)
	if source != SourceHeader {
		t.Fatalf("source = %s, want %s", source, SourceHeader)
	}
	if ext.MinX != 0 || ext.MaxX != 200 || ext.MaxY != 100 {
		t.Errorf("extents = %+v", ext)
	}
}

func TestResolveHeaderExactValues(t *testing.T) {
	// with the geometry strategy forced to fail, the header values must be
	// returned exactly
	doc := docWithHeaderExtents(model.Point{X: 1.25, Y: 2.5}, model.Point{X: 3.75, Y: 5.0})
	failing := Strategy{Source: SourceGeometry, Fn: func(*model.Document) model.Extents {
		return model.Extents{}
	}}

	r := NewResolverWith(failing, Strategy{Source: SourceHeader, Fn: fromHeader})
	ext, source := r.Resolve(doc)
	if source != SourceHeader {
		t.Fatalf("source = %s, want %s", source, SourceHeader)
	}
	if ext.MinX != 1.25 || ext.MinY != 2.5 || ext.MaxX != 3.75 || ext.MaxY != 5.0 {
		t.Errorf("extents = %+v", ext)
	}
}

func TestResolveInconsistentHeaderRejected(t *testing.T) {
	tests := []struct {
		name     string
		min, max model.Point
	}{
		{"min.X > max.X", model.Point{X: 10, Y: 0}, model.Point{X: 0, Y: 10}},
		{"min.Y > max.Y", model.Point{X: 0, Y: 10}, model.Point{X: 10, Y: 0}},
		{"autocad fresh-drawing sentinels", model.Point{X: 1e20, Y: 1e20}, model.Point{X: -1e20, Y: -1e20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithHeaderExtents(tt.min, tt.max)
			ext, source := NewResolver().Resolve(doc)
			if source != SourceNone || ext.Defined() {
				t.Errorf("source = %s, extents = %+v; want undefined sentinel", source, ext)
			}
		})
	}
}

func TestResolvePartialHeaderRejected(t *testing.T) {
	doc := model.NewDocument("AC1032")
	doc.Header.ExtMin = &model.Point{X: 0, Y: 0} // max missing

	ext, source := NewResolver().Resolve(doc)
	if source != SourceNone || ext.Defined() {
		t.Errorf("source = %s, extents = %+v; want undefined sentinel", source, ext)
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	ext, source := NewResolver().Resolve(model.NewDocument("AC1032"))
	if source != SourceNone {
		t.Errorf("source = %s, want %s", source, SourceNone)
	}
	if ext.Defined() {
		t.Error("extents should be undefined")
	}
}

func TestResolveNeverPartiallyDefined(t *testing.T) {
	docs := []*model.Document{
		model.NewDocument("AC1032"),
		docWithGeometry(),
		docWithHeaderExtents(model.Point{X: 0, Y: 0}, model.Point{X: 1, Y: 1}),
		docWithHeaderExtents(model.Point{X: 5, Y: 5}, model.Point{X: 0, Y: 0}),
	}
	for _, doc := range docs {
		ext, _ := NewResolver().Resolve(doc)
		if ext.Defined() {
			if ext.MinX > ext.MaxX || ext.MinY > ext.MaxY {
				t.Errorf("defined box violates ordering: %+v", ext)
			}
		}
	}
}
