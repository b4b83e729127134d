package render

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

func previewDoc() (*model.Document, model.Extents, layout.ResolvedLayout) {
	doc := model.NewDocument("AC1032")
	doc.AddLayer("A")
	doc.AddEntity(&model.Line{Layer: "A", Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 100, Y: 50}})
	doc.AddEntity(&model.Text{Layer: "A", Value: "plan <1>", Height: 5, Insert: model.Point{X: 10, Y: 10}})
	ext := doc.ModelExtents()

	lay, err := layout.Plan(ext, layout.PageSpec{
		Size: layout.A4, Orientation: layout.OrientLandscape, MarginMM: 10, Fit: layout.FitAuto,
	})
	if err != nil {
		panic(err)
	}
	return doc, ext, lay
}

func TestWritePDFProducesPDF(t *testing.T) {
	doc, ext, lay := previewDoc()
	var buf bytes.Buffer
	if err := writePDF(&buf, doc, ext, lay); err != nil {
		t.Fatalf("writePDF() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", buf.Bytes()[:8])
	}
}

func TestWritePNGDimensionsAndInk(t *testing.T) {
	doc, ext, lay := previewDoc()
	var buf bytes.Buffer
	if err := writePNG(&buf, doc, ext, lay, 100); err != nil {
		t.Fatalf("writePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	// A4 landscape at 100 dpi: 297mm * 100/25.4 ≈ 1169 px wide
	if w := img.Bounds().Dx(); w < 1160 || w > 1180 {
		t.Errorf("width = %d px, want ≈1169", w)
	}
	inked := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && bl == 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("no black pixels drawn")
	}
}

func TestWriteSVGStructure(t *testing.T) {
	doc, ext, lay := previewDoc()
	var buf bytes.Buffer
	if err := writeSVG(&buf, doc, ext, lay); err != nil {
		t.Fatalf("writeSVG() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("missing svg envelope")
	}
	if !strings.Contains(out, "<polyline") {
		t.Error("missing polyline element")
	}
	if !strings.Contains(out, "plan &lt;1&gt;") {
		t.Errorf("text not XML-escaped: %s", out)
	}
}

func TestExporterWritesRequestedFormats(t *testing.T) {
	doc, ext, lay := previewDoc()
	fs := afero.NewMemMapFs()
	e := NewExporter(hclog.NewNullLogger())

	opts := PreviewOptions{PDF: true, PNG: true, SVG: true, DPI: 72}
	if err := e.Export(fs, "out", doc, ext, lay, opts); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	for _, name := range []string{PreviewPDF, PreviewPNG, PreviewSVG} {
		ok, _ := afero.Exists(fs, filepath.Join("out", name))
		if !ok {
			t.Errorf("missing %s", name)
		}
	}
}

func TestExporterNoFormatsIsNoop(t *testing.T) {
	doc, ext, lay := previewDoc()
	fs := afero.NewMemMapFs()
	e := NewExporter(hclog.NewNullLogger())
	if err := e.Export(fs, "out", doc, ext, lay, PreviewOptions{}); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	ok, _ := afero.DirExists(fs, "out")
	if ok {
		t.Error("no formats requested: nothing should be created")
	}
}

// failingRenderer simulates a broken primary backend.
type failingRenderer struct{}

func (failingRenderer) Name() string { return "failing" }
func (failingRenderer) Render(afero.Fs, string, *model.Document, model.Extents, layout.ResolvedLayout, PreviewOptions) error {
	return errors.New("backend unavailable")
}

func TestExporterFallsBack(t *testing.T) {
	doc, ext, lay := previewDoc()
	fs := afero.NewMemMapFs()
	e := &Exporter{Primary: failingRenderer{}, Fallback: BasicRenderer{}, Log: hclog.NewNullLogger()}

	opts := PreviewOptions{PDF: true, SVG: true, DPI: 72}
	if err := e.Export(fs, "out", doc, ext, lay, opts); err != nil {
		t.Fatalf("Export() with fallback error: %v", err)
	}
	// fallback degrades the PDF request to PNG and still writes SVG
	if ok, _ := afero.Exists(fs, filepath.Join("out", PreviewPNG)); !ok {
		t.Error("fallback should produce PNG in place of PDF")
	}
	if ok, _ := afero.Exists(fs, filepath.Join("out", PreviewSVG)); !ok {
		t.Error("fallback should produce SVG")
	}
}

func TestExporterBothFail(t *testing.T) {
	doc, ext, lay := previewDoc()
	fs := afero.NewMemMapFs()
	e := &Exporter{Primary: failingRenderer{}, Fallback: failingRenderer{}, Log: hclog.NewNullLogger()}
	if err := e.Export(fs, "out", doc, ext, lay, PreviewOptions{PNG: true, DPI: 72}); err == nil {
		t.Fatal("expected error when both renderers fail")
	}
}

func TestFlattenResolvesBlocks(t *testing.T) {
	doc := model.NewDocument("AC1032")
	doc.Header.Units = model.UnitMillimeters
	doc.AddLayer("A")
	blk := doc.AddBlock("B", model.Point{})
	blk.Entities = append(blk.Entities, &model.Line{Layer: "A", Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 10, Y: 0}})
	doc.AddEntity(&model.Insert{Layer: "A", Block: "B", Position: model.Point{X: 50, Y: 50}})
	doc.AddEntity(&model.Insert{Layer: "A", Block: "B", Position: model.Point{X: 70, Y: 50}})

	flat := Flatten(doc)

	if len(flat.BlockNames()) != 0 {
		t.Errorf("flattened document still has blocks: %v", flat.BlockNames())
	}
	for _, e := range flat.Entities {
		if e.DXFType() == "INSERT" {
			t.Fatal("flattened document still contains INSERT entities")
		}
	}
	if len(flat.Entities) != 2 {
		t.Errorf("entity count = %d, want 2 (one polyline per insert)", len(flat.Entities))
	}
	if flat.Header.Units != model.UnitMillimeters {
		t.Errorf("header not carried: %+v", flat.Header)
	}
	if flat.Layer("A") == nil {
		t.Error("layer table not carried")
	}

	// geometry is preserved: same overall extents as the source
	want := doc.ModelExtents()
	got := flat.ModelExtents()
	if got != want {
		t.Errorf("flattened extents = %+v, want %+v", got, want)
	}

	// source untouched
	if len(doc.Entities) != 2 || doc.Block("B") == nil {
		t.Error("Flatten mutated its input")
	}
}

func TestFlattenSetsHeaderExtents(t *testing.T) {
	doc := model.NewDocument("AC1032")
	doc.AddEntity(&model.Line{Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 10, Y: 20}})
	flat := Flatten(doc)
	if flat.Header.ExtMin == nil || flat.Header.ExtMax == nil {
		t.Fatal("flatten should record recomputed extents")
	}
	if flat.Header.ExtMax.X != 10 || flat.Header.ExtMax.Y != 20 {
		t.Errorf("ExtMax = %+v", flat.Header.ExtMax)
	}
}
