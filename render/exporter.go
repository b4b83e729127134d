package render

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

// Preview file names in the output directory.
const (
	PreviewPDF = "preview_modelspace.pdf"
	PreviewPNG = "preview_modelspace.png"
	PreviewSVG = "preview_modelspace.svg"
)

// PreviewOptions selects which preview formats to produce and the raster
// resolution.
type PreviewOptions struct {
	PDF bool
	PNG bool
	SVG bool
	DPI int
}

// Any reports whether at least one format is enabled.
func (o PreviewOptions) Any() bool {
	return o.PDF || o.PNG || o.SVG
}

// Renderer produces preview files for a laid-out drawing.
type Renderer interface {
	Name() string
	Render(fs afero.Fs, outdir string, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout, opts PreviewOptions) error
}

// VectorRenderer is the primary preview renderer: PDF via the fpdf
// backend, SVG via the vector backend, PNG via the raster backend.
type VectorRenderer struct{}

func (VectorRenderer) Name() string { return "vector" }

func (VectorRenderer) Render(fs afero.Fs, outdir string, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout, opts PreviewOptions) error {
	if opts.PDF {
		err := writeTo(fs, filepath.Join(outdir, PreviewPDF), func(f afero.File) error {
			return writePDF(f, doc, ext, lay)
		})
		if err != nil {
			return err
		}
	}
	if opts.PNG {
		err := writeTo(fs, filepath.Join(outdir, PreviewPNG), func(f afero.File) error {
			return writePNG(f, doc, ext, lay, opts.DPI)
		})
		if err != nil {
			return err
		}
	}
	if opts.SVG {
		err := writeTo(fs, filepath.Join(outdir, PreviewSVG), func(f afero.File) error {
			return writeSVG(f, doc, ext, lay)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// BasicRenderer is the fallback preview renderer. It avoids the PDF
// dependency path entirely: PNG and SVG requests are honored, and a PDF
// request degrades to a PNG preview in its place.
type BasicRenderer struct{}

func (BasicRenderer) Name() string { return "basic" }

func (BasicRenderer) Render(fs afero.Fs, outdir string, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout, opts PreviewOptions) error {
	if opts.PDF {
		opts.PNG = true
	}
	if opts.PNG {
		err := writeTo(fs, filepath.Join(outdir, PreviewPNG), func(f afero.File) error {
			return writePNG(f, doc, ext, lay, opts.DPI)
		})
		if err != nil {
			return err
		}
	}
	if opts.SVG {
		err := writeTo(fs, filepath.Join(outdir, PreviewSVG), func(f afero.File) error {
			return writeSVG(f, doc, ext, lay)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTo(fs afero.Fs, path string, fn func(afero.File) error) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Exporter renders previews with a primary renderer and falls back to a
// secondary one when the primary fails, logging the degradation.
type Exporter struct {
	Primary  Renderer
	Fallback Renderer
	Log      hclog.Logger
}

// NewExporter creates an exporter with the default renderer pair.
func NewExporter(log hclog.Logger) *Exporter {
	return &Exporter{Primary: VectorRenderer{}, Fallback: BasicRenderer{}, Log: log}
}

// Export renders the requested previews into outdir. When no format is
// enabled it does nothing and returns nil. Failure of both renderers is
// returned as one error.
func (e *Exporter) Export(fs afero.Fs, outdir string, doc *model.Document, ext model.Extents, lay layout.ResolvedLayout, opts PreviewOptions) error {
	if !opts.Any() {
		return nil
	}
	if err := fs.MkdirAll(outdir, 0o755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}
	err := e.Primary.Render(fs, outdir, doc, ext, lay, opts)
	if err == nil {
		return nil
	}
	e.Log.Warn("primary preview renderer failed, trying fallback",
		"primary", e.Primary.Name(), "fallback", e.Fallback.Name(), "error", err)
	if ferr := e.Fallback.Render(fs, outdir, doc, ext, lay, opts); ferr != nil {
		return fmt.Errorf("preview rendering failed (%s: %v; %s: %w)", e.Primary.Name(), err, e.Fallback.Name(), ferr)
	}
	return nil
}
