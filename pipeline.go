package dxfpipe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/convert"
	"github.com/tsawler/dxfpipe/extents"
	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
	"github.com/tsawler/dxfpipe/reader"
	"github.com/tsawler/dxfpipe/render"
	"github.com/tsawler/dxfpipe/report"
	"github.com/tsawler/dxfpipe/stats"
	"github.com/tsawler/dxfpipe/units"
	"github.com/tsawler/dxfpipe/writer"
)

// Output file names beyond the report and preview sets.
const (
	FlattenedFile = "flattened.dxf"
	UnitsFixFile  = "cleaned_units_fix.dxf"
)

// Result describes one finished pipeline run.
type Result struct {
	// OutDir is the effective output directory after label/timestamp
	// composition.
	OutDir string

	Stats *stats.Stats
	Audit *reader.AuditReport

	// Advisory is nil when the declared units look consistent with the
	// drawing size.
	Advisory *units.Advisory
}

// Pipeline runs the full audit-and-export sequence on one DXF file.
//
// Loading is the only step that aborts the run: every output (reports,
// previews, flattened copy, units fix, DWG) fails independently, with the
// failures aggregated into the returned error while the remaining outputs
// are still produced.
type Pipeline struct {
	FS  afero.Fs
	Log hclog.Logger

	// Now stamps timestamped output directories. Overridable in tests.
	Now func() time.Time

	// locateConverter finds the ODA File Converter. Overridable in tests.
	locateConverter func(hclog.Logger) (*convert.Converter, error)
}

// New returns a Pipeline writing to the real filesystem.
func New(log hclog.Logger) *Pipeline {
	return &Pipeline{
		FS:              afero.NewOsFs(),
		Log:             log,
		Now:             time.Now,
		locateConverter: convert.New,
	}
}

// Run executes the pipeline for opts. The returned Result is non-nil
// whenever the input document loaded, even if some outputs failed; the
// error then aggregates the per-output failures.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	doc, audit, err := p.load(opts.Input)
	if err != nil {
		return nil, err
	}
	if !audit.Empty() {
		p.Log.Info("recovered document with findings",
			"issues", len(audit.Issues), "fixed", audit.Fixed,
			"errors", audit.Errors(), "warnings", audit.Warnings())
	}

	ext, source := extents.NewResolver().Resolve(doc)
	p.Log.Debug("extents resolved", "source", string(source), "defined", ext.Defined())

	adv := units.Check(doc.Header.Units, ext)
	if adv != nil {
		p.Log.Warn("unit consistency advisory", "detail", adv.String())
	}

	st := stats.Compute(doc, ext, source)
	outdir := opts.OutputDir(p.Now())
	p.Log.Info("writing outputs", "outdir", outdir)

	res := &Result{OutDir: outdir, Stats: st, Audit: audit, Advisory: adv}
	var errs *multierror.Error
	fail := func(step string, err error) {
		p.Log.Error(step+" failed", "error", err)
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", step, err))
	}

	if err := report.NewWriter(p.FS, outdir).WriteAll(st); err != nil {
		fail("reports", err)
	}

	if pv := opts.previewOptions(); pv.Any() {
		spec, _ := opts.pageSpec() // validated above
		lay, err := layout.Plan(ext, spec)
		if err != nil {
			fail("previews", err)
		} else if err := render.NewExporter(p.Log.Named("render")).Export(p.FS, outdir, doc, ext, lay, pv); err != nil {
			fail("previews", err)
		}
	}

	if opts.FlattenDXF {
		flat := render.Flatten(doc)
		if err := writer.Save(p.FS, filepath.Join(outdir, FlattenedFile), flat); err != nil {
			fail("flattened dxf", err)
		}
	}

	if opts.SetInsUnits != nil {
		fixed := doc.Clone()
		fixed.Header.Units = model.InsUnits(*opts.SetInsUnits)
		if err := writer.Save(p.FS, filepath.Join(outdir, UnitsFixFile), fixed); err != nil {
			fail("units fix dxf", err)
		}
	}

	if opts.ExportDWG {
		if err := p.exportDWG(ctx, opts.Input, outdir); err != nil {
			fail("dwg export", err)
		}
	}

	return res, errs.ErrorOrNil()
}

// load opens and recovers the input document through the pipeline's
// filesystem.
func (p *Pipeline) load(path string) (*model.Document, *reader.AuditReport, error) {
	f, err := p.FS.Open(path)
	if err != nil {
		return nil, nil, &reader.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	doc, audit, err := reader.Read(f)
	if err != nil {
		var le *reader.LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, nil, err
	}
	return doc, audit, nil
}

// exportDWG converts the original input file to DWG next to the other
// outputs. A missing converter is an advisory, not a failure.
func (p *Pipeline) exportDWG(ctx context.Context, input, outdir string) error {
	log := p.Log.Named("convert")
	conv, err := p.locateConverter(log)
	if errors.Is(err, convert.ErrConverterNotFound) {
		log.Warn("ODA File Converter not found; install it to enable DWG export")
		return nil
	}
	if err != nil {
		return err
	}

	name := filepath.Base(input)
	if err := conv.ToDWG(ctx, filepath.Dir(input), outdir, name); err != nil {
		return err
	}

	dwg := strings.TrimSuffix(name, filepath.Ext(name)) + ".dwg"
	if ok, _ := afero.Exists(p.FS, filepath.Join(outdir, dwg)); !ok {
		log.Warn("conversion ran but the expected output did not appear", "file", dwg)
	}
	return nil
}
