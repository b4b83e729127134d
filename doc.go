// Package dxfpipe audits a DXF drawing and re-exports it as reports,
// page-fitted previews, and normalized DXF/DWG copies.
//
// Basic usage:
//
//	p := dxfpipe.New(hclog.Default())
//	opts := dxfpipe.DefaultOptions()
//	opts.Input = "drawing.dxf"
//	res, err := p.Run(context.Background(), opts)
//
// A run loads the input tolerantly (see the reader package), resolves the
// drawing extents, checks the declared units against the drawing size, and
// then writes each requested output: a JSON summary with CSV count tables,
// PDF/PNG/SVG modelspace previews, a block-flattened DXF copy, a copy with
// $INSUNITS corrected, and optionally a DWG via the external ODA File
// Converter.
//
// Only a failure to load the input aborts the run. Every output fails
// independently; [Pipeline.Run] still produces the remaining outputs and
// returns the collected failures as one error alongside the [Result].
//
// The lower-level packages (reader, model, extents, units, layout, render,
// writer, convert) are usable on their own for programs that need only a
// slice of the pipeline.
package dxfpipe
