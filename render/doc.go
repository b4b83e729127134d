// Package render draws a drawing's modelspace for preview and flatten
// outputs.
//
// # Frontend and backends
//
// The [Frontend] walks modelspace once, resolving INSERT references
// through block definitions and tessellating circles and arcs, and emits
// simple primitives (polylines, text, point markers) to a [Backend].
// Backends turn those primitives into concrete outputs:
//
//   - [VectorRenderer] produces PDF (via go-pdf/fpdf), SVG and raster PNG
//     previews laid out on a physical page
//   - [BasicRenderer] is the fallback preview renderer; it produces PNG
//     and SVG without the PDF dependency path
//   - [Flatten] replays the frontend into a fresh document, yielding a
//     copy with all block references resolved to concrete geometry
//
// # Preview export
//
// [Exporter] implements the primary/fallback policy: previews are
// rendered with the primary renderer, and if that fails the fallback
// renderer is tried, with the failure logged. A failure of both is
// reported to the caller as one preview-output failure.
package render
