// Package model defines the in-memory representation of a DXF drawing.
//
// # Document
//
// The [Document] type holds a parsed drawing: header variables, the layer
// table, block definitions and the modelspace entity list. Documents are
// produced by the reader package and treated as read-only by every
// downstream consumer; the two deliberate mutation points (unit fixing,
// flattening) operate on copies.
//
// # Geometry
//
// [Point], [Extents] and [Matrix] provide the 2D geometry used throughout
// the pipeline. Extents carries an explicit undefined state so that "no
// extents could be determined" is distinguishable from a degenerate box at
// the origin.
//
// # Entities
//
// Each supported entity type (LINE, LWPOLYLINE, CIRCLE, ARC, TEXT, POINT,
// INSERT) implements the [Entity] interface. INSERT extents depend on the
// referenced block definition and are resolved by [Document.ModelExtents].
package model
