// Package layout maps drawing extents onto a physical page.
//
// Given resolved extents and a [PageSpec] (ISO page size, orientation,
// margins and fit mode), [Plan] computes the final scale factor and the
// placement of the drawing within the usable page area.
//
// # Fit modes
//
// In auto-fit mode the scale is chosen so the extents exactly fill the
// usable area (page minus margins) in the limiting dimension, and the
// content is centered. An explicit scale overrides auto-fit entirely:
// the caller's scale is used as-is and no overflow checking is performed,
// since overflow is accepted caller intent.
//
// # Orientation
//
// Orientation "auto" picks portrait or landscape, whichever yields the
// larger auto-fit scale for the given extents, minimizing wasted margin.
package layout
