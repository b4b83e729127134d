// Package units detects likely unit mismatches in a drawing.
//
// The check is a pure function of the declared unit code and the resolved
// extents, with no document access and no side effects, so it can be
// evaluated (and tested) in isolation and is trivially idempotent across
// pipeline runs.
package units

import (
	"fmt"

	"github.com/tsawler/dxfpipe/model"
)

// MismatchThreshold is the extent size, in drawing units, above which an
// inches-declared drawing is suspected to actually contain millimeter
// geometry. The value is an operational constant with no derivation beyond
// field experience; it is exported so operators can tune it, not inferred
// into a general rule.
const MismatchThreshold = 5000.0

// Advisory is a non-blocking warning that the declared drawing unit is
// probably wrong. It never affects pipeline behavior beyond being logged.
type Advisory struct {
	Declared  model.InsUnits
	MaxExtent float64 // the larger of extent width and height
	Threshold float64
}

// String formats the advisory for operator logs.
func (a *Advisory) String() string {
	return fmt.Sprintf(
		"declared unit is %s but extents reach %.2f units (threshold %.0f); drawing content is probably in millimeters",
		a.Declared, a.MaxExtent, a.Threshold,
	)
}

// Check returns an advisory when the drawing declares inches but its
// extents exceed MismatchThreshold in either dimension, and nil otherwise.
//
// Only the inches case is checked. Other unit codes pass through without
// inspection; this mirrors the behavior the heuristic was calibrated
// against and is intentionally not generalized.
func Check(declared model.InsUnits, ext model.Extents) *Advisory {
	return CheckThreshold(declared, ext, MismatchThreshold)
}

// CheckThreshold is Check with an explicit threshold.
func CheckThreshold(declared model.InsUnits, ext model.Extents, threshold float64) *Advisory {
	if declared != model.UnitInches || !ext.Defined() {
		return nil
	}
	w, h := ext.Width(), ext.Height()
	if w <= threshold && h <= threshold {
		return nil
	}
	max := w
	if h > max {
		max = h
	}
	return &Advisory{Declared: declared, MaxExtent: max, Threshold: threshold}
}
