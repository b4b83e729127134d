package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/dxfpipe/model"
)

// ErrUndefinedExtents is reported when auto-fit is requested but the
// drawing extents are unknown, leaving no basis to compute a scale.
var ErrUndefinedExtents = errors.New("drawing extents are undefined")

// ErrDegenerateExtents is reported when auto-fit is requested for extents
// with zero width or height (for example a single point).
var ErrDegenerateExtents = errors.New("drawing extents have zero width or height")

// LayoutError wraps the reason a layout could not be planned.
type LayoutError struct {
	Err error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("cannot plan page layout: %v", e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// ResolvedLayout is the result of fitting drawing extents onto a page.
// All lengths are in millimeters. Scale converts drawing units to
// millimeters. Offsets place the lower-left corner of the (scaled)
// drawing content relative to the lower-left corner of the page.
type ResolvedLayout struct {
	Scale       float64
	PageWidth   float64
	PageHeight  float64
	Orientation Orientation // resolved, never OrientAuto
	OffsetX     float64
	OffsetY     float64
}

// Plan computes the final page geometry and scale for the given extents
// and page specification. It fails with a *LayoutError when auto-fit is
// requested but the extents are undefined or degenerate, or when the
// margins consume the whole page. On success the returned scale and page
// dimensions are positive and finite.
func Plan(ext model.Extents, spec PageSpec) (ResolvedLayout, error) {
	orient := resolveOrientation(ext, spec)
	pw, ph := pageDims(spec.Size, orient)

	usableW := pw - 2*spec.MarginMM
	usableH := ph - 2*spec.MarginMM
	if usableW <= 0 || usableH <= 0 {
		return ResolvedLayout{}, &LayoutError{
			Err: fmt.Errorf("margin %.1fmm leaves no usable area on %s %s", spec.MarginMM, spec.Size, orient),
		}
	}

	var scale float64
	switch spec.Fit {
	case FitExplicit:
		if spec.Scale <= 0 || math.IsInf(spec.Scale, 0) || math.IsNaN(spec.Scale) {
			return ResolvedLayout{}, &LayoutError{Err: fmt.Errorf("explicit scale %v is not positive and finite", spec.Scale)}
		}
		scale = spec.Scale
	default:
		s, err := autoFitScale(ext, usableW, usableH)
		if err != nil {
			return ResolvedLayout{}, &LayoutError{Err: err}
		}
		scale = s
	}

	out := ResolvedLayout{
		Scale:       scale,
		PageWidth:   pw,
		PageHeight:  ph,
		Orientation: orient,
		OffsetX:     spec.MarginMM,
		OffsetY:     spec.MarginMM,
	}
	if ext.Defined() {
		// center the scaled content in the usable area; with an explicit
		// scale the remainder may be negative, shifting content off-page,
		// which is accepted caller intent
		out.OffsetX = spec.MarginMM + (usableW-ext.Width()*scale)/2
		out.OffsetY = spec.MarginMM + (usableH-ext.Height()*scale)/2
	}
	return out, nil
}

func pageDims(size PageSize, orient Orientation) (w, h float64) {
	w, h = size.Dimensions()
	if orient == OrientLandscape {
		w, h = h, w
	}
	return w, h
}

// resolveOrientation turns OrientAuto into a concrete orientation. For
// auto-fit it picks the orientation yielding the larger fit scale; when no
// fit scale can be computed it falls back to matching the extents aspect
// ratio, and to portrait when extents are unknown.
func resolveOrientation(ext model.Extents, spec PageSpec) Orientation {
	if spec.Orientation != OrientAuto {
		return spec.Orientation
	}
	if !ext.Defined() {
		return OrientPortrait
	}

	pw, ph := spec.Size.Dimensions()
	uwP, uhP := pw-2*spec.MarginMM, ph-2*spec.MarginMM
	if sP, errP := autoFitScale(ext, uwP, uhP); errP == nil {
		sL, errL := autoFitScale(ext, uhP, uwP)
		if errL == nil && sL > sP {
			return OrientLandscape
		}
		return OrientPortrait
	}

	if ext.Width() >= ext.Height() {
		return OrientLandscape
	}
	return OrientPortrait
}

func autoFitScale(ext model.Extents, usableW, usableH float64) (float64, error) {
	if !ext.Defined() {
		return 0, ErrUndefinedExtents
	}
	w, h := ext.Width(), ext.Height()
	if w == 0 || h == 0 {
		return 0, ErrDegenerateExtents
	}
	if usableW <= 0 || usableH <= 0 {
		return 0, fmt.Errorf("no usable page area")
	}
	return math.Min(usableW/w, usableH/h), nil
}
