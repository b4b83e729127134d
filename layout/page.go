package layout

import (
	"fmt"
	"strings"
)

// PageSize is an ISO 216 page size.
type PageSize int

const (
	A0 PageSize = iota
	A1
	A2
	A3
	A4
)

// iso page dimensions in millimeters, portrait (width, height)
var isoSizesMM = map[PageSize][2]float64{
	A0: {841, 1189},
	A1: {594, 841},
	A2: {420, 594},
	A3: {297, 420},
	A4: {210, 297},
}

// String returns the page size name ("A0" .. "A4").
func (s PageSize) String() string {
	if s < A0 || s > A4 {
		return fmt.Sprintf("PageSize(%d)", int(s))
	}
	return [...]string{"A0", "A1", "A2", "A3", "A4"}[s]
}

// Dimensions returns the portrait width and height in millimeters.
func (s PageSize) Dimensions() (w, h float64) {
	d := isoSizesMM[s]
	return d[0], d[1]
}

// ParsePageSize parses a page size name, case-insensitively.
func ParsePageSize(s string) (PageSize, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A0":
		return A0, nil
	case "A1":
		return A1, nil
	case "A2":
		return A2, nil
	case "A3":
		return A3, nil
	case "A4":
		return A4, nil
	default:
		return A4, fmt.Errorf("invalid page size %q", s)
	}
}

// Orientation selects how the page is turned.
type Orientation int

const (
	// OrientAuto picks the orientation that fits the drawing best.
	OrientAuto Orientation = iota
	OrientPortrait
	OrientLandscape
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientAuto:
		return "auto"
	case OrientPortrait:
		return "portrait"
	case OrientLandscape:
		return "landscape"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation parses an orientation name.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return OrientAuto, nil
	case "portrait":
		return OrientPortrait, nil
	case "landscape":
		return OrientLandscape, nil
	default:
		return OrientAuto, fmt.Errorf("invalid orientation %q", s)
	}
}

// FitMode selects how the drawing scale is determined.
type FitMode int

const (
	// FitAuto scales the drawing to exactly fill the usable page area.
	FitAuto FitMode = iota
	// FitExplicit uses the caller-supplied scale; content may overflow.
	FitExplicit
)

// PageSpec describes the requested page geometry. It is an immutable
// input, supplied once per run.
type PageSpec struct {
	Size        PageSize
	Orientation Orientation
	MarginMM    float64 // per side
	Fit         FitMode
	Scale       float64 // drawing units to millimeters; used when Fit == FitExplicit
}
