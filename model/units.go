package model

import "strconv"

// InsUnits is the drawing's declared linear unit code, as stored in the
// $INSUNITS header variable.
type InsUnits int

// INSUNITS codes used by the pipeline. The full DXF enumeration is wider;
// unlisted codes are carried through unchanged and stringify as "code N".
const (
	UnitUnitless    InsUnits = 0
	UnitInches      InsUnits = 1
	UnitFeet        InsUnits = 2
	UnitMillimeters InsUnits = 4
	UnitCentimeters InsUnits = 5
	UnitMeters      InsUnits = 6
)

// String returns a human-readable unit name.
func (u InsUnits) String() string {
	switch u {
	case UnitUnitless:
		return "unitless"
	case UnitInches:
		return "inches"
	case UnitFeet:
		return "feet"
	case UnitMillimeters:
		return "millimeters"
	case UnitCentimeters:
		return "centimeters"
	case UnitMeters:
		return "meters"
	default:
		return "code " + strconv.Itoa(int(u))
	}
}
