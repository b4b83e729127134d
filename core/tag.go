package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag represents a single DXF group-code/value pair.
type Tag struct {
	Code  int
	Value string
	Line  int // 1-indexed line number of the group code in the source
}

// String returns the tag in "code=value" form, for diagnostics.
func (t Tag) String() string {
	return fmt.Sprintf("%d=%q", t.Code, t.Value)
}

// Float interprets the tag value as a float64.
func (t Tag) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("tag %d line %d: invalid float %q", t.Code, t.Line, t.Value)
	}
	return v, nil
}

// Int interprets the tag value as an int.
func (t Tag) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(t.Value))
	if err != nil {
		// Some writers emit integral group values as floats.
		f, ferr := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
		if ferr != nil {
			return 0, fmt.Errorf("tag %d line %d: invalid int %q", t.Code, t.Line, t.Value)
		}
		return int(f), nil
	}
	return v, nil
}

// IsEntityStart reports whether the tag begins a new structural element
// (group code 0: section markers, table records, entities).
func (t Tag) IsEntityStart() bool {
	return t.Code == 0
}

// Well-known group codes used throughout the reader and writer.
const (
	CodeStructure = 0  // SECTION, ENDSEC, entity type names, EOF
	CodeText      = 1  // primary text value
	CodeName      = 2  // section/table/block name
	CodeHandle    = 5  // entity handle
	CodeLayer     = 8  // layer name
	CodeVariable  = 9  // header variable name ($ACADVER, ...)
	CodeX         = 10 // primary X coordinate
	CodeY         = 20 // primary Y coordinate
	CodeZ         = 30 // primary Z coordinate
	CodeX2        = 11 // secondary X coordinate
	CodeY2        = 21 // secondary Y coordinate
	CodeRadius    = 40 // radius / height / scale depending on entity
	CodeInt16     = 70 // 16-bit integer flags
	CodeInt32     = 90 // 32-bit integer (e.g. LWPOLYLINE vertex count)
)
