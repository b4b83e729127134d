package core

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// TagWriter emits a DXF tag stream in the canonical two-line form.
//
// Group codes are right-aligned in a three-character field, matching the
// layout produced by common CAD packages, and floats are written with
// full precision.
type TagWriter struct {
	w   *bufio.Writer
	err error
}

// NewTagWriter creates a TagWriter wrapping w.
func NewTagWriter(w io.Writer) *TagWriter {
	return &TagWriter{w: bufio.NewWriter(w)}
}

// Tag writes one group-code/value pair.
func (tw *TagWriter) Tag(code int, value string) {
	if tw.err != nil {
		return
	}
	c := strconv.Itoa(code)
	if len(c) < 3 {
		c = strings.Repeat(" ", 3-len(c)) + c
	}
	_, tw.err = tw.w.WriteString(c + "\r\n" + value + "\r\n")
}

// Int writes a tag with an integer value.
func (tw *TagWriter) Int(code, value int) {
	tw.Tag(code, strconv.Itoa(value))
}

// Float writes a tag with a float value.
func (tw *TagWriter) Float(code int, value float64) {
	tw.Tag(code, strconv.FormatFloat(value, 'f', -1, 64))
}

// Flush flushes buffered output and returns the first error encountered
// during writing, if any.
func (tw *TagWriter) Flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Flush()
}
