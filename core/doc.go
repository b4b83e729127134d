// Package core provides low-level DXF parsing primitives.
//
// A DXF file is a stream of tags. Each tag occupies two lines: an integer
// group code that identifies the meaning of the value, followed by the value
// itself. For example:
//
//	0
//	LINE
//	8
//	WALLS
//	10
//	0.0
//
// # Tags
//
// The [Tag] type holds one group-code/value pair. The group code determines
// how the raw value should be interpreted; [Tag.Float], [Tag.Int] and
// [Tag.Value] provide typed access.
//
// # Lexing
//
// The [Lexer] type converts raw input into a stream of tags. It is
// deliberately tolerant: blank lines, stray whitespace and malformed group
// codes do not abort lexing. Instead the lexer resynchronizes on the next
// parseable tag and records what it skipped, so that a recovery-oriented
// reader can surface the problems without losing the rest of the file.
//
// # Writing
//
// The [TagWriter] type emits a tag stream in the canonical two-line form,
// suitable for producing DXF output.
package core
