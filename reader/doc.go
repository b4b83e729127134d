// Package reader opens DXF files and recovers them into model documents.
//
// # Recovery
//
// [Open] and [Read] are recovery-oriented: they accept input a strict
// parser would reject. Unparseable lines, unknown entity types, entities
// with missing coordinates and unterminated sections are all recorded as
// structural issues in the returned [AuditReport] while parsing continues.
// The only fatal condition is input with no recoverable tag structure at
// all, reported as a [*LoadError].
//
// # Audit
//
// After parsing, an audit pass checks cross-references: INSERT entities
// must name an existing block, entities should sit on declared layers
// (missing layer records are added and counted as fixes), and nested block
// references must not form cycles. Findings are appended to the same
// report.
//
// # Guarantee
//
// If Open returns without error, the document supports all read-only
// traversal performed by the rest of the pipeline (entity iteration,
// layer and block enumeration) even when the audit report is non-empty.
package reader
