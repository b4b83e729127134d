package reader

import "fmt"

// Severity classifies an audit finding.
type Severity int

const (
	// SeverityInfo marks findings that required no repair.
	SeverityInfo Severity = iota
	// SeverityWarning marks structure that was repaired or skipped.
	SeverityWarning
	// SeverityError marks structure that was lost.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is a single audit finding.
type Issue struct {
	Severity Severity
	Message  string
}

// AuditReport is the ordered list of issues found while recovering and
// auditing a document. It is append-only during loading and read-only
// afterwards.
type AuditReport struct {
	Issues []Issue
	Fixed  int // number of structures repaired in place
}

func (r *AuditReport) add(sev Severity, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether the audit found nothing.
func (r *AuditReport) Empty() bool {
	return len(r.Issues) == 0
}

// Errors returns the number of error-severity findings.
func (r *AuditReport) Errors() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning-severity findings.
func (r *AuditReport) Warnings() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
