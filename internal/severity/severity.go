// Package severity provides severity level constants for issues reported
// while dereferencing a document.
//
// The severity levels are ordered from least to most severe:
// Debug < Info < Warning < Error
package severity

// Severity indicates the severity level of an issue raised during a
// dereference pass.
type Severity int

const (
	// SeverityDebug marks trace-level notes, such as a cache hit or a pointer
	// left in place because local dereferencing is disabled.
	SeverityDebug Severity = iota

	// SeverityInfo indicates informational messages about processing choices,
	// such as a fragment promoted into the root document.
	SeverityInfo

	// SeverityWarning indicates a malformed directive that was ignored or a
	// fallback that changed the shape of the output.
	SeverityWarning

	// SeverityError indicates content that could not be resolved or merged.
	// The pass continues, but the output is incomplete.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
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

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}
