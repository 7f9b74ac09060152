// Package issues provides the diagnostic record collected during a dereference pass.
package issues

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasderef/internal/severity"
)

// Issue represents a single non-fatal problem found while dereferencing.
type Issue struct {
	// Path is the JSON Pointer of the node in the output document being
	// processed (e.g., "/paths/~1pets/get")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Keyword is the control keyword involved, if any (e.g., "$refIncludes")
	Keyword string
	// Ref is the href being resolved when the issue was raised, if any
	Ref string
	// Document is the canonical location of the referenced document whose
	// content was being resolved (empty for the root). Path does not point
	// into this document.
	Document string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
// - "·" for Debug severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	case severity.SeverityDebug:
		symbol = "·"
	default:
		symbol = "?"
	}

	return render(func(sb *strings.Builder) {
		sb.WriteString(symbol)
		sb.WriteByte(' ')
		sb.WriteString(i.Location())
		if i.Document != "" {
			sb.WriteString(" (in ")
			sb.WriteString(i.Document)
			sb.WriteByte(')')
		}
		if i.Ref != "" {
			sb.WriteString(" [$ref ")
			sb.WriteString(strconv.Quote(i.Ref))
			sb.WriteByte(']')
		}
		sb.WriteString(": ")
		sb.WriteString(i.Message)
	})
}

// Location returns the output pointer the issue was raised at. The root
// pointer is shown as "/".
func (i Issue) Location() string {
	if i.Path == "" {
		return "/"
	}
	return i.Path
}

// IsError returns true if the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}

// Count returns the number of issues with exactly the given severity.
func Count(list []Issue, sev severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Filter returns the issues at or above the given severity, preserving order.
func Filter(list []Issue, min severity.Severity) []Issue {
	var out []Issue
	for _, i := range list {
		if i.Severity.AtLeast(min) {
			out = append(out, i)
		}
	}
	return out
}
