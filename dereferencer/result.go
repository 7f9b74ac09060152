package dereferencer

import (
	"time"

	"github.com/erraggy/oasderef/internal/issues"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/erraggy/oasderef/jsonnode"
)

// DereferenceResult contains the resolved document and what happened while
// producing it.
type DereferenceResult struct {
	// Document is the fully resolved tree. It may be a different node than
	// the input root when the root itself was a reference.
	Document *jsonnode.Node
	// SourcePath is the input path, URL, or base location
	SourcePath string
	// Issues are the non-fatal conditions met during the pass, in order
	Issues []issues.Issue
	// LoadedDocuments lists the canonical locations of every document
	// loaded besides the root, in load order
	LoadedDocuments []string
	// PromotedCount is the number of fragments copied into the root
	PromotedCount int
	// LoadTime is the wall time of the whole call
	LoadTime time.Duration
	// SourceSize is the size of the root input in bytes (0 for a parsed tree)
	SourceSize int64
}

// MarshalJSON encodes the resolved document as compact JSON, preserving
// field order.
func (r *DereferenceResult) MarshalJSON() ([]byte, error) {
	return r.Document.MarshalJSON()
}

// MarshalIndentJSON encodes the resolved document as indented JSON.
func (r *DereferenceResult) MarshalIndentJSON(prefix, indent string) ([]byte, error) {
	return r.Document.MarshalIndentJSON(prefix, indent)
}

// MarshalYAML implements yaml.Marshaler for the resolved document.
func (r *DereferenceResult) MarshalYAML() (any, error) {
	return r.Document.MarshalYAML()
}

// EncodeYAML encodes the resolved document as YAML text.
func (r *DereferenceResult) EncodeYAML() ([]byte, error) {
	return r.Document.EncodeYAML()
}

// String returns the resolved document as pretty-printed JSON.
func (r *DereferenceResult) String() string {
	data, err := r.MarshalIndentJSON("", "  ")
	if err != nil {
		return r.Document.String()
	}
	return string(data)
}

// ErrorCount returns the number of error-level issues.
func (r *DereferenceResult) ErrorCount() int {
	return issues.Count(r.Issues, severity.SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *DereferenceResult) WarningCount() int {
	return issues.Count(r.Issues, severity.SeverityWarning)
}

// HasErrors reports whether any error-level issue was recorded.
func (r *DereferenceResult) HasErrors() bool {
	return r.ErrorCount() > 0
}
