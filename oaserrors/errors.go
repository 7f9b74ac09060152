package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain leads back to itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrDirective indicates a malformed $ref* control keyword.
	ErrDirective = errors.New("directive error")

	// ErrConflict indicates incompatible node types met during merge or promotion.
	ErrConflict = errors.New("conflict error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a JSON or YAML document.
type ParseError struct {
	// Path is the file path, URL, or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Reference types reported in ReferenceError.RefType.
const (
	RefTypeLocal = "local"
	RefTypeFile  = "file"
	RefTypeHTTP  = "http"
	RefTypeAlias = "alias"
)

// ReferenceError represents a failure to resolve a $ref: the target document
// could not be loaded, the fragment pointer is missing, or the reference
// chain is circular.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType is one of RefTypeLocal, RefTypeFile, RefTypeHTTP, or RefTypeAlias
	RefType string
	// Location is the canonical location of the target document, if known
	Location string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" && e.Location != e.Ref {
		msg += " (" + e.Location + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// DirectiveError represents a control keyword whose value has the wrong
// shape, for example a $ref that is neither a string nor an array, or a
// $refArrayProcessing that is not an object.
type DirectiveError struct {
	// Keyword is the control keyword, e.g. "$refIncludes"
	Keyword string
	// Pointer is the JSON Pointer of the node carrying the keyword
	Pointer string
	// Message describes what was expected
	Message string
}

// Error returns a human-readable error message.
func (e *DirectiveError) Error() string {
	msg := "directive error"
	if e.Keyword != "" {
		msg += " for " + e.Keyword
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DirectiveError) Is(target error) bool {
	return target == ErrDirective
}

// ConflictError represents two nodes of incompatible kinds meeting at the
// same pointer, for example when a promoted fragment would replace a scalar
// already present in the root document.
type ConflictError struct {
	// Pointer is the JSON Pointer where the conflict occurred
	Pointer string
	// Source identifies where the incoming content came from
	Source string
	// Existing is the kind of the node already present
	Existing string
	// Incoming is the kind of the node being added
	Incoming string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	msg := "conflict"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Existing != "" && e.Incoming != "" {
		msg += fmt.Sprintf(" (existing %s, incoming %s)", e.Existing, e.Incoming)
	}
	if e.Source != "" {
		msg += " from " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "cached_documents", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
