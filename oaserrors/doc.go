// Package oaserrors provides structured error types for the oasderef library.
//
// Import path: github.com/erraggy/oasderef/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors raised
// while dereferencing a document.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML decoding failures of the root or a referenced document
//   - [ReferenceError]: load failures, missing fragments, circular references
//   - [DirectiveError]: malformed $ref control keywords
//   - [ConflictError]: incompatible node kinds during local-reference promotion
//   - [ResourceLimitError]: reference depth, cache size, and file size limits
//   - [ConfigError]: invalid options
//
// Directive and conflict errors are normally reported as issues on the result
// rather than returned, because the dereferencer degrades gracefully around them.
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrDirective]: Matches any [DirectiveError]
//   - [ErrConflict]: Matches any [ConflictError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := dereferencer.DereferenceWithOptions(dereferencer.WithFilePath("api.json"))
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // The document references itself
//	}
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	}
package oaserrors
