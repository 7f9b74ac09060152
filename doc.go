// Package oasderef resolves and merges $ref cross-references inside JSON and
// YAML documents (OpenAPI and JSON Schema style), producing a single
// self-contained document.
//
// The engine lives in the dereferencer package; this root package only
// carries build metadata used for the CLI version output and the HTTP
// User-Agent.
//
// # Overview
//
//   - jsonnode: ordered JSON tree with JSON Pointer lookup, cloning, and
//     JSON/YAML encoding
//   - dereferencer: the resolution and merge engine
//   - oaserrors: structured error types for errors.Is and errors.As
//
// # Quick Start
//
//	result, err := dereferencer.DereferenceWithOptions(
//	    dereferencer.WithFilePath("api.json"),
//	    dereferencer.WithLocalBaseDir("src"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String())
//
// # Directives
//
// Besides $ref, an object may carry control keywords that steer the merge:
// $refIgnore, $refInline, $refDeep, $refLocalize, $refIncludes,
// $refExcludes, $refArrayProcessing, $refAliases, $refGlobalInline, and
// $refGlobalIncludedRefPostfix. All of them are consumed during the pass and
// never appear in the output. See the dereferencer package for details.
//
// # Command Line
//
// The oasderef binary wraps the library:
//
//	oasderef deref -o out.json api.json
//	oasderef deref --format yaml --base-dir src < api.json
//	oasderef mcp
package oasderef
