// Package dereferencer resolves $ref cross-references in JSON and YAML
// documents and merges the referenced content, producing one self-contained
// document.
//
// # Quick Start
//
//	d := dereferencer.New()
//	d.LocalBaseDir = "src"
//	result, err := d.DereferenceFile("api.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String())
//
// Or with functional options:
//
//	result, err := dereferencer.DereferenceWithOptions(
//	    dereferencer.WithFilePath("api.json"),
//	    dereferencer.WithLocalBaseDir("src"),
//	    dereferencer.WithLogger(dereferencer.NewSlogAdapter(slog.Default())),
//	)
//
// # How a Pass Works
//
// The walker visits the tree depth-first. Children of an object are resolved
// before the object's own $ref, so merges always see resolved content. Each
// href of a $ref (a string, or an array of strings merged in order) is
// located, its fragment is copied and resolved, and then:
//
//   - the fragment replaces the node when the node has nothing else left, or
//     when the fragment is a scalar or an array;
//   - otherwise it is merged into the node. The node's own attributes win on
//     conflict. With $refDeep, nested objects merge recursively.
//
// Only the root document is ever modified. Other documents are loaded once
// per pass, cached by canonical location, and copied before use.
//
// # Href Forms
//
//	#/definitions/Pet               pointer into the document in scope
//	common.json#/definitions/Pet    file under LocalBaseDir
//	https://host/lib.json#/Pet      remote document (needs ResolveHTTPRefs)
//	@lib#/definitions/Pet           alias declared with $refAliases
//
// # Directives
//
//   - $refIgnore: leave this $ref untouched
//   - $refInline: inline a single local pointer even if DereferenceLocalRefs is off
//   - $refDeep: merge nested objects recursively
//   - $refLocalize: copy the fragment into the root and point at the copy
//   - $refIncludes / $refExcludes: allow and deny lists of attribute names
//   - $refArrayProcessing: per attribute, append array items instead of
//     keeping the target's array. $refArrayRemovePartialMatch drops items
//     matching any pattern; $refSetMerge skips items already present.
//   - $refAliases: alias names to URL prefixes, scoped to the declaring document
//   - $refGlobalInline, $refGlobalIncludedRefPostfix: pass-wide switches
//
// # Local-Reference Promotion
//
// When a fragment taken from another document contains a "#/..." pointer,
// the pointer refers to that other document. The target is copied into the
// root at the same pointer so the output stays self-contained, and the
// pointer is kept. With $refGlobalIncludedRefPostfix, the copy is stored
// under "<name>-<file stem>" to avoid collisions. Objects promoted into
// /definitions, /parameters, or /components are tagged with
// x-external-lib naming the module they came from.
//
// # Errors
//
// Parse failures, unresolvable references, circular references, and
// resource limits are returned as errors from the oaserrors package. With
// Lenient set, unresolvable references are recorded as issues instead.
// Malformed directives and promotion conflicts never fail the pass; they
// appear in DereferenceResult.Issues.
package dereferencer
