// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer building utilities for document
// traversal.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// pointers incrementally without allocating intermediate strings. The
// dereferencer pushes a segment on each recursive call but only materializes
// the pointer when it records an issue.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/pets")  // escaped to "~1pets"
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
//	// Only call String() when needed (e.g., reporting an issue)
//	if hasIssue {
//	    return fmt.Errorf("problem at %s", path.String())
//	}
//
// Array indices are supported via [PathBuilder.PushIndex]:
//
//	path.Push("allOf")
//	path.PushIndex(0)  // produces "/allOf/0"
//
// # Reference Helpers
//
// [LocalRef] and [IsLocalRef] build and recognize "#/..." references, and
// [IsLibrarySection] recognizes the reusable-component sections whose
// promoted entries carry the x-external-lib provenance tag.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It resolves ".." components and rejects symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink detected
//	}
package pathutil
