// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// Pointer prefixes of the reusable-component sections. Objects promoted into
// one of these sections are tagged with the library they came from.
const (
	PrefixDefinitions = "/definitions/"
	PrefixParameters  = "/parameters/"
	PrefixComponents  = "/components/"
)

// libraryPrefixes lists the sections whose promoted entries carry provenance.
var libraryPrefixes = []string{PrefixParameters, PrefixComponents, PrefixDefinitions}

// IsLibrarySection reports whether pointer lies inside a reusable-component
// section ("/definitions/", "/parameters/", or "/components/").
func IsLibrarySection(pointer string) bool {
	for _, prefix := range libraryPrefixes {
		if strings.HasPrefix(pointer, prefix) {
			return true
		}
	}
	return false
}

// LocalRef builds the local reference "#{pointer}".
func LocalRef(pointer string) string {
	return "#" + pointer
}

// IsLocalRef reports whether ref points into the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}
