package jsonnode

import (
	"strconv"
	"strings"
)

// At resolves an RFC 6901 JSON Pointer against n. The empty pointer
// addresses n itself; "/" addresses the field named "".
//
// A missing field, an out-of-range or non-numeric array index, or an attempt
// to descend into a scalar reports false.
func (n *Node) At(ptr string) (*Node, bool) {
	if ptr == "" {
		return n, n != nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, false
	}
	current := n
	for _, token := range strings.Split(ptr[1:], "/") {
		token = UnescapeToken(token)
		switch current.Kind() {
		case Object:
			next, ok := current.Get(token)
			if !ok {
				return nil, false
			}
			current = next
		case Array:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 {
				return nil, false
			}
			next, ok := current.Item(idx)
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// SplitPointer splits a JSON Pointer into unescaped reference tokens.
// The empty pointer yields no tokens.
func SplitPointer(ptr string) []string {
	if ptr == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		parts[i] = UnescapeToken(p)
	}
	return parts
}

// EscapeToken escapes a reference token per RFC 6901: "~" becomes "~0" and
// "/" becomes "~1".
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
