package dereferencer

import (
	"slices"

	"github.com/erraggy/oasderef/jsonnode"
)

// merge copies the attributes of source into target and returns target.
// On conflict the target wins, unless both values are objects and deep is
// set (recurse), or both are arrays with an array directive (append).
// The merge keywords on target are consumed.
func (p *pass) merge(target, source *jsonnode.Node, deep bool, doc *document) *jsonnode.Node {
	includes, hasIncludes := p.stringList(target.Remove(KeyRefIncludes), KeyRefIncludes, doc)
	excludes, hasExcludes := p.stringList(target.Remove(KeyRefExcludes), KeyRefExcludes, doc)

	var arrayDirectives *jsonnode.Node
	if value := target.Remove(KeyRefArrayProcessing); value != nil {
		if value.IsObject() {
			arrayDirectives = value
		} else {
			p.directiveIssue(doc, KeyRefArrayProcessing, "expected an object keyed by attribute name")
		}
	}

	for _, f := range source.Fields() {
		name, value := f.Name, f.Value

		if hasIncludes && !slices.Contains(includes, name) {
			continue
		}
		if hasExcludes && slices.Contains(excludes, name) {
			continue
		}

		directive, malformed := p.arrayDirective(arrayDirectives, name, doc)

		// An array directive forces a merge even when target lacks the attribute.
		if directive != nil && value.IsArray() && !target.Has(name) {
			target.Set(name, jsonnode.NewArray())
		}

		existing, ok := target.Get(name)
		if !ok {
			target.Set(name, value)
			continue
		}

		switch {
		case deep && existing.IsObject() && value.IsObject():
			p.path.Push(name)
			p.merge(existing, value, true, doc)
			p.path.Pop()
		case directive != nil && existing.IsArray() && value.IsArray():
			p.path.Push(name)
			p.mergeArray(existing, value, directive, doc)
			p.path.Pop()
		case malformed:
			p.log.Debug("array directive ignored, keeping target value", "attribute", name)
		default:
			p.log.Debug("attribute already present, keeping target value", "attribute", name)
		}
	}
	return target
}

// arrayDirective returns the $refArrayProcessing entry for name. A
// non-object entry is reported and treated as absent.
func (p *pass) arrayDirective(directives *jsonnode.Node, name string, doc *document) (*jsonnode.Node, bool) {
	if directives == nil {
		return nil, false
	}
	d, ok := directives.Get(name)
	if !ok {
		return nil, false
	}
	if !d.IsObject() {
		p.directiveIssue(doc, KeyRefArrayProcessing, "directive for "+name+" must be an object")
		return nil, true
	}
	return d, false
}

// mergeArray appends the items of source to target, dropping items that
// partially match $refArrayRemovePartialMatch and, with $refSetMerge,
// items already present in target.
func (p *pass) mergeArray(target, source, directive *jsonnode.Node, doc *document) {
	var patterns []*jsonnode.Node
	if value, ok := directive.Get(KeyRefArrayRemovePartial); ok {
		if !value.IsArray() {
			p.directiveIssue(doc, KeyRefArrayRemovePartial, "expected an array of patterns, keeping target intact")
			return
		}
		patterns = value.Items()
	}

	setMerge := false
	if value, ok := directive.Get(KeyRefSetMerge); ok {
		// Present means on, unless explicitly false.
		b, isBool := value.BoolValue()
		setMerge = !isBool || b
	}

	for i, item := range source.Items() {
		if matchesAny(item, patterns) {
			p.log.Debug("array item removed by partial match", "index", i)
			continue
		}
		if setMerge && containsEqual(target, item) {
			p.log.Debug("duplicate array item skipped", "index", i)
			continue
		}
		target.Append(item)
	}
}

// stringList reads a list of attribute names. A value that is not an array
// is reported and the filter is ignored. Non-string items are skipped.
func (p *pass) stringList(value *jsonnode.Node, keyword string, doc *document) ([]string, bool) {
	if value == nil {
		return nil, false
	}
	if !value.IsArray() {
		p.directiveIssue(doc, keyword, "expected an array of attribute names")
		return nil, false
	}
	names := make([]string, 0, value.Len())
	for _, item := range value.Items() {
		if s, ok := item.StringValue(); ok {
			names = append(names, s)
		}
	}
	return names, true
}

// matchesAny reports whether node partially matches one of patterns.
func matchesAny(node *jsonnode.Node, patterns []*jsonnode.Node) bool {
	for _, pattern := range patterns {
		if partialMatch(node, pattern) {
			return true
		}
	}
	return false
}

// partialMatch reports whether every key of pattern matches node.
// Objects compare by the pattern's keys, arrays by the pattern's indexes,
// scalars by value.
func partialMatch(node, pattern *jsonnode.Node) bool {
	if node == pattern {
		return true
	}
	if node == nil || pattern == nil {
		return false
	}
	if node.Kind() != pattern.Kind() {
		return false
	}
	switch pattern.Kind() {
	case jsonnode.Object:
		for _, f := range pattern.Fields() {
			v, ok := node.Get(f.Name)
			if !ok || !partialMatch(v, f.Value) {
				return false
			}
		}
		return true
	case jsonnode.Array:
		for i, want := range pattern.Items() {
			got, ok := node.Item(i)
			if !ok || !partialMatch(got, want) {
				return false
			}
		}
		return true
	default:
		return jsonnode.Equal(node, pattern)
	}
}

// containsEqual reports whether array holds an item structurally equal to node.
func containsEqual(array, node *jsonnode.Node) bool {
	for _, item := range array.Items() {
		if jsonnode.Equal(item, node) {
			return true
		}
	}
	return false
}
