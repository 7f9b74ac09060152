package dereferencer

import (
	"github.com/erraggy/oasderef/jsonnode"
)

// resolve walks node depth-first with doc as the document in scope.
// Children are resolved before the node's own reference, so merges always
// see resolved content. The returned node may replace node in its parent.
func (p *pass) resolve(node *jsonnode.Node, doc *document) (*jsonnode.Node, error) {
	switch node.Kind() {
	case jsonnode.Object:
		return p.resolveObject(node, doc)
	case jsonnode.Array:
		return p.resolveArray(node, doc)
	default:
		return node, nil
	}
}

func (p *pass) resolveObject(node *jsonnode.Node, doc *document) (*jsonnode.Node, error) {
	p.walking[node] = struct{}{}
	defer delete(p.walking, node)

	if aliases := node.Remove(KeyRefAliases); aliases != nil {
		p.registerAliases(aliases, doc)
	}
	p.consumeGlobalFlag(node, KeyRefGlobalInline, &p.globalInline, doc)
	p.consumeGlobalFlag(node, KeyRefGlobalIncludedPostfix, &p.includedRefPostfix, doc)

	for _, f := range node.Fields() {
		p.path.Push(f.Name)
		resolved, err := p.resolve(f.Value, doc)
		p.path.Pop()
		if err != nil {
			return nil, err
		}
		if resolved != f.Value {
			node.Set(f.Name, resolved)
		}
	}

	ref, hasRef := node.Get(KeyRef)
	ignore := node.Remove(KeyRefIgnore)
	inline := node.Remove(KeyRefInline)
	if !hasRef || ignore != nil {
		stripDirectives(node)
		return node, nil
	}
	return p.resolveReference(node, ref, inline != nil, doc)
}

func (p *pass) resolveArray(node *jsonnode.Node, doc *document) (*jsonnode.Node, error) {
	for i, item := range node.Items() {
		p.path.PushIndex(i)
		resolved, err := p.resolve(item, doc)
		p.path.Pop()
		if err != nil {
			return nil, err
		}
		if resolved != item {
			node.SetItem(i, resolved)
		}
	}
	return node, nil
}

// consumeGlobalFlag removes key from node and, when it holds a boolean,
// switches the pass-wide flag for the rest of the pass.
func (p *pass) consumeGlobalFlag(node *jsonnode.Node, key string, flag *bool, doc *document) {
	value := node.Remove(key)
	if value == nil {
		return
	}
	b, ok := value.BoolValue()
	if !ok {
		p.directiveIssue(doc, key, "expected a boolean")
		return
	}
	*flag = b
	p.log.Debug("global flag set", "keyword", key, "value", b)
}
