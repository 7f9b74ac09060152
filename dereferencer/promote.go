package dereferencer

import (
	"github.com/erraggy/oasderef/internal/pathutil"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/erraggy/oasderef/jsonnode"
	"github.com/erraggy/oasderef/oaserrors"
)

// promote copies the node at pointer in doc into the root document at the
// same pointer and returns the local reference to use in its place. With
// the included-ref postfix on, the leaf name gets "-<file stem>" appended
// so fragments from different documents do not collide.
//
// Promoting the same fragment twice copies it once. Kind conflicts with
// content already in the root are reported and leave the root untouched
// at that branch.
func (p *pass) promote(doc *document, pointer string) (string, error) {
	postfix := ""
	if p.includedRefPostfix {
		postfix = doc.postfix()
	}
	ref := pathutil.LocalRef(pointer + postfix)

	source, ok := doc.node.At(pointer)
	if !ok {
		p.issue(severity.SeverityWarning, doc, KeyRef, pathutil.LocalRef(pointer), "pointer not found in source document, nothing promoted")
		return ref, nil
	}
	if !p.root.node.IsObject() {
		p.issue(severity.SeverityWarning, doc, KeyRef, pathutil.LocalRef(pointer), "root document is not an object, nothing promoted")
		return ref, nil
	}
	if _, exists := p.root.node.At(pointer + postfix); exists {
		return ref, nil
	}

	key := doc.refKey(pointer)
	if _, busy := p.promoting[key]; busy {
		return ref, nil
	}
	p.promoting[key] = struct{}{}
	defer delete(p.promoting, key)

	// Resolve a copy in the scope of its own document. Nested "#/..."
	// pointers inside it are promoted in turn by the walker.
	if err := p.enter(ref); err != nil {
		return "", err
	}
	leaf, err := p.resolve(source.Clone(), doc)
	p.leave()
	if err != nil {
		return "", err
	}

	if err := p.attach(doc, pointer, postfix, leaf); err != nil {
		return "", err
	}
	return ref, nil
}

// attach walks pointer from the root, creating intermediate objects, and
// sets leaf under the last token plus postfix. A non-object met on the way
// in the source is resolved and copied whole under its plain name.
func (p *pass) attach(doc *document, pointer, postfix string, leaf *jsonnode.Node) error {
	tokens := jsonnode.SplitPointer(pointer)
	if len(tokens) == 0 {
		return nil
	}

	addPoint := p.root.node
	current := doc.node
	for i, name := range tokens {
		current = child(current, name)
		if current == nil {
			p.issue(severity.SeverityError, doc, KeyRef, pathutil.LocalRef(pointer), "unable to promote undefined reference")
			return nil
		}

		if i == len(tokens)-1 {
			addPoint.Set(name+postfix, p.tagProvenance(pointer, doc, leaf))
			p.promoted++
			p.issue(severity.SeverityInfo, doc, KeyRef, pathutil.LocalRef(pointer), "promoted into root as "+pathutil.LocalRef(pointer+postfix))
			return nil
		}

		existing, ok := addPoint.Get(name)
		if ok {
			if existing.Kind() != current.Kind() || !existing.IsObject() {
				p.conflict(doc, pointer, tokens[:i+1], existing, current)
				return nil
			}
			addPoint = existing
			continue
		}

		if !current.IsObject() {
			p.issue(severity.SeverityWarning, doc, KeyRef, pathutil.LocalRef(pointer),
				"reached a non-object at "+name+", copying it whole")
			resolved, err := p.resolve(current.Clone(), doc)
			if err != nil {
				return err
			}
			addPoint.Set(name, resolved)
			return nil
		}
		next := jsonnode.NewObject()
		addPoint.Set(name, next)
		addPoint = next
	}
	return nil
}

// conflict records a kind mismatch between the root and the source.
func (p *pass) conflict(doc *document, pointer string, tokens []string, existing, incoming *jsonnode.Node) {
	at := ""
	for _, t := range tokens {
		at += "/" + jsonnode.EscapeToken(t)
	}
	err := &oaserrors.ConflictError{
		Pointer:  at,
		Source:   doc.String(),
		Existing: existing.Kind().String(),
		Incoming: incoming.Kind().String(),
		Message:  "refusing to merge while promoting " + pathutil.LocalRef(pointer),
	}
	p.issue(severity.SeverityError, doc, KeyRef, pathutil.LocalRef(pointer), err.Error())
}

// tagProvenance marks objects promoted into a reusable-component section
// with the module they came from, unless already marked.
func (p *pass) tagProvenance(pointer string, doc *document, leaf *jsonnode.Node) *jsonnode.Node {
	if !leaf.IsObject() || !pathutil.IsLibrarySection(pointer) {
		return leaf
	}
	module := doc.moduleID()
	if module == "" || leaf.Has(ExternalLibKey) {
		return leaf
	}
	leaf.Set(ExternalLibKey, jsonnode.NewString(module))
	return leaf
}

// child returns the member or item of n addressed by an unescaped token.
func child(n *jsonnode.Node, token string) *jsonnode.Node {
	c, ok := n.At("/" + jsonnode.EscapeToken(token))
	if !ok {
		return nil
	}
	return c
}
