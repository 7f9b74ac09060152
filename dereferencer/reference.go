package dereferencer

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasderef/internal/pathutil"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/erraggy/oasderef/jsonnode"
	"github.com/erraggy/oasderef/oaserrors"
)

// resolveReference handles an object carrying $ref. ref is the raw $ref
// value and inline reports whether $refInline was present.
func (p *pass) resolveReference(node, ref *jsonnode.Node, inline bool, doc *document) (*jsonnode.Node, error) {
	hrefs, ok := refList(ref)
	if !ok {
		p.directiveIssue(doc, KeyRef, "expected a string or an array of strings")
		return node, nil
	}
	if len(hrefs) == 0 {
		p.directiveIssue(doc, KeyRef, "no reference strings in $ref array")
		return node, nil
	}

	// Modifiers apply to every href in the list.
	deep := node.Remove(KeyRefDeep) != nil
	localize := node.Remove(KeyRefLocalize) != nil
	single := len(hrefs) == 1

	for _, href := range hrefs {
		if pathutil.IsLocalRef(href) {
			// A pointer inside a document being imported into the root is
			// copied into the root rather than inlined.
			if !doc.isRoot && len(href) > 2 && !p.globalInline && single {
				newRef, err := p.promote(doc, href[1:])
				if err != nil {
					return nil, err
				}
				node.Set(KeyRef, jsonnode.NewString(newRef))
				stripMergeDirectives(node)
				return node, nil
			}
			if single && !p.d.DereferenceLocalRefs && !inline && !p.globalInline {
				p.issue(severity.SeverityDebug, doc, KeyRef, href, "local reference kept in place")
				stripMergeDirectives(node)
				return node, nil
			}
		}
		node.Remove(KeyRef)

		target := href
		if strings.HasPrefix(href, "@") {
			target = p.substituteAlias(href, doc)
		}

		source, fragment, err := p.locate(target, doc)
		if err != nil {
			return p.fail(node, ref, href, doc, err)
		}
		template, err := p.lookup(source, fragment, href)
		if err != nil {
			return p.fail(node, ref, href, doc, err)
		}

		if localize && fragment != "" {
			// The promoter resolves its own copy, so the fragment is not
			// resolved here.
			newRef, err := p.promote(source, fragment)
			if err != nil {
				return nil, err
			}
			node.Clear()
			node.Set(KeyRef, jsonnode.NewString(newRef))
			return node, nil
		}

		content, err := p.fragment(source, template, fragment, href)
		if err != nil {
			return p.fail(node, ref, href, doc, err)
		}

		if node.Len() == 0 || !content.IsObject() {
			return content, nil
		}
		p.merge(node, content, deep, doc)
	}
	return node, nil
}

// refList normalizes a $ref value into a list of hrefs. Non-string array
// elements are skipped.
func refList(ref *jsonnode.Node) ([]string, bool) {
	if s, ok := ref.StringValue(); ok {
		return []string{s}, true
	}
	if !ref.IsArray() {
		return nil, false
	}
	hrefs := make([]string, 0, ref.Len())
	for _, item := range ref.Items() {
		if s, ok := item.StringValue(); ok {
			hrefs = append(hrefs, s)
		}
	}
	return hrefs, true
}

// locate finds the document an href points into and the JSON Pointer
// fragment inside it. "#..." targets doc itself. Scheme-less hrefs are
// files under LocalBaseDir; anything with a scheme resolves against the
// location of doc.
func (p *pass) locate(href string, doc *document) (*document, string, error) {
	if pathutil.IsLocalRef(href) {
		return doc, href[1:], nil
	}

	u, err := url.Parse(href)
	if err != nil {
		return nil, "", &oaserrors.ReferenceError{Ref: href, Message: "invalid reference", Cause: err}
	}

	var loc *url.URL
	if u.Scheme == "" {
		loc, err = fileURL(filepath.Join(p.d.localBaseDir(), filepath.FromSlash(u.Path)))
		if err != nil {
			return nil, "", &oaserrors.ReferenceError{Ref: href, RefType: oaserrors.RefTypeFile, Cause: err}
		}
	} else if doc.location != nil {
		if u.Opaque != "" && strings.EqualFold(u.Scheme, doc.location.Scheme) {
			// "file:lib.json" is relative to a base of the same scheme.
			u = &url.URL{Path: u.Opaque, RawQuery: u.RawQuery, Fragment: u.Fragment}
		}
		loc = doc.location.ResolveReference(u)
	} else {
		loc = u
	}

	target, cached, err := p.loader.load(loc, href)
	if err != nil {
		return nil, "", err
	}
	if cached {
		p.issue(severity.SeverityDebug, doc, KeyRef, href, "document loaded from cache")
	} else {
		p.preloadAliases(target)
	}
	return target, u.Fragment, nil
}

// lookup returns the template node at pointer in doc. An empty pointer
// selects the whole document.
func (p *pass) lookup(doc *document, pointer, href string) (*jsonnode.Node, error) {
	target, ok := doc.node.At(pointer)
	if !ok {
		return nil, &oaserrors.ReferenceError{
			Ref:      href,
			RefType:  refType(href),
			Location: doc.String(),
			Message:  "pointer " + pointer + " not found",
		}
	}
	return target, nil
}

// fragment returns a resolved copy of target, the node at pointer in doc.
func (p *pass) fragment(doc *document, target *jsonnode.Node, pointer, href string) (*jsonnode.Node, error) {
	key := doc.refKey(pointer)
	_, onStack := p.walking[target]
	_, inProgress := p.resolving[key]
	if onStack || inProgress {
		return nil, &oaserrors.ReferenceError{
			Ref:        href,
			RefType:    refType(href),
			Location:   doc.String(),
			IsCircular: true,
			Message:    "reference points back into itself",
		}
	}

	if err := p.enter(href); err != nil {
		return nil, err
	}
	defer p.leave()
	p.resolving[key] = struct{}{}
	defer delete(p.resolving, key)

	return p.resolve(target.Clone(), doc)
}

// fail decides whether a failed href aborts the pass. In lenient mode load
// and pointer failures become issues and the original $ref is restored.
func (p *pass) fail(node, ref *jsonnode.Node, href string, doc *document, err error) (*jsonnode.Node, error) {
	if !p.d.Lenient || !recoverable(err) {
		return nil, err
	}
	p.issue(severity.SeverityError, doc, KeyRef, href, err.Error())
	node.Set(KeyRef, ref)
	stripMergeDirectives(node)
	return node, nil
}

// recoverable reports whether lenient mode may swallow err. Circular
// references and resource limits always abort.
func recoverable(err error) bool {
	if errors.Is(err, oaserrors.ErrCircularReference) || errors.Is(err, oaserrors.ErrResourceLimit) {
		return false
	}
	return errors.Is(err, oaserrors.ErrReference) || errors.Is(err, oaserrors.ErrParse)
}

// stripDirectives removes every reference modifier from a node whose $ref
// is deliberately left alone.
func stripDirectives(node *jsonnode.Node) {
	node.Remove(KeyRefDeep)
	node.Remove(KeyRefLocalize)
	stripMergeDirectives(node)
}

// stripMergeDirectives removes merge keywords from a node whose reference
// was settled without a merge.
func stripMergeDirectives(node *jsonnode.Node) {
	for _, key := range mergeDirectives {
		node.Remove(key)
	}
}

func refType(href string) string {
	switch {
	case pathutil.IsLocalRef(href):
		return oaserrors.RefTypeLocal
	case strings.HasPrefix(href, "@"):
		return oaserrors.RefTypeAlias
	case isURL(href):
		return oaserrors.RefTypeHTTP
	default:
		return oaserrors.RefTypeFile
	}
}
