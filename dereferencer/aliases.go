package dereferencer

import (
	"strings"

	"github.com/erraggy/oasderef/internal/severity"
	"github.com/erraggy/oasderef/jsonnode"
	"github.com/google/uuid"
)

// aliasRegistry maps a document id to the aliases that document declared.
// Lookups go through the id of the document in scope, never through
// content, so identical documents keep separate alias scopes.
type aliasRegistry map[uuid.UUID]map[string]string

func (r aliasRegistry) set(doc *document, alias, prefix string) {
	table, ok := r[doc.id]
	if !ok {
		table = make(map[string]string)
		r[doc.id] = table
	}
	table[alias] = prefix
}

func (r aliasRegistry) lookup(doc *document, alias string) (string, bool) {
	prefix, ok := r[doc.id][alias]
	return prefix, ok
}

// registerAliases consumes a $refAliases object for doc.
func (p *pass) registerAliases(value *jsonnode.Node, doc *document) {
	if !value.IsObject() {
		p.directiveIssue(doc, KeyRefAliases, "expected an object mapping alias names to URL prefixes")
		return
	}
	for _, f := range value.Fields() {
		if !f.Value.IsScalar() {
			p.directiveIssue(doc, KeyRefAliases, "alias "+f.Name+" is not a text value")
			continue
		}
		prefix := scalarText(f.Value)
		p.aliases.set(doc, f.Name, prefix)
		p.log.Debug("registered alias", "alias", f.Name, "prefix", prefix, "document", doc.String())
	}
}

// substituteAlias rewrites "@alias#pointer" to "<prefix>#pointer" using the
// aliases of doc. An unknown alias is reported and href is returned as written.
func (p *pass) substituteAlias(href string, doc *document) string {
	hash := strings.IndexByte(href, '#')
	if hash <= 0 {
		p.issue(severity.SeverityError, doc, KeyRef, href, "invalid reference alias: expected @alias#pointer")
		return href
	}
	alias := href[1:hash]
	prefix, ok := p.aliases.lookup(doc, alias)
	if !ok {
		p.issue(severity.SeverityError, doc, KeyRef, href, "reference alias "+alias+" is not defined in this document")
		return href
	}
	resolved := prefix + href[hash:]
	p.log.Debug("substituted alias", "from", href, "to", resolved)
	return resolved
}

// preloadAliases registers the top-level $refAliases of a freshly loaded
// document so fragments taken from it see its aliases.
func (p *pass) preloadAliases(doc *document) {
	if value, ok := doc.node.Get(KeyRefAliases); ok {
		p.registerAliases(value, doc)
	}
}

// scalarText is the text form of a scalar: strings as-is, anything else as JSON.
func scalarText(n *jsonnode.Node) string {
	if s, ok := n.StringValue(); ok {
		return s
	}
	return n.String()
}
