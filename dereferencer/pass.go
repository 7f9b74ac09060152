package dereferencer

import (
	"github.com/erraggy/oasderef/internal/issues"
	"github.com/erraggy/oasderef/internal/pathutil"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/erraggy/oasderef/jsonnode"
	"github.com/erraggy/oasderef/oaserrors"
)

// pass is the state of a single dereference call. It is threaded through
// the recursion and discarded afterwards.
type pass struct {
	d      *Dereferencer
	log    Logger
	root   *document
	loader *loader
	// aliases is keyed by document id, see aliases.go
	aliases aliasRegistry

	// Global flags. Seeded from options, switched by the document itself.
	globalInline       bool
	includedRefPostfix bool

	// walking holds the object nodes currently on the walk stack.
	walking map[*jsonnode.Node]struct{}
	// resolving holds "documentID#fragment" keys of references in progress.
	resolving map[string]struct{}
	// promoting holds "documentID#pointer" keys of promotions in progress.
	promoting map[string]struct{}
	depth     int
	maxDepth  int

	path     *pathutil.PathBuilder
	issues   []issues.Issue
	promoted int
}

func newPass(d *Dereferencer, root *document) *pass {
	log := d.log()
	p := &pass{
		d:                  d,
		log:                log,
		root:               root,
		loader:             newLoader(d, log),
		aliases:            make(aliasRegistry),
		globalInline:       d.GlobalInline,
		includedRefPostfix: d.IncludedRefPostfix,
		walking:            make(map[*jsonnode.Node]struct{}),
		resolving:          make(map[string]struct{}),
		promoting:          make(map[string]struct{}),
		maxDepth:           d.maxRefDepth(),
		path:               pathutil.Get(),
	}
	p.loader.register(root)
	return p
}

// release returns pooled resources.
func (p *pass) release() {
	pathutil.Put(p.path)
	p.path = nil
}

// enter bumps the reference nesting depth, failing past the limit.
func (p *pass) enter(ref string) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(p.maxDepth),
			Actual:       int64(p.depth),
			Message:      "references nested too deeply at " + ref,
		}
	}
	return nil
}

func (p *pass) leave() {
	p.depth--
}

// issue records a diagnostic and logs it at the matching level.
func (p *pass) issue(sev severity.Severity, doc *document, keyword, ref, msg string) {
	i := issues.Issue{
		Path:     p.path.String(),
		Message:  msg,
		Severity: sev,
		Keyword:  keyword,
		Ref:      ref,
	}
	if doc != nil && !doc.isRoot {
		i.Document = doc.String()
	}
	p.issues = append(p.issues, i)

	attrs := []any{"path", i.Location()}
	if i.Document != "" {
		attrs = append(attrs, "document", i.Document)
	}
	if ref != "" {
		attrs = append(attrs, "ref", ref)
	}
	if keyword != "" {
		attrs = append(attrs, "keyword", keyword)
	}
	switch sev {
	case severity.SeverityError:
		p.log.Error(msg, attrs...)
	case severity.SeverityWarning:
		p.log.Warn(msg, attrs...)
	case severity.SeverityInfo:
		p.log.Info(msg, attrs...)
	default:
		p.log.Debug(msg, attrs...)
	}
}

// directiveIssue records a malformed control keyword as a warning.
func (p *pass) directiveIssue(doc *document, keyword, msg string) {
	err := &oaserrors.DirectiveError{Keyword: keyword, Pointer: p.path.String(), Message: msg}
	p.issue(severity.SeverityWarning, doc, keyword, "", err.Error())
}
