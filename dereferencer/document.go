package dereferencer

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasderef/jsonnode"
	"github.com/google/uuid"
)

// document is a parsed tree together with where it came from. Only the
// root document is ever mutated; every other document is a read-only
// template whose content is cloned before use.
type document struct {
	// id scopes the alias table. Two documents with identical content still
	// get distinct ids.
	id uuid.UUID
	// location is the canonical location, nil for a root given without a base.
	location *url.URL
	node     *jsonnode.Node
	isRoot   bool
}

func newDocument(node *jsonnode.Node, location *url.URL, isRoot bool) *document {
	return &document{
		id:       uuid.New(),
		location: location,
		node:     node,
		isRoot:   isRoot,
	}
}

// String returns the canonical location, or an empty string for a root
// document without one.
func (d *document) String() string {
	if d == nil || d.location == nil {
		return ""
	}
	return d.location.String()
}

// refKey identifies a fragment of this document for cycle tracking.
func (d *document) refKey(fragment string) string {
	return d.id.String() + "#" + fragment
}

// postfix returns "-<file stem>" of the document location, used to
// namespace promoted fragments. The root document has no postfix.
func (d *document) postfix() string {
	if d.isRoot || d.location == nil {
		return ""
	}
	base := path.Base(d.location.Path)
	if base == "." || base == "/" {
		return ""
	}
	return "-" + strings.TrimSuffix(base, path.Ext(base))
}

// moduleID derives the library name from a Maven-style layout, where a
// document lives at .../<artifactId>/<version>/<file>. It is the third
// path component from the end, or empty when the path is too short.
func (d *document) moduleID() string {
	if d.isRoot || d.location == nil {
		return ""
	}
	components := strings.Split(d.location.Path, "/")
	if len(components) > 3 {
		return components[len(components)-3]
	}
	return ""
}

// canonicalKey is the cache key for a location. Two spellings of the same
// resource map to the same key: scheme and host are lowercased, default
// ports are dropped, the path is cleaned and the fragment is ignored.
func canonicalKey(u *url.URL) string {
	c := canonicalize(u)
	if c == nil {
		return ""
	}
	return c.String()
}

// canonicalize returns a fragment-free copy of u in canonical form.
func canonicalize(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	switch {
	case c.Scheme == "http" && strings.HasSuffix(c.Host, ":80"):
		c.Host = strings.TrimSuffix(c.Host, ":80")
	case c.Scheme == "https" && strings.HasSuffix(c.Host, ":443"):
		c.Host = strings.TrimSuffix(c.Host, ":443")
	}
	if c.Path != "" {
		trailing := strings.HasSuffix(c.Path, "/")
		c.Path = path.Clean(c.Path)
		if trailing && c.Path != "/" {
			c.Path += "/"
		}
		c.RawPath = ""
	}
	return &c
}

// fileURL converts a filesystem path into an absolute file:// URL.
func fileURL(p string) (*url.URL, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return &url.URL{Scheme: "file", Path: slashed}, nil
}

// parseLocation turns a user-supplied base location into a URL. Strings with
// a scheme are parsed as URLs; anything else is treated as a file path.
func parseLocation(s string) (*url.URL, error) {
	if s == "" {
		return nil, nil
	}
	if hasScheme(s) {
		return url.Parse(s)
	}
	return fileURL(s)
}

// hasScheme reports whether s starts with a URL scheme such as "http:" or
// "file:". Single-letter schemes are treated as Windows drive letters.
func hasScheme(s string) bool {
	i := strings.Index(s, ":")
	if i < 2 {
		return false
	}
	for j := 0; j < i; j++ {
		c := s[j]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// isURL reports whether s is an http or https URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
