package dereferencer

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/erraggy/oasderef/jsonnode"
	"github.com/erraggy/oasderef/oaserrors"
)

// Dereferencer resolves $ref directives and merges referenced content into
// a single self-contained document.
//
// A Dereferencer holds configuration only. Every call runs an independent
// pass with its own cache, alias table and global flags, so one value may
// be shared between goroutines.
type Dereferencer struct {
	// LocalBaseDir is the directory that scheme-less references such as
	// "common.json#/definitions/Pet" are read from. Default: "."
	LocalBaseDir string
	// DereferenceLocalRefs inlines single "#/..." references in the root
	// document. When false they are left in place. Default: false
	DereferenceLocalRefs bool
	// GlobalInline seeds the $refGlobalInline flag for each pass. A document
	// may still switch it with the $refGlobalInline keyword.
	GlobalInline bool
	// IncludedRefPostfix seeds the $refGlobalIncludedRefPostfix flag.
	IncludedRefPostfix bool
	// Lenient reports load failures and missing fragments as issues and
	// keeps the $ref in place instead of failing the whole pass.
	Lenient bool
	// ResolveHTTPRefs enables loading http and https references.
	// This is disabled by default for security (SSRF protection).
	ResolveHTTPRefs bool
	// InsecureSkipVerify disables TLS certificate verification for HTTPS loads.
	// Ignored when HTTPClient is set.
	InsecureSkipVerify bool
	// HTTPClient is the client used for http and https loads.
	// If nil, a client with a 30 second timeout is used.
	HTTPClient *http.Client
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to "oasderef/<version>" if not set.
	UserAgent string
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger

	// MaxRefDepth is the maximum depth for nested $ref resolution.
	// If 0, uses MaxRefDepth (100).
	MaxRefDepth int
	// MaxCachedDocuments is the maximum number of documents loaded in one pass.
	// If 0, uses MaxCachedDocuments (100).
	MaxCachedDocuments int
	// MaxFileSize is the maximum size in bytes of any loaded document.
	// If 0, uses MaxFileSize (10MB).
	MaxFileSize int64
}

// New creates a new Dereferencer instance with default settings
func New() *Dereferencer {
	return &Dereferencer{
		LocalBaseDir: ".",
	}
}

// log returns the configured logger or a NopLogger if none is set.
func (d *Dereferencer) log() Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return NopLogger{}
}

func (d *Dereferencer) maxRefDepth() int {
	if d.MaxRefDepth > 0 {
		return d.MaxRefDepth
	}
	return MaxRefDepth
}

func (d *Dereferencer) maxCachedDocuments() int {
	if d.MaxCachedDocuments > 0 {
		return d.MaxCachedDocuments
	}
	return MaxCachedDocuments
}

func (d *Dereferencer) maxFileSize() int64 {
	if d.MaxFileSize > 0 {
		return d.MaxFileSize
	}
	return MaxFileSize
}

func (d *Dereferencer) localBaseDir() string {
	if d.LocalBaseDir == "" {
		return "."
	}
	return d.LocalBaseDir
}

// DereferenceFile loads the document at path (a file path or an http(s)
// URL) and resolves it. References inside it resolve against its location.
func (d *Dereferencer) DereferenceFile(path string) (*DereferenceResult, error) {
	start := time.Now()

	var (
		data []byte
		loc  *url.URL
		err  error
	)
	if isURL(path) {
		loc, err = url.Parse(path)
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "path", Value: path, Message: "invalid URL", Cause: err}
		}
		data, err = d.fetchURL(path)
		if err != nil {
			return nil, wrapLoadError(err, path, oaserrors.RefTypeHTTP, path)
		}
	} else {
		loc, err = fileURL(path)
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "path", Value: path, Message: "cannot resolve path", Cause: err}
		}
		data, err = d.readFile(path)
		if err != nil {
			return nil, wrapLoadError(err, path, oaserrors.RefTypeFile, loc.String())
		}
	}

	node, err := jsonnode.Parse(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to parse document", Cause: err}
	}

	result, err := d.run(node, loc, start)
	if result != nil {
		result.SourcePath = path
		result.SourceSize = int64(len(data))
	}
	return result, err
}

// DereferenceBytes parses data as JSON or YAML and resolves it. base is
// the location used for resolving scheme-qualified relative references
// and may be empty.
func (d *Dereferencer) DereferenceBytes(data []byte, base string) (*DereferenceResult, error) {
	start := time.Now()

	loc, err := parseLocation(base)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "base", Value: base, Message: "invalid base location", Cause: err}
	}
	if int64(len(data)) > d.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        d.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}

	node, err := jsonnode.Parse(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: sourceName(base), Message: "failed to parse document", Cause: err}
	}

	result, err := d.run(node, loc, start)
	if result != nil {
		result.SourcePath = sourceName(base)
		result.SourceSize = int64(len(data))
	}
	return result, err
}

// DereferenceReader reads the whole of r and resolves it like DereferenceBytes.
func (d *Dereferencer) DereferenceReader(r io.Reader, base string) (*DereferenceResult, error) {
	data, err := readLimited(r, d.maxFileSize(), sourceName(base))
	if err != nil {
		return nil, fmt.Errorf("dereferencer: failed to read input: %w", err)
	}
	return d.DereferenceBytes(data, base)
}

// Dereference resolves an already parsed tree. The tree becomes the root
// document of the pass and is modified in place.
func (d *Dereferencer) Dereference(node *jsonnode.Node, base string) (*DereferenceResult, error) {
	if node == nil {
		return nil, &oaserrors.ConfigError{Option: "node", Message: "document cannot be nil"}
	}
	loc, err := parseLocation(base)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "base", Value: base, Message: "invalid base location", Cause: err}
	}
	result, err := d.run(node, loc, time.Now())
	if result != nil {
		result.SourcePath = sourceName(base)
	}
	return result, err
}

// run executes one pass over root.
func (d *Dereferencer) run(node *jsonnode.Node, loc *url.URL, start time.Time) (*DereferenceResult, error) {
	root := newDocument(node, canonicalize(loc), true)
	p := newPass(d, root)
	defer p.release()

	resolved, err := p.resolve(node, root)
	if err != nil {
		p.log.Error("dereference failed", "error", err)
		return nil, err
	}

	result := &DereferenceResult{
		Document:        resolved,
		Issues:          p.issues,
		LoadedDocuments: append([]string(nil), p.loader.order...),
		PromotedCount:   p.promoted,
		LoadTime:        time.Since(start),
	}
	p.log.Info("dereference complete",
		"documents", len(result.LoadedDocuments),
		"promoted", result.PromotedCount,
		"issues", len(result.Issues),
		"elapsed", result.LoadTime,
	)
	return result, nil
}

// sourceName is the SourcePath reported for in-memory input. Without a
// base location it is "DereferenceBytes.json".
func sourceName(base string) string {
	if base == "" {
		return "DereferenceBytes.json"
	}
	return base
}
