package dereferencer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oasderef"
	"github.com/erraggy/oasderef/jsonnode"
	"github.com/erraggy/oasderef/oaserrors"
)

const (
	// MaxRefDepth is the maximum depth allowed for nested $ref resolution
	// This prevents stack overflow from deeply nested (but non-circular) references
	MaxRefDepth = 100

	// MaxCachedDocuments is the maximum number of external documents to cache
	// This prevents memory exhaustion from documents with many external references
	MaxCachedDocuments = 100

	// MaxFileSize is the maximum size (in bytes) allowed for loaded documents
	// Set to 10MB which should be sufficient for most documents
	MaxFileSize = 10 * 1024 * 1024 // 10MB

	// defaultHTTPTimeout bounds a single remote load. There are no retries.
	defaultHTTPTimeout = 30 * time.Second
)

// loader loads documents and memoizes them by canonical location for the
// duration of one pass.
type loader struct {
	d         *Dereferencer
	log       Logger
	documents map[string]*document
	// order lists canonical keys of non-root documents in load order
	order []string
}

func newLoader(d *Dereferencer, log Logger) *loader {
	return &loader{
		d:         d,
		log:       log,
		documents: make(map[string]*document),
	}
}

// register records a document under its canonical location.
func (l *loader) register(doc *document) {
	if doc.location == nil {
		return
	}
	key := canonicalKey(doc.location)
	if _, ok := l.documents[key]; ok {
		return
	}
	l.documents[key] = doc
	if !doc.isRoot {
		l.order = append(l.order, key)
	}
}

// load returns the document at loc, fetching and parsing it on first use.
// The second result reports whether the document came from the cache.
func (l *loader) load(loc *url.URL, ref string) (*document, bool, error) {
	canon := canonicalize(loc)
	key := canon.String()
	if doc, ok := l.documents[key]; ok {
		return doc, true, nil
	}

	limit := l.d.maxCachedDocuments()
	if len(l.order) >= limit {
		return nil, false, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(limit),
			Actual:       int64(len(l.order) + 1),
			Message:      "too many documents referenced from " + ref,
		}
	}

	start := time.Now()
	data, err := l.fetch(canon, ref)
	if err != nil {
		return nil, false, err
	}
	node, err := jsonnode.Parse(data)
	if err != nil {
		return nil, false, &oaserrors.ParseError{Path: key, Message: "failed to parse referenced document", Cause: err}
	}

	doc := newDocument(node, canon, false)
	l.register(doc)
	l.log.Debug("loaded document",
		"location", key,
		"bytes", len(data),
		"elapsed", time.Since(start),
	)
	return doc, false, nil
}

// fetch reads the raw bytes at loc. Only file, http, and https locations
// are supported.
func (l *loader) fetch(loc *url.URL, ref string) ([]byte, error) {
	switch loc.Scheme {
	case "file":
		data, err := l.d.readFile(filepath.FromSlash(loc.Path))
		if err != nil {
			return nil, wrapLoadError(err, ref, oaserrors.RefTypeFile, loc.String())
		}
		return data, nil
	case "http", "https":
		if !l.d.ResolveHTTPRefs {
			return nil, &oaserrors.ReferenceError{
				Ref:      ref,
				RefType:  oaserrors.RefTypeHTTP,
				Location: loc.String(),
				Message:  "HTTP references are disabled (enable ResolveHTTPRefs)",
			}
		}
		data, err := l.d.fetchURL(loc.String())
		if err != nil {
			return nil, wrapLoadError(err, ref, oaserrors.RefTypeHTTP, loc.String())
		}
		return data, nil
	default:
		return nil, &oaserrors.ReferenceError{
			Ref:      ref,
			RefType:  oaserrors.RefTypeFile,
			Location: loc.String(),
			Message:  fmt.Sprintf("unsupported scheme %q", loc.Scheme),
		}
	}
}

// wrapLoadError keeps resource limit errors as they are and wraps
// everything else in a ReferenceError.
func wrapLoadError(err error, ref, refType, location string) error {
	var limitErr *oaserrors.ResourceLimitError
	if errors.As(err, &limitErr) {
		return err
	}
	return &oaserrors.ReferenceError{
		Ref:      ref,
		RefType:  refType,
		Location: location,
		Message:  "failed to load document",
		Cause:    err,
	}
}

// readFile reads a local file, refusing files larger than MaxFileSize.
func (d *Dereferencer) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("dereferencer: %s is a directory", path)
	}
	limit := d.maxFileSize()
	if info.Size() > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      path,
		}
	}
	f, err := os.Open(path) //nolint:gosec // G304 - path comes from a $ref or the caller
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, limit, path)
}

// readLimited reads at most limit bytes and fails if more are available.
func readLimited(r io.Reader, limit int64, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      source,
		}
	}
	return data, nil
}

// httpClient returns the configured client or builds a default one with a
// 30 second timeout.
func (d *Dereferencer) httpClient() *http.Client {
	if d.HTTPClient != nil {
		if d.InsecureSkipVerify {
			d.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
		}
		return d.HTTPClient
	}
	if d.InsecureSkipVerify {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
				MinVersion:         tls.VersionTLS12,
			},
		}
		return &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		}
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// fetchURL fetches content from an http or https URL.
func (d *Dereferencer) fetchURL(urlStr string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("dereferencer: failed to create request: %w", err)
	}

	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = oasderef.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := d.httpClient().Do(req) //nolint:gosec // URL comes from a $ref the caller chose to resolve
	if err != nil {
		return nil, fmt.Errorf("dereferencer: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dereferencer: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := readLimited(resp.Body, d.maxFileSize(), urlStr)
	if err != nil {
		return nil, fmt.Errorf("dereferencer: failed to read response body: %w", err)
	}
	return data, nil
}
