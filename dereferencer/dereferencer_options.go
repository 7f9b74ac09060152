package dereferencer

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oasderef"
	"github.com/erraggy/oasderef/internal/options"
	"github.com/erraggy/oasderef/jsonnode"
)

// Option is a function that configures a dereference operation
type Option func(*derefConfig) error

// derefConfig holds configuration for a dereference operation
type derefConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	node     *jsonnode.Node

	baseLocation string

	// Configuration options
	localBaseDir         string
	dereferenceLocalRefs bool
	globalInline         bool
	includedRefPostfix   bool
	lenient              bool
	resolveHTTPRefs      bool
	insecureSkipVerify   bool
	userAgent            string
	httpClient           *http.Client
	logger               Logger

	// Resource limits (0 means use default)
	maxRefDepth        int
	maxCachedDocuments int
	maxFileSize        int64
}

// DereferenceWithOptions resolves a document using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := dereferencer.DereferenceWithOptions(
//	    dereferencer.WithFilePath("api.json"),
//	    dereferencer.WithLocalBaseDir("src"),
//	    dereferencer.WithIncludedRefPostfix(true),
//	)
func DereferenceWithOptions(opts ...Option) (*DereferenceResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("dereferencer: invalid options: %w", err)
	}

	d := &Dereferencer{
		LocalBaseDir:         cfg.localBaseDir,
		DereferenceLocalRefs: cfg.dereferenceLocalRefs,
		GlobalInline:         cfg.globalInline,
		IncludedRefPostfix:   cfg.includedRefPostfix,
		Lenient:              cfg.lenient,
		ResolveHTTPRefs:      cfg.resolveHTTPRefs,
		InsecureSkipVerify:   cfg.insecureSkipVerify,
		HTTPClient:           cfg.httpClient,
		UserAgent:            cfg.userAgent,
		Logger:               cfg.logger,
		MaxRefDepth:          cfg.maxRefDepth,
		MaxCachedDocuments:   cfg.maxCachedDocuments,
		MaxFileSize:          cfg.maxFileSize,
	}

	switch {
	case cfg.filePath != nil:
		return d.DereferenceFile(*cfg.filePath)
	case cfg.reader != nil:
		return d.DereferenceReader(cfg.reader, cfg.baseLocation)
	case cfg.bytes != nil:
		return d.DereferenceBytes(cfg.bytes, cfg.baseLocation)
	case cfg.node != nil:
		return d.Dereference(cfg.node, cfg.baseLocation)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("dereferencer: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*derefConfig, error) {
	cfg := &derefConfig{
		localBaseDir: ".",
		userAgent:    oasderef.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"dereferencer: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithNode)",
		"dereferencer: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.node != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or http(s) URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *derefConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *derefConfig) error {
		if r == nil {
			return fmt.Errorf("dereferencer: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *derefConfig) error {
		if data == nil {
			return fmt.Errorf("dereferencer: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithNode specifies an already parsed tree as the input source.
// The tree is modified in place.
func WithNode(node *jsonnode.Node) Option {
	return func(cfg *derefConfig) error {
		if node == nil {
			return fmt.Errorf("dereferencer: node cannot be nil")
		}
		cfg.node = node
		return nil
	}
}

// WithBaseLocation sets the location that references in reader, bytes, or
// node input resolve against. It may be a URL or a file path.
// Ignored for WithFilePath, which uses the file's own location.
func WithBaseLocation(base string) Option {
	return func(cfg *derefConfig) error {
		cfg.baseLocation = base
		return nil
	}
}

// WithLocalBaseDir sets the directory scheme-less references are read from
// Default: "."
func WithLocalBaseDir(dir string) Option {
	return func(cfg *derefConfig) error {
		if dir == "" {
			return fmt.Errorf("dereferencer: local base dir cannot be empty")
		}
		cfg.localBaseDir = dir
		return nil
	}
}

// WithDereferenceLocalRefs inlines single "#/..." references in the root
// document instead of leaving them in place
// Default: false
func WithDereferenceLocalRefs(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.dereferenceLocalRefs = enabled
		return nil
	}
}

// WithGlobalInline starts the pass with $refGlobalInline set
// Default: false
func WithGlobalInline(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.globalInline = enabled
		return nil
	}
}

// WithIncludedRefPostfix starts the pass with $refGlobalIncludedRefPostfix set
// Default: false
func WithIncludedRefPostfix(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.includedRefPostfix = enabled
		return nil
	}
}

// WithLenient reports load failures and missing fragments as issues instead
// of failing, leaving the $ref in place
// Default: false
func WithLenient(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.lenient = enabled
		return nil
	}
}

// WithResolveHTTPRefs enables loading of http and https references
// This is disabled by default for security (SSRF protection)
func WithResolveHTTPRefs(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.resolveHTTPRefs = enabled
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for HTTPS refs
// Use with caution - only enable for testing or internal servers with self-signed certs
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *derefConfig) error {
		cfg.insecureSkipVerify = enabled
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// When set, the client is used as-is and InsecureSkipVerify is ignored.
// If the client is nil, this option has no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *derefConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasderef/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *derefConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, no logging is performed.
//
// Example:
//
//	logger := dereferencer.NewSlogAdapter(slog.Default())
//	result, err := dereferencer.DereferenceWithOptions(
//	    dereferencer.WithFilePath("api.json"),
//	    dereferencer.WithLogger(logger),
//	)
func WithLogger(l Logger) Option {
	return func(cfg *derefConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum depth for resolving nested $ref pointers.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *derefConfig) error {
		if err := options.ValidateNonNegative("maxRefDepth", int64(depth)); err != nil {
			return err
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxCachedDocuments sets the maximum number of documents loaded in one pass.
// A value of 0 means use the default (100).
// Returns an error if count is negative.
func WithMaxCachedDocuments(count int) Option {
	return func(cfg *derefConfig) error {
		if err := options.ValidateNonNegative("maxCachedDocuments", int64(count)); err != nil {
			return err
		}
		cfg.maxCachedDocuments = count
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes of any loaded document.
// A value of 0 means use the default (10MB).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *derefConfig) error {
		if err := options.ValidateNonNegative("maxFileSize", size); err != nil {
			return err
		}
		cfg.maxFileSize = size
		return nil
	}
}
