package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/oasderef/dereferencer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Input limits.
	MaxInlineSize int64

	// Issue pagination.
	IssueLimit int
	MaxLimit   int

	// Remote access.
	AllowPrivateIPs bool
	ResolveHTTPRefs bool

	// Resolution limits.
	MaxRefDepth int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDEREF_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:   envInt64("OASDEREF_MAX_INLINE_SIZE", 10*1024*1024),
		IssueLimit:      envInt("OASDEREF_ISSUE_LIMIT", 100),
		MaxLimit:        envInt("OASDEREF_MAX_LIMIT", 1000),
		AllowPrivateIPs: envBool("OASDEREF_ALLOW_PRIVATE_IPS", false),
		ResolveHTTPRefs: envBool("OASDEREF_RESOLVE_HTTP_REFS", false),
		MaxRefDepth:     envInt("OASDEREF_MAX_REF_DEPTH", dereferencer.MaxRefDepth),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}
