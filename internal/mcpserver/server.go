// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasderef dereferencer as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasderef"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasderef MCP server: resolves $ref directives in JSON and YAML documents and merges the referenced content into one self-contained document.

Configuration: defaults come from OASDEREF_* environment variables set in your MCP client config.

Key settings:
- OASDEREF_MAX_INLINE_SIZE (default: 10485760) maximum size of inline content in bytes
- OASDEREF_ISSUE_LIMIT (default: 100) default number of issues returned per call
- OASDEREF_MAX_LIMIT (default: 1000) upper bound for the limit argument
- OASDEREF_ALLOW_PRIVATE_IPS (default: false) allow URL inputs and references to reach private networks
- OASDEREF_RESOLVE_HTTP_REFS (default: false) allow http and https references inside documents
- OASDEREF_MAX_REF_DEPTH (default: 100) maximum nesting of references`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasderef", Version: oasderef.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dereference",
		Description: "Resolve $ref directives in a JSON or YAML document and merge referenced content into a single document. Supports the $ref merge keywords ($refDeep, $refIncludes, $refExcludes, $refArrayProcessing, $refLocalize, $refAliases). Local #/ references inside imported documents are copied into the result. Returns the document plus issues (warnings and recoverable errors) with JSON Pointer locations. Use lenient=true to keep unresolvable references instead of failing. Use output to write the document to a file instead of returning it inline.",
	}, handleDereference)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.IssueLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.IssueLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return sanitizeMessage(err.Error())
}

// sanitizeMessage applies the same path stripping to plain text.
func sanitizeMessage(msg string) string {
	return pathPattern.ReplaceAllString(msg, "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
