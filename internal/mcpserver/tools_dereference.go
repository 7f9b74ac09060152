package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasderef/dereferencer"
	"github.com/erraggy/oasderef/internal/fileutil"
	"github.com/erraggy/oasderef/internal/issues"
	"github.com/erraggy/oasderef/internal/pathutil"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type dereferenceInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The document to dereference"`
	BaseDir    string    `json:"base_dir,omitempty"    jsonschema:"Directory for scheme-less references. Defaults to the directory of a file input, else the working directory"`
	Base       string    `json:"base,omitempty"        jsonschema:"Base location for inline content, used to resolve scheme-relative references such as file:common.json"`
	DerefLocal bool      `json:"deref_local,omitempty" jsonschema:"Inline local #/ references in the root document instead of keeping them"`
	Inline     bool      `json:"inline,omitempty"      jsonschema:"Inline every reference instead of copying imported local references into the root"`
	Postfix    bool      `json:"postfix,omitempty"     jsonschema:"Append -<file stem> to the names of copied fragments"`
	Lenient    bool      `json:"lenient,omitempty"     jsonschema:"Keep unresolvable references in place and report them as issues"`
	Format     string    `json:"format,omitempty"      jsonschema:"Output format: json (default) or yaml"`
	Output     string    `json:"output,omitempty"      jsonschema:"File path to write the document to. If omitted the document is returned inline"`
	Debug      bool      `json:"debug,omitempty"       jsonschema:"Include debug-level issues such as cache hits and kept local references"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip the first N issues (for pagination)"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum number of issues to return (default 100)"`
}

type issueOutput struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Document string `json:"document,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Message  string `json:"message"`
}

type dereferenceOutput struct {
	Format          string        `json:"format"`
	Document        string        `json:"document,omitempty"`
	WrittenTo       string        `json:"written_to,omitempty"`
	LoadedDocuments []string      `json:"loaded_documents,omitempty"`
	Promoted        int           `json:"promoted"`
	ErrorCount      int           `json:"error_count"`
	WarningCount    int           `json:"warning_count"`
	IssueCount      int           `json:"issue_count"`
	Returned        int           `json:"returned"`
	Issues          []issueOutput `json:"issues,omitempty"`
}

func handleDereference(_ context.Context, _ *mcp.CallToolRequest, input dereferenceInput) (*mcp.CallToolResult, dereferenceOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", format)), dereferenceOutput{}, nil
	}

	opts, err := buildDereferenceOptions(input)
	if err != nil {
		return errResult(err), dereferenceOutput{}, nil
	}

	result, err := dereferencer.DereferenceWithOptions(opts...)
	if err != nil {
		return errResult(err), dereferenceOutput{}, nil
	}

	var data []byte
	if format == "yaml" {
		data, err = result.EncodeYAML()
	} else {
		data, err = result.MarshalIndentJSON("", "  ")
	}
	if err != nil {
		return errResult(err), dereferenceOutput{}, nil
	}

	output := dereferenceOutput{
		Format:          format,
		LoadedDocuments: result.LoadedDocuments,
		Promoted:        result.PromotedCount,
		ErrorCount:      result.ErrorCount(),
		WarningCount:    result.WarningCount(),
	}

	if input.Output != "" {
		target, err := pathutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), dereferenceOutput{}, nil
		}
		if err := os.WriteFile(target, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), dereferenceOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	minSeverity := severity.SeverityInfo
	if input.Debug {
		minSeverity = severity.SeverityDebug
	}
	shown := issues.Filter(result.Issues, minSeverity)
	output.IssueCount = len(shown)

	page := paginate(shown, input.Offset, input.Limit)
	output.Issues = makeSlice[issueOutput](len(page))
	for _, i := range page {
		output.Issues = append(output.Issues, issueOutput{
			Severity: i.Severity.String(),
			Path:     i.Path,
			Document: i.Document,
			Keyword:  i.Keyword,
			Ref:      i.Ref,
			Message:  sanitizeMessage(i.Message),
		})
	}
	output.Returned = len(output.Issues)

	return nil, output, nil
}

// buildDereferenceOptions translates the MCP input into dereferencer options.
func buildDereferenceOptions(input dereferenceInput) ([]dereferencer.Option, error) {
	opts, err := input.Spec.options()
	if err != nil {
		return nil, err
	}

	baseDir := input.BaseDir
	if baseDir == "" {
		baseDir = "."
		if input.Spec.File != "" {
			baseDir = filepath.Dir(input.Spec.File)
		}
	}

	opts = append(opts,
		dereferencer.WithLocalBaseDir(baseDir),
		dereferencer.WithDereferenceLocalRefs(input.DerefLocal),
		dereferencer.WithGlobalInline(input.Inline),
		dereferencer.WithIncludedRefPostfix(input.Postfix),
		dereferencer.WithLenient(input.Lenient),
		dereferencer.WithResolveHTTPRefs(cfg.ResolveHTTPRefs),
		dereferencer.WithMaxRefDepth(cfg.MaxRefDepth),
	)
	if input.Spec.Content != "" && input.Base != "" {
		opts = append(opts, dereferencer.WithBaseLocation(input.Base))
	}
	if needsSafeClient(input.Spec) {
		opts = append(opts, dereferencer.WithHTTPClient(newSafeHTTPClient()))
	}
	return opts, nil
}

// needsSafeClient reports whether any HTTP request can be made on behalf of
// the caller while private networks are off limits. That covers URL inputs
// and, when enabled, http references inside any input.
func needsSafeClient(spec specInput) bool {
	if cfg.AllowPrivateIPs {
		return false
	}
	return spec.URL != "" || cfg.ResolveHTTPRefs
}
