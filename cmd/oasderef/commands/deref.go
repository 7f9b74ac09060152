package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasderef/dereferencer"
	"github.com/erraggy/oasderef/internal/cliutil"
	"github.com/erraggy/oasderef/internal/fileutil"
	"github.com/erraggy/oasderef/internal/issues"
	"github.com/erraggy/oasderef/internal/pathutil"
	"github.com/erraggy/oasderef/internal/severity"
	"github.com/mattn/go-isatty"
)

// DerefFlags contains flags for the deref command
type DerefFlags struct {
	Output          string
	Format          string
	BaseDir         string
	Base            string
	DerefLocal      bool
	Inline          bool
	Postfix         bool
	Lenient         bool
	ResolveHTTPRefs bool
	Insecure        bool
	MaxRefDepth     int
	Quiet           bool
	Debug           bool
}

// SetupDerefFlags creates and configures a FlagSet for the deref command.
// Returns the FlagSet and a DerefFlags struct with bound flag variables.
func SetupDerefFlags() (*flag.FlagSet, *DerefFlags) {
	fs := flag.NewFlagSet("deref", flag.ContinueOnError)
	flags := &DerefFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from output extension, else json)")
	fs.StringVar(&flags.BaseDir, "base-dir", "", "directory for scheme-less references (default: directory of the input file, or .)")
	fs.StringVar(&flags.Base, "base", "", "base location for stdin input, used to resolve scheme-relative references")
	fs.BoolVar(&flags.DerefLocal, "deref-local", false, "inline local #/ references in the root document")
	fs.BoolVar(&flags.Inline, "inline", false, "inline every reference instead of promoting local ones ($refGlobalInline)")
	fs.BoolVar(&flags.Postfix, "postfix", false, "append -<file stem> to promoted names ($refGlobalIncludedRefPostfix)")
	fs.BoolVar(&flags.Lenient, "lenient", false, "keep unresolvable references in place and report them instead of failing")
	fs.BoolVar(&flags.ResolveHTTPRefs, "resolve-http-refs", false, "allow loading http and https references")
	fs.BoolVar(&flags.Insecure, "insecure", false, "skip TLS certificate verification for https references")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum nesting of references (default: 100)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Debug, "debug", false, "log resolution steps to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasderef deref [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Resolve $ref directives and merge referenced content into one document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nDirectives:\n")
		w := fs.Output()
		cliutil.Writef(w, "  $ref                         \"file.json#/pointer\", \"#/pointer\", \"@alias#/pointer\" or a list of them\n")
		cliutil.Writef(w, "  $refIgnore                   leave this $ref untouched\n")
		cliutil.Writef(w, "  $refInline                   inline a local #/ reference even without --deref-local\n")
		cliutil.Writef(w, "  $refDeep                     merge nested objects instead of keeping the local ones\n")
		cliutil.Writef(w, "  $refIncludes                 only copy the listed attributes\n")
		cliutil.Writef(w, "  $refExcludes                 skip the listed attributes\n")
		cliutil.Writef(w, "  $refArrayProcessing          per-attribute array merge settings:\n")
		cliutil.Writef(w, "    $refArrayRemovePartialMatch  drop incoming items matching any listed pattern\n")
		cliutil.Writef(w, "    $refSetMerge                 skip incoming items already present\n")
		cliutil.Writef(w, "  $refLocalize                 copy the target into this document and point at the copy\n")
		cliutil.Writef(w, "  $refAliases                  declare @alias URL prefixes for this document\n")
		cliutil.Writef(w, "  $refGlobalInline             inline every reference from here on (same as --inline)\n")
		cliutil.Writef(w, "  $refGlobalIncludedRefPostfix append -<file stem> to copied names (same as --postfix)\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasderef deref api.json\n")
		cliutil.Writef(fs.Output(), "  oasderef deref -o bundled.yaml api.json\n")
		cliutil.Writef(fs.Output(), "  oasderef deref --base-dir specs --postfix api.json\n")
		cliutil.Writef(fs.Output(), "  cat api.json | oasderef deref -q --base file:///specs/api.json - > out.json\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document dereferenced (issues may still be reported)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to load, parse, or resolve the document\n")
	}

	return fs, flags
}

// HandleDeref executes the deref command
func HandleDeref(args []string) error {
	fs, flags := SetupDerefFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("deref command accepts one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)
	if specPath == "" {
		if !stdinIsPiped() {
			fs.Usage()
			return fmt.Errorf("deref command requires a file path, URL, or '-' for stdin")
		}
		specPath = StdinFilePath
	}

	format := flags.Format
	if format == "" {
		format = FormatFromPath(flags.Output)
	}
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}

	outputPath := ""
	if flags.Output != "" {
		var inputs []string
		if specPath != StdinFilePath && !isRemote(specPath) {
			inputs = append(inputs, specPath)
		}
		if err := ValidateOutputPath(flags.Output, inputs); err != nil {
			return err
		}
		cleaned, err := pathutil.SanitizeOutputPath(flags.Output)
		if err != nil {
			return err
		}
		outputPath = cleaned
	}

	opts, err := buildDerefOptions(specPath, flags)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := dereferencer.DereferenceWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("dereferencing %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	// Diagnostics go to stderr to keep stdout clean for pipelining
	if !flags.Quiet {
		outputDerefReport(specPath, result, totalTime, flags.Debug)
	}

	data, err := MarshalDocument(result.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling dereferenced document: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(stderr, "\nOutput written to: %s\n", outputPath)
		}
		return nil
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("writing dereferenced document to stdout: %w", err)
	}
	return nil
}

// buildDerefOptions translates command flags into dereferencer options.
func buildDerefOptions(specPath string, flags *DerefFlags) ([]dereferencer.Option, error) {
	if flags.MaxRefDepth < 0 {
		return nil, fmt.Errorf("invalid max-ref-depth %d: must not be negative", flags.MaxRefDepth)
	}

	baseDir := flags.BaseDir
	if baseDir == "" {
		baseDir = "."
		if specPath != StdinFilePath && !isRemote(specPath) {
			baseDir = filepath.Dir(specPath)
		}
	}

	opts := []dereferencer.Option{
		dereferencer.WithLocalBaseDir(baseDir),
		dereferencer.WithDereferenceLocalRefs(flags.DerefLocal),
		dereferencer.WithGlobalInline(flags.Inline),
		dereferencer.WithIncludedRefPostfix(flags.Postfix),
		dereferencer.WithLenient(flags.Lenient),
		dereferencer.WithResolveHTTPRefs(flags.ResolveHTTPRefs),
		dereferencer.WithInsecureSkipVerify(flags.Insecure),
		dereferencer.WithMaxRefDepth(flags.MaxRefDepth),
	}

	if flags.Debug {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, dereferencer.WithLogger(dereferencer.NewSlogAdapter(slog.New(handler))))
	}

	if specPath == StdinFilePath {
		opts = append(opts, dereferencer.WithReader(stdin), dereferencer.WithBaseLocation(flags.Base))
	} else {
		opts = append(opts, dereferencer.WithFilePath(specPath))
	}
	return opts, nil
}

// outputDerefReport prints the summary and the issues of a pass.
func outputDerefReport(specPath string, result *dereferencer.DereferenceResult, totalTime time.Duration, debug bool) {
	OutputHeader("JSON Reference Dereferencer", specPath)
	cliutil.Writef(stderr, "Source Size: %s\n", FormatBytes(result.SourceSize))
	cliutil.Writef(stderr, "Documents Loaded: %d\n", len(result.LoadedDocuments))
	cliutil.Writef(stderr, "Fragments Promoted: %d\n", result.PromotedCount)
	cliutil.Writef(stderr, "Total Time: %v\n\n", totalTime)

	minSeverity := severity.SeverityInfo
	if debug {
		minSeverity = severity.SeverityDebug
	}
	shown := issues.Filter(result.Issues, minSeverity)
	if len(shown) > 0 {
		cliutil.Writef(stderr, "Issues (%d):\n", len(shown))
		for _, i := range shown {
			cliutil.Writef(stderr, "  %s\n", i.String())
		}
		cliutil.Writef(stderr, "\n")
	}

	errs, warns := result.ErrorCount(), result.WarningCount()
	switch {
	case errs > 0:
		cliutil.Writef(stderr, "⚠ Dereferenced with %d error(s) and %d warning(s)\n", errs, warns)
	case warns > 0:
		cliutil.Writef(stderr, "✓ Dereferenced with %d warning(s)\n", warns)
	default:
		cliutil.Writef(stderr, "✓ Dereferenced successfully\n")
	}
}

// stdinIsPiped reports whether stdin is a pipe or file rather than a terminal.
func stdinIsPiped() bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
