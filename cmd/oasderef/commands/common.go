// Package commands provides CLI command handlers for oasderef.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasderef"
	"github.com/erraggy/oasderef/internal/cliutil"
	"github.com/erraggy/oasderef/jsonnode"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// FormatFromPath picks the output format from a file extension.
// Anything other than .yaml or .yml is JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Existing output is only worth a warning.
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// MarshalDocument serializes a tree in the given format. JSON output is
// indented with two spaces and ends with a newline.
func MarshalDocument(doc *jsonnode.Node, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := doc.MarshalIndentJSON("", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return doc.EncodeYAML()
	default:
		return nil, fmt.Errorf("invalid format for document output: %s", format)
	}
}

// FormatSpecPath returns a display-friendly path for the input document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputHeader writes the common banner to stderr.
func OutputHeader(title, specPath string) {
	cliutil.Banner(stderr, title)
	cliutil.Writef(stderr, "oasderef version: %s\n", oasderef.Version())
	cliutil.Writef(stderr, "Source: %s\n", FormatSpecPath(specPath))
}

// FormatBytes renders a byte count for humans.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
