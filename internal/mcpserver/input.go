package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasderef/dereferencer"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// count returns how many input modes are set.
func (s specInput) count() int {
	n := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			n++
		}
	}
	return n
}

// options translates the input into dereferencer source options.
func (s specInput) options() ([]dereferencer.Option, error) {
	if n := s.count(); n != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", n)
	}

	switch {
	case s.File != "":
		return []dereferencer.Option{dereferencer.WithFilePath(s.File)}, nil
	case s.URL != "":
		return []dereferencer.Option{dereferencer.WithFilePath(s.URL)}, nil
	default:
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASDEREF_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return []dereferencer.Option{dereferencer.WithBytes([]byte(s.Content))}, nil
	}
}
