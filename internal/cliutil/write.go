// Package cliutil provides output helpers shared by the oasderef commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// failures receives write errors that Writef cannot return.
var failures io.Writer = os.Stderr

// Writef writes formatted output to w. CLI output is best effort, so a failed
// write is reported on stderr instead of being returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(failures, "write error: %v\n", err)
	}
}

// Banner writes title underlined with "=" followed by a blank line.
func Banner(w io.Writer, title string) {
	Writef(w, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))))
}
