// Package fileutil holds file permission constants shared by the CLI and
// the MCP server.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for dereferenced output files,
// which may contain sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
