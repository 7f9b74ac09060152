package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath returns the cleaned absolute form of path for writing a
// dereferenced document. Existing symlinks and directories are refused so a
// write can only ever replace a regular file or create a new one.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	if os.IsNotExist(err) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	switch mode := info.Mode(); {
	case mode&os.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	case mode.IsDir():
		return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
	}
	return abs, nil
}
