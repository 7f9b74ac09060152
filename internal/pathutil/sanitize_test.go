package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	t.Run("existing regular file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "api.deref.json")
		require.NoError(t, os.WriteFile(target, []byte("{}"), 0o600))

		got, err := SanitizeOutputPath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("new file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.yaml")

		got, err := SanitizeOutputPath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("relative path made absolute", func(t *testing.T) {
		got, err := SanitizeOutputPath("out.json")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		assert.Equal(t, "out.json", filepath.Base(got))
	})

	t.Run("dot segments cleaned", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		got, err := SanitizeOutputPath(dir + "/sub/../out.json")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out.json"), got)
	})

	t.Run("directory refused", func(t *testing.T) {
		_, err := SanitizeOutputPath(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("symlinked file refused", func(t *testing.T) {
		dir := t.TempDir()
		orig := filepath.Join(dir, "orig.json")
		link := filepath.Join(dir, "link.json")
		require.NoError(t, os.WriteFile(orig, []byte("{}"), 0o600))
		require.NoError(t, os.Symlink(orig, link))

		_, err := SanitizeOutputPath(link)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})

	t.Run("symlinked directory refused", func(t *testing.T) {
		dir := t.TempDir()
		orig := filepath.Join(dir, "realdir")
		link := filepath.Join(dir, "linkdir")
		require.NoError(t, os.Mkdir(orig, 0o755))
		require.NoError(t, os.Symlink(orig, link))

		_, err := SanitizeOutputPath(link)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}
