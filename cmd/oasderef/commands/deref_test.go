package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oasderef/jsonnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStreams swaps the package streams for buffers for the duration of a test.
func captureStreams(t *testing.T, in io.Reader) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	stdin, stdout, stderr = in, &out, &errOut
	t.Cleanup(func() {
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	})
	return &out, &errOut
}

func writeSpecs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"api.json":  `{"paths":{"/pets":{"$ref":"defs.json#/PetPath","summary":"local"}}}`,
		"defs.json": `{"PetPath":{"summary":"shared","get":{"operationId":"listPets"}}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestSetupDerefFlags(t *testing.T) {
	fs, flags := SetupDerefFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "", flags.Output)
		assert.Equal(t, "", flags.Format)
		assert.False(t, flags.Lenient)
		assert.False(t, flags.ResolveHTTPRefs)
		assert.Equal(t, 0, flags.MaxRefDepth)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "out.yaml", "--deref-local", "--postfix", "--lenient", "--max-ref-depth", "5", "-q", "api.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "out.yaml", flags.Output)
		assert.True(t, flags.DerefLocal)
		assert.True(t, flags.Postfix)
		assert.True(t, flags.Lenient)
		assert.Equal(t, 5, flags.MaxRefDepth)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "api.json", fs.Arg(0))
	})
}

func TestHandleDeref_Help(t *testing.T) {
	captureStreams(t, strings.NewReader(""))
	assert.NoError(t, HandleDeref([]string{"--help"}))
}

func TestDerefUsageListsDirectives(t *testing.T) {
	fs, _ := SetupDerefFlags()
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.Usage()

	usage := buf.String()
	for _, keyword := range []string{
		"$refIgnore", "$refInline", "$refDeep", "$refIncludes", "$refExcludes",
		"$refArrayProcessing", "$refArrayRemovePartialMatch", "$refSetMerge",
		"$refLocalize", "$refAliases", "$refGlobalInline", "$refGlobalIncludedRefPostfix",
	} {
		assert.Contains(t, usage, keyword)
	}
	assert.NotContains(t, usage, "prepend")
}

func TestHandleDeref_TooManyArgs(t *testing.T) {
	captureStreams(t, strings.NewReader(""))
	assert.Error(t, HandleDeref([]string{"a.json", "b.json"}))
}

func TestHandleDeref_InvalidFormat(t *testing.T) {
	dir := writeSpecs(t)
	captureStreams(t, strings.NewReader(""))
	err := HandleDeref([]string{"--format", "xml", filepath.Join(dir, "api.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestHandleDeref_Stdout(t *testing.T) {
	dir := writeSpecs(t)
	out, errOut := captureStreams(t, strings.NewReader(""))

	require.NoError(t, HandleDeref([]string{filepath.Join(dir, "api.json")}))

	doc, err := jsonnode.Parse(out.Bytes())
	require.NoError(t, err)
	want := jsonnode.MustParse(`{"paths":{"/pets":{"summary":"local","get":{"operationId":"listPets"}}}}`)
	assert.True(t, jsonnode.Equal(want, doc), "got %s", doc)

	assert.Contains(t, errOut.String(), "Documents Loaded: 1")
	assert.Contains(t, errOut.String(), "✓ Dereferenced successfully")
}

func TestHandleDeref_Stdin(t *testing.T) {
	dir := writeSpecs(t)
	out, errOut := captureStreams(t, strings.NewReader(`{"x":{"$ref":"defs.json#/PetPath/get"}}`))

	require.NoError(t, HandleDeref([]string{"-q", "--base-dir", dir, "-"}))

	assert.Empty(t, errOut.String())
	doc, err := jsonnode.Parse(out.Bytes())
	require.NoError(t, err)
	assert.True(t, jsonnode.Equal(jsonnode.MustParse(`{"x":{"operationId":"listPets"}}`), doc), "got %s", doc)
}

func TestHandleDeref_OutputFile(t *testing.T) {
	dir := writeSpecs(t)
	out, errOut := captureStreams(t, strings.NewReader(""))
	target := filepath.Join(dir, "bundled.yaml")

	require.NoError(t, HandleDeref([]string{"-o", target, filepath.Join(dir, "api.json")}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Output written to:")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "operationId: listPets")
}

func TestHandleDeref_RefusesToOverwriteInput(t *testing.T) {
	dir := writeSpecs(t)
	captureStreams(t, strings.NewReader(""))
	input := filepath.Join(dir, "api.json")

	err := HandleDeref([]string{"-o", input, input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overwrite input file")
}

func TestHandleDeref_Lenient(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"x":{"$ref":"missing.json#/A"}}`), 0o600))

	t.Run("strict fails", func(t *testing.T) {
		captureStreams(t, strings.NewReader(""))
		err := HandleDeref([]string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.json")
	})

	t.Run("lenient reports", func(t *testing.T) {
		out, errOut := captureStreams(t, strings.NewReader(""))
		require.NoError(t, HandleDeref([]string{"--lenient", input}))
		assert.Contains(t, out.String(), `"$ref": "missing.json#/A"`)
		assert.Contains(t, errOut.String(), "1 error(s)")
	})
}

func TestHandleDeref_NegativeDepth(t *testing.T) {
	dir := writeSpecs(t)
	captureStreams(t, strings.NewReader(""))
	err := HandleDeref([]string{"--max-ref-depth", "-1", filepath.Join(dir, "api.json")})
	assert.Error(t, err)
}
