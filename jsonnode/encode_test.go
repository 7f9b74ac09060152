package jsonnode

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"string", `"hello"`, "hello"},
		{"int", `42`, int64(42)},
		{"negative int", `-7`, int64(-7)},
		{"float", `1.5`, 1.5},
		{"exponent", `1e3`, 1000.0},
		{"true", `true`, true},
		{"null", `null`, nil},
		{"quoted number stays string", `"42"`, "42"},
		{"huge int falls back to float", `123456789012345678901234567890`, 1.2345678901234568e+29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, Scalar, n.Kind())
			assert.Equal(t, tt.want, n.Value())
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse([]byte(`{"a": [1, 2}`))
	assert.Error(t, err)
}

func TestParseJSONEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped solidus", `{"url":"http:\/\/example.com\/a"}`, "http://example.com/a"},
		{"surrogate pair", `{"url":"\ud83d\ude00"}`, "\U0001F600"},
		{"upper-case surrogate pair", `{"url":"\uD83D\uDE00"}`, "\U0001F600"},
		{"control escapes", `{"url":"a\tb\nc\u0041"}`, "a\tb\ncA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			got, ok := n.At("/url")
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Value())
		})
	}
}

func TestParseJSONKeepsOrderAndNumbers(t *testing.T) {
	n, err := Parse([]byte(` [ {"z":1,"a":2.5,"m":null,"b":[true,"x"]}, 123456789012345678901234567890 ] `))
	require.NoError(t, err)

	first, ok := n.Item(0)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m", "b"}, first.Keys())

	z, _ := first.Get("z")
	assert.Equal(t, int64(1), z.Value())
	a, _ := first.Get("a")
	assert.Equal(t, 2.5, a.Value())
	m, _ := first.Get("m")
	assert.True(t, m.IsNull())

	huge, ok := n.Item(1)
	require.True(t, ok)
	assert.Equal(t, 1.2345678901234568e+29, huge.Value())
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a":1`))
	assert.Error(t, err)
}

func TestParseFlowYAML(t *testing.T) {
	n, err := Parse([]byte(`{a: 1, b: [x, y]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, n.Keys())
	b, _ := n.Get("b")
	assert.Equal(t, 2, b.Len())
}

func TestParseYAML(t *testing.T) {
	in := "openapi: 3.0.0\n" +
		"info:\n" +
		"  title: Pets\n" +
		"  version: \"1\"\n" +
		"base: &base\n" +
		"  type: object\n" +
		"copy: *base\n"

	n, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"openapi", "info", "base", "copy"}, n.Keys())

	version, ok := n.At("/info/version")
	require.True(t, ok)
	assert.Equal(t, "1", version.Value())

	copied, ok := n.At("/copy/type")
	require.True(t, ok)
	assert.Equal(t, "object", copied.Value())
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	in := `{"z":1,"a":{"y":[true,null,"s"],"b":2.5},"m":"x"}`
	n := MustParse(in)

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
	assert.Equal(t, in, n.String())
}

func TestMarshalIndentJSON(t *testing.T) {
	n := MustParse(`{"a":{"b":1}}`)
	out, err := n.MarshalIndentJSON("", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": 1\n  }\n}", string(out))
}

func TestEncodeYAMLKeepsOrder(t *testing.T) {
	n := MustParse(`{"zeta":"last-alpha","alpha":[1,2.5],"flag":true,"nothing":null,"num":"12"}`)
	out, err := n.EncodeYAML()
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "zeta"), strings.Index(text, "alpha"))
	assert.Contains(t, text, `num: "12"`)

	back, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, Equal(n, back), "yaml round trip changed the tree: %s", back)
}

func TestUnmarshalJSON(t *testing.T) {
	var holder struct {
		Doc *Node `json:"doc"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"doc":{"b":1,"a":2}}`), &holder))
	require.NotNil(t, holder.Doc)
	assert.Equal(t, []string{"b", "a"}, holder.Doc.Keys())
}
