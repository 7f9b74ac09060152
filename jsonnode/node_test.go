package jsonnode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectFieldOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", NewInt(1))
	obj.Set("a", NewInt(2))
	obj.Set("c", NewInt(3))

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	t.Run("replace keeps position", func(t *testing.T) {
		obj.Set("a", NewString("x"))
		assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
		v, ok := obj.Get("a")
		require.True(t, ok)
		s, _ := v.StringValue()
		assert.Equal(t, "x", s)
	})

	t.Run("remove reindexes", func(t *testing.T) {
		removed := obj.Remove("b")
		require.NotNil(t, removed)
		assert.Equal(t, []string{"a", "c"}, obj.Keys())
		c, ok := obj.Get("c")
		require.True(t, ok)
		assert.Equal(t, int64(3), c.Value())
		assert.Nil(t, obj.Remove("missing"))
	})
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		kind Kind
	}{
		{"object", NewObject(), Object},
		{"array", NewArray(), Array},
		{"string", NewString("x"), Scalar},
		{"null", NewNull(), Scalar},
		{"nil pointer", nil, Scalar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.node.Kind())
		})
	}
	assert.True(t, NewNull().IsNull())
	assert.False(t, NewBool(false).IsNull())
	assert.Equal(t, "object", Object.String())
}

func TestSetOnScalarPanics(t *testing.T) {
	assert.Panics(t, func() { NewString("x").Set("a", NewNull()) })
	assert.Panics(t, func() { NewObject().Append(NewNull()) })
}

func TestCloneIsDeep(t *testing.T) {
	orig := MustParse(`{"a":{"b":[1,2,{"c":true}]}}`)
	cp := orig.Clone()
	require.True(t, Equal(orig, cp))

	inner, ok := cp.At("/a/b/2")
	require.True(t, ok)
	inner.Set("c", NewBool(false))

	origInner, _ := orig.At("/a/b/2/c")
	b, _ := origInner.BoolValue()
	assert.True(t, b, "mutating the clone must not affect the original")
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"field order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"array order matters", `[1,2]`, `[2,1]`, false},
		{"int equals float", `1`, `1.0`, true},
		{"string vs number", `"1"`, `1`, false},
		{"missing field", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"nested", `{"a":{"x":[true,null]}}`, `{"a":{"x":[true,null]}}`, true},
		{"null vs false", `null`, `false`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(MustParse(tt.a), MustParse(tt.b)))
		})
	}
}

func TestFromValueAndInterface(t *testing.T) {
	in := map[string]any{
		"name": "pet",
		"tags": []any{"a", "b"},
		"meta": map[string]any{"count": 3, "ok": true, "none": nil},
	}
	n, err := FromValue(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"meta", "name", "tags"}, n.Keys())

	want := map[string]any{
		"name": "pet",
		"tags": []any{"a", "b"},
		"meta": map[string]any{"count": int64(3), "ok": true, "none": nil},
	}
	if diff := cmp.Diff(want, n.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}
