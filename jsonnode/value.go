package jsonnode

import (
	"encoding/json"
	"fmt"
	"slices"
)

// FromValue builds a Node from plain Go values as produced by
// encoding/json or yaml decoding into any. Map keys are sorted because Go
// maps carry no order.
func FromValue(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return t.Clone(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case int:
		return NewInt(int64(t)), nil
	case int32:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case uint64:
		if t > 1<<63-1 {
			return NewFloat(float64(t)), nil
		}
		return NewInt(int64(t)), nil
	case float32:
		return NewFloat(float64(t)), nil
	case float64:
		return NewFloat(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("jsonnode: invalid number %q: %w", t, err)
		}
		return NewFloat(f), nil
	case []any:
		arr := NewArray()
		for _, item := range t {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := FromValue(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, child)
		}
		return obj, nil
	default:
		// Round trip anything else through encoding/json.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("jsonnode: cannot convert %T: %w", v, err)
		}
		return Parse(data)
	}
}

// MustFromValue is like FromValue but panics on error. It is intended for
// literals in tests and examples.
func MustFromValue(v any) *Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Node {
	n, err := Parse([]byte(text))
	if err != nil {
		panic(err)
	}
	return n
}

// Interface converts n into plain Go values: map[string]any, []any, and
// scalar values. Field order is lost.
func (n *Node) Interface() any {
	switch n.Kind() {
	case Object:
		m := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			m[f.Name] = f.Value.Interface()
		}
		return m
	case Array:
		s := make([]any, len(n.items))
		for i, item := range n.items {
			s[i] = item.Interface()
		}
		return s
	default:
		return n.Value()
	}
}
