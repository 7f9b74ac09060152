package jsonnode

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON implements json.Marshaler. Object fields are written in their
// insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndentJSON is like MarshalJSON but applies json.Indent to the output.
func (n *Node) MarshalIndentJSON(prefix, indent string) ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the node as compact JSON. Encoding errors yield an empty
// string.
func (n *Node) String() string {
	data, err := n.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler so a Node embedded in other values
// keeps its field order when encoded as YAML.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToYAML(), nil
}

// ToYAML converts n into a yaml.Node tree.
func (n *Node) ToYAML() *yaml.Node {
	switch n.Kind() {
	case Object:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.fields))}
		for _, f := range n.fields {
			y.Content = append(y.Content, scalarNode("!!str", f.Name), f.Value.ToYAML())
		}
		return y
	case Array:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.items))}
		for _, item := range n.items {
			y.Content = append(y.Content, item.ToYAML())
		}
		return y
	default:
		switch v := n.Value().(type) {
		case bool:
			return scalarNode("!!bool", strconv.FormatBool(v))
		case int64:
			return scalarNode("!!int", strconv.FormatInt(v, 10))
		case float64:
			return scalarNode("!!float", formatYAMLFloat(v))
		case string:
			return scalarNode("!!str", v)
		default:
			return scalarNode("!!null", "null")
		}
	}
}

// EncodeYAML marshals n as a YAML document.
func (n *Node) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(n.ToYAML())
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func formatYAMLFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// Keep a float tag on round trip.
		s += ".0"
	}
	return s
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Kind() {
	case Object:
		buf.WriteByte('{')
		for i, f := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case Array:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		data, err := json.Marshal(n.Value())
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
