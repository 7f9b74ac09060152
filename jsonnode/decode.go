package jsonnode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

// ErrEmptyDocument is returned when the input holds no document at all.
var ErrEmptyDocument = errors.New("jsonnode: empty document")

// Parse decodes JSON or YAML text into a Node tree. Objects and arrays
// written as JSON are decoded with encoding/json so JSON escapes are honored;
// everything else goes through the YAML parser. Field order is kept exactly
// as written for both formats.
func Parse(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		n, jsonErr := parseJSON(trimmed)
		if jsonErr == nil {
			return n, nil
		}
		// Flow-style YAML such as {a: 1} also starts with a brace.
		if n, err := parseYAML(data); err == nil {
			return n, nil
		}
		return nil, jsonErr
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromYAML(&doc)
}

// parseJSON builds the tree from the decoder's token stream, which keeps
// object members in document order.
func parseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("jsonnode: invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("jsonnode: invalid JSON: unexpected data after offset %d", dec.InputOffset())
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", rune(t), dec.InputOffset())
		}
	default:
		// nil, bool, string and json.Number.
		return FromValue(t)
	}
}

// ParseReader reads r fully and decodes it with Parse.
func ParseReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jsonnode: failed to read data: %w", err)
	}
	return Parse(data)
}

// FromYAML converts a decoded yaml.Node into a Node tree. Aliases are
// expanded; document nodes are unwrapped.
func FromYAML(y *yaml.Node) (*Node, error) {
	if y == nil {
		return nil, ErrEmptyDocument
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return FromYAML(y.Content[0])

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("jsonnode: line %d: mapping key must be a scalar", key.Line)
			}
			val, err := FromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := NewArray()
		for _, item := range y.Content {
			val, err := FromYAML(item)
			if err != nil {
				return nil, err
			}
			arr.Append(val)
		}
		return arr, nil

	case yaml.AliasNode:
		return FromYAML(y.Alias)

	case yaml.ScalarNode:
		return scalarFromYAML(y)

	default:
		return nil, fmt.Errorf("jsonnode: line %d: unsupported yaml node kind %v", y.Line, y.Kind)
	}
}

func scalarFromYAML(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("jsonnode: line %d: %w", y.Line, err)
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err == nil {
			return NewInt(i), nil
		}
		// Out of int64 range; keep the magnitude as a float.
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("jsonnode: line %d: %w", y.Line, err)
		}
		return NewFloat(f), nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("jsonnode: line %d: %w", y.Line, err)
		}
		return NewFloat(f), nil
	default:
		return NewString(y.Value), nil
	}
}
