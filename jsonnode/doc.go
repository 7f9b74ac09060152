// Package jsonnode provides an order-preserving JSON tree used by the
// dereferencer.
//
// A [Node] is a tagged union over three variants: [Object], [Array], and
// [Scalar]. Objects remember the order their fields were added in, so a
// document that is parsed, transformed, and written back keeps the layout
// its authors chose. Callers switch on [Node.Kind] rather than on dynamic
// Go types.
//
// # Parsing
//
// [Parse] accepts both JSON and YAML text:
//
//	doc, err := jsonnode.Parse(data)
//	if err != nil {
//		return err
//	}
//	pet, ok := doc.At("/components/schemas/Pet")
//
// # Serializing
//
// Nodes implement json.Marshaler and yaml.Marshaler. [Node.MarshalIndentJSON]
// and [Node.EncodeYAML] produce human-readable output.
//
// # Ownership
//
// Nodes are mutable and not safe for concurrent mutation. Use [Node.Clone]
// before handing a subtree to code that may change it.
package jsonnode
