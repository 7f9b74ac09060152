package jsonnode

import "fmt"

// Kind identifies which variant of the tagged union a Node holds.
type Kind int

const (
	// Scalar is a JSON string, number, boolean, or null.
	Scalar Kind = iota
	// Object is a JSON object with insertion-ordered fields.
	Object
	// Array is a JSON array.
	Array
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is a single name/value pair of an object node.
type Field struct {
	Name  string
	Value *Node
}

// Node is a JSON value. The zero value is a null scalar.
//
// Object nodes preserve the order in which fields were added. Replacing an
// existing field keeps its position; adding a new one appends it.
//
// Scalar values are always one of nil, bool, int64, float64, or string.
type Node struct {
	kind   Kind
	fields []Field
	index  map[string]int
	items  []*Node
	value  any
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: Object}
}

// NewArray returns an array node holding items.
func NewArray(items ...*Node) *Node {
	n := &Node{kind: Array, items: make([]*Node, 0, len(items))}
	for _, item := range items {
		n.items = append(n.items, orNull(item))
	}
	return n
}

// NewString returns a string scalar.
func NewString(s string) *Node {
	return &Node{kind: Scalar, value: s}
}

// NewBool returns a boolean scalar.
func NewBool(b bool) *Node {
	return &Node{kind: Scalar, value: b}
}

// NewInt returns an integer scalar.
func NewInt(i int64) *Node {
	return &Node{kind: Scalar, value: i}
}

// NewFloat returns a floating point scalar.
func NewFloat(f float64) *Node {
	return &Node{kind: Scalar, value: f}
}

// NewNull returns a null scalar.
func NewNull() *Node {
	return &Node{kind: Scalar}
}

func orNull(n *Node) *Node {
	if n == nil {
		return NewNull()
	}
	return n
}

// Kind returns the variant held by n. A nil node reports Scalar.
func (n *Node) Kind() Kind {
	if n == nil {
		return Scalar
	}
	return n.kind
}

// IsObject reports whether n is an object.
func (n *Node) IsObject() bool { return n != nil && n.kind == Object }

// IsArray reports whether n is an array.
func (n *Node) IsArray() bool { return n != nil && n.kind == Array }

// IsScalar reports whether n is a scalar (including null).
func (n *Node) IsScalar() bool { return n == nil || n.kind == Scalar }

// IsNull reports whether n is a null scalar.
func (n *Node) IsNull() bool { return n.IsScalar() && (n == nil || n.value == nil) }

// Len returns the number of fields of an object, the number of items of an
// array, and 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind() {
	case Object:
		return len(n.fields)
	case Array:
		return len(n.items)
	default:
		return 0
	}
}

// Value returns the scalar value, or nil for containers.
func (n *Node) Value() any {
	if !n.IsScalar() || n == nil {
		return nil
	}
	return n.value
}

// StringValue returns the value of a string scalar.
func (n *Node) StringValue() (string, bool) {
	s, ok := n.Value().(string)
	return s, ok
}

// BoolValue returns the value of a boolean scalar.
func (n *Node) BoolValue() (bool, bool) {
	b, ok := n.Value().(bool)
	return b, ok
}

// Get returns the value of the named field of an object node.
func (n *Node) Get(name string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.fields[i].Value, true
}

// Has reports whether the object node has the named field.
func (n *Node) Has(name string) bool {
	_, ok := n.Get(name)
	return ok
}

// Set adds or replaces a field of an object node. It panics if n is not an
// object.
func (n *Node) Set(name string, value *Node) {
	if !n.IsObject() {
		panic(fmt.Sprintf("jsonnode: Set on %s node", n.Kind()))
	}
	value = orNull(value)
	if i, ok := n.index[name]; ok {
		n.fields[i].Value = value
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[name] = len(n.fields)
	n.fields = append(n.fields, Field{Name: name, Value: value})
}

// Remove deletes the named field from an object node and returns its
// previous value. It returns nil when the field was absent.
func (n *Node) Remove(name string) *Node {
	if !n.IsObject() {
		return nil
	}
	i, ok := n.index[name]
	if !ok {
		return nil
	}
	removed := n.fields[i].Value
	n.fields = append(n.fields[:i], n.fields[i+1:]...)
	delete(n.index, name)
	for j := i; j < len(n.fields); j++ {
		n.index[n.fields[j].Name] = j
	}
	return removed
}

// Clear removes every field of an object node or every item of an array.
func (n *Node) Clear() {
	switch n.Kind() {
	case Object:
		n.fields = nil
		n.index = nil
	case Array:
		n.items = nil
	}
}

// Keys returns a snapshot of an object's field names in order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	keys := make([]string, len(n.fields))
	for i, f := range n.fields {
		keys[i] = f.Name
	}
	return keys
}

// Fields returns a snapshot of an object's fields in order.
func (n *Node) Fields() []Field {
	if !n.IsObject() {
		return nil
	}
	return append([]Field(nil), n.fields...)
}

// Items returns a snapshot of an array's items.
func (n *Node) Items() []*Node {
	if !n.IsArray() {
		return nil
	}
	return append([]*Node(nil), n.items...)
}

// Item returns the i-th item of an array node.
func (n *Node) Item(i int) (*Node, bool) {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// SetItem replaces the i-th item of an array node. It panics if n is not an
// array or i is out of range.
func (n *Node) SetItem(i int, value *Node) {
	if !n.IsArray() {
		panic(fmt.Sprintf("jsonnode: SetItem on %s node", n.Kind()))
	}
	n.items[i] = orNull(value)
}

// Append adds items to the end of an array node. It panics if n is not an
// array.
func (n *Node) Append(items ...*Node) {
	if !n.IsArray() {
		panic(fmt.Sprintf("jsonnode: Append on %s node", n.Kind()))
	}
	for _, item := range items {
		n.items = append(n.items, orNull(item))
	}
}
