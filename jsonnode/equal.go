package jsonnode

// Clone returns a deep copy of n. Cloning nil yields a null scalar.
func (n *Node) Clone() *Node {
	if n == nil {
		return NewNull()
	}
	switch n.kind {
	case Object:
		cp := &Node{kind: Object}
		if len(n.fields) > 0 {
			cp.fields = make([]Field, len(n.fields))
			cp.index = make(map[string]int, len(n.fields))
			for i, f := range n.fields {
				cp.fields[i] = Field{Name: f.Name, Value: f.Value.Clone()}
				cp.index[f.Name] = i
			}
		}
		return cp
	case Array:
		cp := &Node{kind: Array, items: make([]*Node, len(n.items))}
		for i, item := range n.items {
			cp.items[i] = item.Clone()
		}
		return cp
	default:
		// Scalar values are immutable Go values.
		return &Node{kind: Scalar, value: n.value}
	}
}

// Equal reports whether a and b are structurally equal. Object field order
// is not significant; array order is. Integer and float scalars compare by
// numeric value.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Object:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for _, f := range a.fields {
			other, ok := b.Get(f.Name)
			if !ok || !Equal(f.Value, other) {
				return false
			}
		}
		return true
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a.Value(), b.Value())
	}
}

func scalarEqual(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum || bNum {
		if !aNum || !bNum {
			return false
		}
		ai, aInt := a.(int64)
		bi, bInt := b.(int64)
		if aInt && bInt {
			return ai == bi
		}
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
