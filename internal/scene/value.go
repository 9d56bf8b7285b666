package scene

import (
	"slices"
	"strings"
)

// Value is the content of a field. Scalar types keep one textual literal per
// item in Items; node types keep child IDs in Nodes. Single-valued fields hold
// at most one entry.
type Value struct {
	Items []string
	Nodes []NodeID
}

// Len returns the number of entries held.
func (v Value) Len() int {
	return len(v.Items) + len(v.Nodes)
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	return Value{
		Items: slices.Clone(v.Items),
		Nodes: slices.Clone(v.Nodes),
	}
}

// Equal reports whether both values hold the same entries in the same order.
func (v Value) Equal(other Value) bool {
	return slices.Equal(v.Items, other.Items) && slices.Equal(v.Nodes, other.Nodes)
}

// String renders scalar items the way a scene file would write them.
func (v Value) String() string {
	if len(v.Nodes) > 0 {
		parts := make([]string, len(v.Nodes))
		for i, n := range v.Nodes {
			parts[i] = n.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	}

	if len(v.Items) == 1 {
		return v.Items[0]
	}

	return "[" + strings.Join(v.Items, ", ") + "]"
}
