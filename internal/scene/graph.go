package scene

import (
	"fmt"

	"proto-collapse/internal/instances"
)

// Graph is the arena holding every node and field of one scene.
type Graph struct {
	nodes     []*Node
	fields    []*Field
	root      NodeID
	liveNodes int
	version   uint64
	tracker   *instances.Tracker[NodeID]
}

// NewGraph creates an empty graph with no root.
func NewGraph() *Graph {
	return &Graph{
		root:    NoNode,
		tracker: instances.New[NodeID](),
	}
}

// Root returns the root node, or NoNode.
func (g *Graph) Root() NodeID { return g.root }

// Version changes every time the graph is mutated.
func (g *Graph) Version() uint64 { return g.version }

func (g *Graph) touch() { g.version++ }

// Len returns the number of live nodes.
func (g *Graph) Len() int { return g.liveNodes }

// FieldLen returns the number of live fields.
func (g *Graph) FieldLen() int {
	n := 0

	for _, f := range g.fields {
		if f != nil {
			n++
		}
	}

	return n
}

// Node returns the node with the given ID, or nil if it does not exist or was deleted.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}

	return g.nodes[id]
}

// Field returns the field with the given ID, or nil if it does not exist or was deleted.
func (g *Graph) Field(id FieldID) *Field {
	if id < 0 || int(id) >= len(g.fields) {
		return nil
	}

	return g.fields[id]
}

// NodeIDs returns every live node in ascending ID order.
func (g *Graph) NodeIDs() []NodeID {
	out := make([]NodeID, 0, g.liveNodes)

	for _, n := range g.nodes {
		if n != nil {
			out = append(out, n.id)
		}
	}

	return out
}

// InstancesOf returns the nodes whose alias is source, in ascending ID order.
func (g *Graph) InstancesOf(source NodeID) []NodeID {
	return g.tracker.InstancesOf(source)
}

// AliasCount returns the number of alias edges.
func (g *Graph) AliasCount() int {
	return g.tracker.Len()
}

// FieldByName returns the regular field of node with the given name.
func (g *Graph) FieldByName(node NodeID, name string) (FieldID, bool) {
	n := g.Node(node)
	if n == nil {
		return NoField, false
	}

	return g.lookup(n.fields, name)
}

// ParameterByName returns the parameter of node with the given name.
func (g *Graph) ParameterByName(node NodeID, name string) (FieldID, bool) {
	n := g.Node(node)
	if n == nil {
		return NoField, false
	}

	return g.lookup(n.parameters, name)
}

func (g *Graph) lookup(ids []FieldID, name string) (FieldID, bool) {
	for _, id := range ids {
		if g.fields[id].name == name {
			return id, true
		}
	}

	return NoField, false
}

// Children returns the nodes directly owned by node, parameters first, in
// declaration order.
func (g *Graph) Children(node NodeID) []NodeID {
	n := g.Node(node)
	if n == nil {
		return nil
	}

	var out []NodeID

	for _, ids := range [][]FieldID{n.parameters, n.fields} {
		for _, id := range ids {
			out = append(out, g.fields[id].value.Nodes...)
		}
	}

	return out
}

// IsAncestor reports whether ancestor owns node, directly or transitively.
func (g *Graph) IsAncestor(ancestor, node NodeID) bool {
	for n := g.Node(node); n != nil && n.parent != NoNode; n = g.Node(n.parent) {
		if n.parent == ancestor {
			return true
		}
	}

	return false
}

func (g *Graph) node(id NodeID) (*Node, error) {
	n := g.Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	return n, nil
}

func (g *Graph) field(id FieldID) (*Field, error) {
	f := g.Field(id)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}

	return f, nil
}

// Clone returns a deep, independent copy of the graph. IDs are preserved.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:     make([]*Node, len(g.nodes)),
		fields:    make([]*Field, len(g.fields)),
		root:      g.root,
		liveNodes: g.liveNodes,
		version:   g.version,
		tracker:   g.tracker.Clone(),
	}

	for i, n := range g.nodes {
		if n != nil {
			c.nodes[i] = n.clone()
		}
	}

	for i, f := range g.fields {
		if f != nil {
			c.fields[i] = f.clone()
		}
	}

	return c
}

// Adopt replaces the content of g with other. other must not be used afterwards.
func (g *Graph) Adopt(other *Graph) {
	*g = *other
}
