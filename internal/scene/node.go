package scene

import "slices"

// Node is one scene-description element. Nodes are created and mutated
// through a Graph; the accessors below are read-only views.
type Node struct {
	id          NodeID
	model       string
	kind        NodeKind
	proto       ProtoInfo
	fields      []FieldID
	parameters  []FieldID
	parent      NodeID
	parentField FieldID
	alias       NodeID
}

// ID returns the stable identifier of the node.
func (n *Node) ID() NodeID { return n.id }

// Model returns the node type name, e.g. "Appearance".
func (n *Node) Model() string { return n.model }

// Kind returns the node variant.
func (n *Node) Kind() NodeKind { return n.kind }

// IsProto reports whether the node hosts a prototype instantiation.
func (n *Node) IsProto() bool { return n.kind == KindProto }

// Proto returns the prototype payload; ok is false for standard nodes.
func (n *Node) Proto() (info ProtoInfo, ok bool) {
	return n.proto, n.kind == KindProto
}

// Fields returns the regular fields in declaration order.
func (n *Node) Fields() []FieldID { return slices.Clone(n.fields) }

// Parameters returns the fields declared at the prototype boundary.
func (n *Node) Parameters() []FieldID { return slices.Clone(n.parameters) }

// FieldsOrParameters returns the interface a user of the node sees:
// parameters for prototype nodes, fields otherwise.
func (n *Node) FieldsOrParameters() []FieldID {
	if n.kind == KindProto {
		return n.Parameters()
	}

	return n.Fields()
}

// Parent returns the owning node, or NoNode.
func (n *Node) Parent() NodeID { return n.parent }

// ParentField returns the field of the parent holding this node, or NoField.
func (n *Node) ParentField() FieldID { return n.parentField }

// Alias returns the parameter-source node this node mirrors, or NoNode.
func (n *Node) Alias() NodeID { return n.alias }

func (n *Node) clone() *Node {
	c := *n
	c.fields = slices.Clone(n.fields)
	c.parameters = slices.Clone(n.parameters)

	return &c
}
