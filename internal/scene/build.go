package scene

import (
	"fmt"
	"slices"
)

// AddNode creates a detached standard node.
func (g *Graph) AddNode(model string) NodeID {
	return g.addNode(model, KindStandard, ProtoInfo{})
}

// AddProto creates a detached prototype-nesting node instantiating template.
func (g *Graph) AddProto(model, template string) NodeID {
	return g.addNode(model, KindProto, ProtoInfo{Template: template})
}

func (g *Graph) addNode(model string, kind NodeKind, proto ProtoInfo) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		id:          id,
		model:       model,
		kind:        kind,
		proto:       proto,
		parent:      NoNode,
		parentField: NoField,
		alias:       NoNode,
	})
	g.liveNodes++
	g.touch()

	return id
}

// SetRoot marks a detached node as the root of the scene.
func (g *Graph) SetRoot(id NodeID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}

	if n.parent != NoNode {
		return fmt.Errorf("root %s: %w", id, ErrAlreadyOwned)
	}

	g.root = id
	g.touch()

	return nil
}

// AddField appends a regular field to node.
func (g *Graph) AddField(node NodeID, name string, typ FieldType) (FieldID, error) {
	return g.addField(node, name, typ, false)
}

// AddParameter appends a parameter field to a prototype node.
func (g *Graph) AddParameter(node NodeID, name string, typ FieldType) (FieldID, error) {
	return g.addField(node, name, typ, true)
}

func (g *Graph) addField(node NodeID, name string, typ FieldType, parameter bool) (FieldID, error) {
	n, err := g.node(node)
	if err != nil {
		return NoField, err
	}

	if !typ.Valid() {
		return NoField, fmt.Errorf("field %q: %w: type %d", name, ErrInvalidValue, int(typ))
	}

	list := &n.fields
	if parameter {
		if n.kind != KindProto {
			return NoField, fmt.Errorf("parameter %q on %s %s: %w", name, n.model, node, ErrNotProto)
		}

		list = &n.parameters
	}

	if _, exists := g.lookup(*list, name); exists {
		return NoField, fmt.Errorf("%s %s: %w: %q", n.model, node, ErrDuplicateField, name)
	}

	id := FieldID(len(g.fields))
	g.fields = append(g.fields, &Field{
		id:          id,
		name:        name,
		typ:         typ,
		owner:       node,
		isParameter: parameter,
		parameter:   NoField,
	})
	*list = append(*list, id)
	g.touch()

	return id, nil
}

// SetItems replaces the literal items of a scalar field.
func (g *Graph) SetItems(field FieldID, items ...string) error {
	f, err := g.field(field)
	if err != nil {
		return err
	}

	if f.typ.IsNode() {
		return fmt.Errorf("field %q: %w", f.name, ErrInvalidValue)
	}

	if !f.typ.IsMulti() && len(items) > 1 {
		return fmt.Errorf("field %q: %w: %s holds one item, got %d", f.name, ErrInvalidValue, f.typ, len(items))
	}

	for _, item := range items {
		if err := f.typ.CheckItem(item); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}

	f.value.Items = slices.Clone(items)
	g.touch()

	return nil
}

// SetHidden flags a field as hidden from ordinary traversal.
func (g *Graph) SetHidden(field FieldID, hidden bool) error {
	f, err := g.field(field)
	if err != nil {
		return err
	}

	f.hidden = hidden
	g.touch()

	return nil
}

// AttachChild appends a detached node to a node-valued field and makes the
// field's owner its parent.
func (g *Graph) AttachChild(field FieldID, child NodeID) error {
	f, err := g.field(field)
	if err != nil {
		return err
	}

	c, err := g.node(child)
	if err != nil {
		return err
	}

	if !f.typ.IsNode() {
		return fmt.Errorf("field %q: %w", f.name, ErrNotNodeField)
	}

	if !f.typ.IsMulti() && len(f.value.Nodes) > 0 {
		return fmt.Errorf("field %q: %w", f.name, ErrFieldOccupied)
	}

	if child == f.owner || g.IsAncestor(child, f.owner) {
		return fmt.Errorf("child %s: %w", child, ErrOwnershipCycle)
	}

	if c.parent != NoNode || child == g.root {
		return fmt.Errorf("child %s: %w", child, ErrAlreadyOwned)
	}

	f.value.Nodes = append(f.value.Nodes, child)
	c.parent = f.owner
	c.parentField = field
	g.touch()

	return nil
}
