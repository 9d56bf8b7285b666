package scene

import (
	"fmt"
	"slices"

	"proto-collapse/internal/common"
)

// CheckCompatible verifies that instance may mirror source: same model, same
// number of regular fields and matching types at every position.
func (g *Graph) CheckCompatible(instance, source NodeID) error {
	i, err := g.node(instance)
	if err != nil {
		return err
	}

	s, err := g.node(source)
	if err != nil {
		return err
	}

	return g.compatible(i, s)
}

func (g *Graph) compatible(instance, source *Node) error {
	if instance.model != source.model {
		return fmt.Errorf("%w: %s %s vs %s %s", ErrModelMismatch, instance.model, instance.id, source.model, source.id)
	}

	if len(instance.fields) != len(source.fields) {
		return fmt.Errorf("%w: %s has %d fields, %s has %d",
			ErrArityMismatch, instance.id, len(instance.fields), source.id, len(source.fields))
	}

	for k := range instance.fields {
		fi, fs := g.fields[instance.fields[k]], g.fields[source.fields[k]]
		if fi.typ != fs.typ {
			return fmt.Errorf("%w: field %d %q is %s, %q is %s", ErrTypeMismatch, k, fi.name, fi.typ, fs.name, fs.typ)
		}
	}

	return nil
}

// SetAlias links node to its parameter-source node. NoNode clears the link.
func (g *Graph) SetAlias(node, source NodeID) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}

	if source == NoNode {
		if n.alias != NoNode {
			g.tracker.Unlink(node)
			n.alias = NoNode
			g.touch()
		}

		return nil
	}

	s, err := g.node(source)
	if err != nil {
		return err
	}

	if err := g.compatible(n, s); err != nil {
		return err
	}

	steps := 0
	for cur := source; cur != NoNode; cur = g.nodes[cur].alias {
		if cur == node || steps > len(g.nodes) {
			return fmt.Errorf("%w: %s -> %s", ErrAliasCycle, node, source)
		}

		steps++
	}

	g.tracker.Link(node, source)
	n.alias = source
	g.touch()

	return nil
}

// SetFieldParameter makes field mirror param. NoField clears the link.
func (g *Graph) SetFieldParameter(field, param FieldID) error {
	f, err := g.field(field)
	if err != nil {
		return err
	}

	if param == NoField {
		g.unsetParameter(f)
		g.touch()

		return nil
	}

	p, err := g.field(param)
	if err != nil {
		return err
	}

	if p.typ != f.typ {
		return fmt.Errorf("%w: %q is %s, parameter %q is %s", ErrTypeMismatch, f.name, f.typ, p.name, p.typ)
	}

	steps := 0
	for cur := param; cur != NoField; cur = g.fields[cur].parameter {
		if cur == field || steps > len(g.fields) {
			return fmt.Errorf("%w: field %s -> %s", ErrAliasCycle, field, param)
		}

		steps++
	}

	g.unsetParameter(f)
	f.parameter = param
	p.internal = append(p.internal, field)
	g.touch()

	return nil
}

func (g *Graph) unsetParameter(f *Field) {
	if f.parameter == NoField {
		return
	}

	if p := g.Field(f.parameter); p != nil {
		p.internal, _ = common.Remove(p.internal, f.id)
	}

	f.parameter = NoField
}

// ClearInternalFields drops the reverse links of field: every field that
// mirrored it stops doing so. It returns how many links were dropped.
func (g *Graph) ClearInternalFields(field FieldID) (int, error) {
	f, err := g.field(field)
	if err != nil {
		return 0, err
	}

	n := len(f.internal)
	for _, id := range f.internal {
		if internal := g.Field(id); internal != nil {
			internal.parameter = NoField
		}
	}

	f.internal = nil
	g.touch()

	return n, nil
}

// RemoveFieldFromParameters deletes a parameter field of node together with
// any nodes it still holds.
func (g *Graph) RemoveFieldFromParameters(node NodeID, field FieldID) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}

	f, err := g.field(field)
	if err != nil {
		return err
	}

	if !slices.Contains(n.parameters, field) {
		return fmt.Errorf("%w: %q of %s", ErrNotParameter, f.name, node)
	}

	for _, child := range slices.Clone(f.value.Nodes) {
		if err := g.DeleteNode(child); err != nil {
			return err
		}
	}

	n.parameters, _ = common.Remove(n.parameters, field)
	g.destroyField(field)
	g.touch()

	return nil
}

// RemoveNodeFromField deletes node, which must be one of the entries held by
// field. The other entries keep their order.
func (g *Graph) RemoveNodeFromField(field FieldID, node NodeID) error {
	f, err := g.field(field)
	if err != nil {
		return err
	}

	if !slices.Contains(f.value.Nodes, node) {
		return fmt.Errorf("%w: %s is not held by %q", ErrUnknownNode, node, f.name)
	}

	return g.DeleteNode(node)
}

// DeleteNode removes node and everything it owns, deepest first. Alias links
// and field parameters pointing into the removed subtree are cleared and the
// surviving parent no longer references the node.
func (g *Graph) DeleteNode(node NodeID) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}

	if node == g.root {
		return ErrRootDeletion
	}

	doomed := g.Subgraph(node, SubgraphOptions{IncludeSelf: true, IncludeHidden: true, IncludeInternal: true})

	if n.parent != NoNode {
		if pf := g.Field(n.parentField); pf != nil {
			pf.value.Nodes, _ = common.Remove(pf.value.Nodes, node)
		}
	}

	for i := len(doomed) - 1; i >= 0; i-- {
		g.destroyNode(doomed[i])
	}

	g.touch()

	return nil
}

func (g *Graph) destroyNode(id NodeID) {
	n := g.nodes[id]

	for _, instance := range g.tracker.InstancesOf(id) {
		g.tracker.Unlink(instance)
		g.nodes[instance].alias = NoNode
	}

	if n.alias != NoNode {
		g.tracker.Unlink(id)
	}

	for _, fid := range n.parameters {
		g.destroyField(fid)
	}

	for _, fid := range n.fields {
		g.destroyField(fid)
	}

	g.nodes[id] = nil
	g.liveNodes--
}

func (g *Graph) destroyField(id FieldID) {
	f := g.fields[id]

	for _, internal := range f.internal {
		if other := g.Field(internal); other != nil {
			other.parameter = NoField
		}
	}

	g.unsetParameter(f)
	g.fields[id] = nil
}
