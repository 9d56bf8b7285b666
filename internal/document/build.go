package document

import (
	"errors"
	"fmt"
	"strings"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/diagnostic"
	"proto-collapse/internal/scene"
)

type pendingAlias struct {
	node  scene.NodeID
	label string
	where string
}

type pendingLink struct {
	field scene.FieldID
	ref   FieldRef
	where string
	name  string
}

type builder struct {
	opts    DecodeOptions
	doc     *Document
	diags   *diagnostic.Diagnostics
	aliases []pendingAlias
	links   []pendingLink
}

// Build turns a parsed file into a scene graph. Nodes and fields are created
// first; alias and field references are resolved once every label is known.
// The document is returned even when diagnostics carry errors.
func Build(f *File, opts DecodeOptions) (*Document, *diagnostic.Diagnostics) {
	b := &builder{
		opts: opts,
		doc: &Document{
			Version:    f.Version,
			Graph:      scene.NewGraph(),
			Visibility: alias.NewVisibilitySet(),
			Labels:     make(map[string]scene.NodeID),
		},
		diags: &diagnostic.Diagnostics{},
	}

	if f.Version != CurrentVersion {
		b.diags.AddError("unsupported_version", fmt.Sprintf("version %q is not supported", f.Version), "", "")
		return b.doc, b.diags
	}

	if f.Root == nil {
		b.diags.AddError("missing_root", "document has no root node", "", "")
		return b.doc, b.diags
	}

	root := b.node(f.Root, "root")
	if err := b.doc.Graph.SetRoot(root); err != nil {
		b.diags.AddError("invalid_root", err.Error(), "root", "")
	}

	for i, def := range f.Detached {
		b.node(def, fmt.Sprintf("detached[%d]", i))
	}

	b.resolveAliases()
	b.resolveLinks()

	return b.doc, b.diags
}

func (b *builder) node(def *NodeDef, path string) scene.NodeID {
	g := b.doc.Graph

	if def == nil {
		b.diags.AddError("missing_node", "empty node definition", path, "")
		return g.AddNode("")
	}

	var id scene.NodeID
	if def.Proto != "" {
		id = g.AddProto(def.Model, def.Proto)
	} else {
		id = g.AddNode(def.Model)
	}

	where := path
	if def.ID != "" {
		where = def.ID
		b.label(def.ID, id)
	}

	if def.Model == "" {
		b.diags.AddError("missing_model", "node has no model", where, "")
	}

	if def.Visible {
		b.doc.Visibility.ShowNode(id)
	}

	if len(def.Parameters) > 0 && def.Proto == "" {
		b.diags.AddError("unexpected_parameters", "only proto nodes declare parameters", where, "")
	} else {
		for i := range def.Parameters {
			b.field(id, &def.Parameters[i], true, where)
		}
	}

	for i := range def.Fields {
		b.field(id, &def.Fields[i], false, where)
	}

	if def.Alias != "" {
		b.aliases = append(b.aliases, pendingAlias{node: id, label: def.Alias, where: where})
	}

	return id
}

func (b *builder) label(label string, id scene.NodeID) {
	switch _, dup := b.doc.Labels[label]; {
	case strings.Contains(label, "."):
		b.diags.AddError("invalid_label", "labels cannot contain '.'", label, "")
	case dup:
		b.diags.AddError("duplicate_label", fmt.Sprintf("label %q is used twice", label), label, "")
	default:
		b.doc.Labels[label] = id
	}
}

func (b *builder) field(node scene.NodeID, def *FieldDef, parameter bool, where string) {
	g := b.doc.Graph

	typ, err := scene.ParseFieldType(def.Type)
	if err != nil {
		b.diags.AddError("invalid_type", err.Error(), where, def.Name)
		return
	}

	var fid scene.FieldID
	if parameter {
		fid, err = g.AddParameter(node, def.Name, typ)
	} else {
		fid, err = g.AddField(node, def.Name, typ)
	}

	if err != nil {
		code := "invalid_field"
		if errors.Is(err, scene.ErrDuplicateField) {
			code = "duplicate_field"
		}

		b.diags.AddError(code, err.Error(), where, def.Name)

		return
	}

	if def.Hidden {
		_ = g.SetHidden(fid, true)
	}

	if def.Visible {
		b.doc.Visibility.ShowField(fid)
	}

	if typ.IsNode() {
		if len(def.Value) > 0 {
			b.diags.AddError("unexpected_value", fmt.Sprintf("%s holds nodes, not values", typ), where, def.Name)
		}

		for i, child := range def.Nodes {
			cid := b.node(child, fmt.Sprintf("%s.%s[%d]", where, def.Name, i))

			if err := g.AttachChild(fid, cid); err != nil {
				code := "invalid_child"
				if errors.Is(err, scene.ErrFieldOccupied) {
					code = "too_many_nodes"
				}

				b.diags.AddError(code, err.Error(), where, def.Name)
			}
		}
	} else {
		if len(def.Nodes) > 0 {
			b.diags.AddError("unexpected_nodes", fmt.Sprintf("%s holds values, not nodes", typ), where, def.Name)
		}

		if len(def.Value) > 0 {
			if err := g.SetItems(fid, def.Value...); err != nil {
				b.diags.AddError("invalid_value", err.Error(), where, def.Name)
			}
		}
	}

	if def.Is != nil {
		b.links = append(b.links, pendingLink{field: fid, ref: *def.Is, where: where, name: def.Name})
	}
}

// unresolved reports a reference to something that does not exist.
func (b *builder) unresolved(code, message, node, field string) {
	if b.opts.Lenient {
		b.diags.AddWarning(code, message, node, field)
		return
	}

	b.diags.AddError(code, message, node, field)
}

func (b *builder) resolveAliases() {
	for _, p := range b.aliases {
		source, ok := b.doc.Labels[p.label]
		if !ok {
			b.unresolved("unknown_label", fmt.Sprintf("alias %q is not a node label", p.label), p.where, "")
			continue
		}

		if err := b.doc.Graph.SetAlias(p.node, source); err != nil {
			b.diags.AddError("invalid_alias", err.Error(), p.where, "")
		}
	}
}

func (b *builder) resolveLinks() {
	g := b.doc.Graph

	for _, p := range b.links {
		node, ok := b.doc.Labels[p.ref.Node]
		if !ok {
			b.unresolved("unknown_label", fmt.Sprintf("%q is not a node label", p.ref.Node), p.where, p.name)
			continue
		}

		target, ok := lookupRef(g, node, p.ref)
		if !ok {
			b.unresolved("unknown_field", fmt.Sprintf("%s does not exist", p.ref), p.where, p.name)
			continue
		}

		if err := g.SetFieldParameter(p.field, target); err != nil {
			b.diags.AddError("invalid_parameter", err.Error(), p.where, p.name)
		}
	}
}

// lookupRef finds the referenced field. The short form looks at regular
// fields before parameters.
func lookupRef(g *scene.Graph, node scene.NodeID, ref FieldRef) (scene.FieldID, bool) {
	if ref.Parameter {
		return g.ParameterByName(node, ref.Field)
	}

	if id, ok := g.FieldByName(node, ref.Field); ok {
		return id, true
	}

	return g.ParameterByName(node, ref.Field)
}
