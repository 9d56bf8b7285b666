package document

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/scene"
)

type exporter struct {
	g      *scene.Graph
	vis    alias.Visibility
	labels map[scene.NodeID]string
	used   *set.Set[string]
}

// Export converts the current graph of doc back into its YAML form. Nodes
// that are referenced by an alias or a mirrored field but carry no label get
// one derived from their id. Nodes without a parent other than the root are
// written as detached trees.
func Export(doc *Document) (*File, error) {
	g := doc.Graph
	if g == nil || g.Node(g.Root()) == nil {
		return nil, ErrNoRoot
	}

	e := &exporter{
		g:      g,
		vis:    alias.Nothing,
		labels: make(map[scene.NodeID]string, len(doc.Labels)),
		used:   set.New[string](len(doc.Labels)),
	}

	if doc.Visibility != nil {
		e.vis = doc.Visibility
	}

	for label, id := range doc.Labels {
		if g.Node(id) != nil {
			e.labels[id] = label
			e.used.Insert(label)
		}
	}

	e.labelReferenced()

	version := doc.Version
	if version == "" {
		version = CurrentVersion
	}

	f := &File{Version: version, Root: e.node(g.Root())}

	for _, id := range g.NodeIDs() {
		if id != g.Root() && g.Node(id).Parent() == scene.NoNode {
			f.Detached = append(f.Detached, e.node(id))
		}
	}

	return f, nil
}

func (e *exporter) labelReferenced() {
	for _, id := range e.g.NodeIDs() {
		n := e.g.Node(id)
		if n.Alias() != scene.NoNode {
			e.ensureLabel(n.Alias())
		}

		for _, fid := range append(n.Parameters(), n.Fields()...) {
			if p := e.g.Field(fid).Parameter(); p != scene.NoField {
				e.ensureLabel(e.g.Field(p).Owner())
			}
		}
	}
}

func (e *exporter) ensureLabel(id scene.NodeID) {
	if _, ok := e.labels[id]; ok {
		return
	}

	label := fmt.Sprintf("n%d", id)
	for e.used.Contains(label) {
		label += "_"
	}

	e.labels[id] = label
	e.used.Insert(label)
}

func (e *exporter) node(id scene.NodeID) *NodeDef {
	n := e.g.Node(id)

	def := &NodeDef{
		ID:      e.labels[id],
		Model:   n.Model(),
		Visible: e.vis.NodeVisible(id),
	}

	if info, ok := n.Proto(); ok {
		def.Proto = info.Template
	}

	if n.Alias() != scene.NoNode {
		def.Alias = e.labels[n.Alias()]
	}

	for _, fid := range n.Parameters() {
		def.Parameters = append(def.Parameters, e.field(fid))
	}

	for _, fid := range n.Fields() {
		def.Fields = append(def.Fields, e.field(fid))
	}

	return def
}

func (e *exporter) field(id scene.FieldID) FieldDef {
	f := e.g.Field(id)

	def := FieldDef{
		Name:    f.Name(),
		Type:    f.Type().String(),
		Hidden:  f.Hidden(),
		Visible: e.vis.FieldVisible(id),
	}

	if f.Type().IsNode() {
		for _, child := range f.Nodes() {
			def.Nodes = append(def.Nodes, e.node(child))
		}
	} else if items := f.Value().Items; len(items) > 0 {
		def.Value = Items(items)
	}

	if p := f.Parameter(); p != scene.NoField {
		pf := e.g.Field(p)
		def.Is = &FieldRef{Node: e.labels[pf.Owner()], Field: pf.Name(), Parameter: pf.IsParameter()}
	}

	return def
}
