package inspect

import (
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/common"
	"proto-collapse/internal/scene"
)

// WriteStructure prints the node tree from the root, then every detached
// tree. Each node lists its parameters and fields with their values and the
// field they mirror.
func WriteStructure(w io.Writer, g *scene.Graph, name Namer) error {
	p := &printer{w: w}

	if g.Node(g.Root()) == nil {
		p.printf(0, "(empty)")
		return p.err
	}

	writeNode(p, g, name, g.Root(), 0)

	for _, id := range g.NodeIDs() {
		if id != g.Root() && g.Node(id).Parent() == scene.NoNode {
			p.printf(0, "detached:")
			writeNode(p, g, name, id, 1)
		}
	}

	return p.err
}

func writeNode(p *printer, g *scene.Graph, name Namer, id scene.NodeID, depth int) {
	n := g.Node(id)

	header := name(id)
	if info, ok := n.Proto(); ok {
		header += " PROTO " + info.Template
	}

	if n.Alias() != scene.NoNode {
		header += " -> " + name(n.Alias())
	}

	p.printf(depth, "%s", header)

	for _, fid := range n.Parameters() {
		writeField(p, g, name, fid, "param ", depth+1)
	}

	for _, fid := range n.Fields() {
		writeField(p, g, name, fid, "", depth+1)
	}
}

func writeField(p *printer, g *scene.Graph, name Namer, id scene.FieldID, kind string, depth int) {
	f := g.Field(id)

	line := kind + f.Name() + " " + f.Type().String()
	if !f.Type().IsNode() {
		line += " = " + f.Value().String()
	}

	if f.Hidden() {
		line += " (hidden)"
	}

	if f.Parameter() != scene.NoField {
		line += " IS " + fieldRef(g, name, f.Parameter())
	}

	p.printf(depth, "%s", line)

	for _, child := range f.Nodes() {
		writeNode(p, g, name, child, depth+1)
	}
}

// WriteFlags prints one row of collapse flags per node reachable from the
// root, in enumeration order.
func WriteFlags(w io.Writer, g *scene.Graph, vis alias.Visibility, name Namer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := &printer{w: tw}

	p.printf(0, "NODE\tVISIBLE\tVISIBLE FIELD\tPROTO\tINSTANCES\tALIAS\tDEPTH\tCHAIN\tCOLLAPSIBLE")

	for _, c := range alias.NewResolver(g, vis, 0).Classify(g.All()) {
		visibleField := common.NoneStr
		if c.VisibleField != scene.NoField {
			visibleField = g.Field(c.VisibleField).Name()
		}

		source := common.NoneStr
		if c.Alias != scene.NoNode {
			source = name(c.Alias)
		}

		p.printf(0, "%s\t%t\t%s\t%t\t%t\t%s\t%d\t%t\t%t",
			name(c.Node), c.Visible, visibleField, c.IsProto, c.HasInstances,
			source, c.ChainDepth, c.ChainCollapsible, c.CollapsibleRoot)
	}

	if p.err != nil {
		return p.err
	}

	return tw.Flush()
}

// WriteInstanceChains prints, for every chain terminal with instances, the
// tree of nodes that mirror it.
func WriteInstanceChains(w io.Writer, g *scene.Graph, name Namer) error {
	p := &printer{w: w}

	for _, id := range g.NodeIDs() {
		if g.Node(id).Alias() == scene.NoNode && len(g.InstancesOf(id)) > 0 {
			writeInstances(p, g, name, id, 0, 0)
		}
	}

	return p.err
}

func writeInstances(p *printer, g *scene.Graph, name Namer, id scene.NodeID, depth, guard int) {
	instances := g.InstancesOf(id)
	if len(instances) == 0 {
		p.printf(depth, "%s", name(id))
		return
	}

	p.printf(depth, "%s has %d instances:", name(id), len(instances))

	if guard > g.Len() {
		p.printf(depth+1, "...")
		return
	}

	for _, instance := range instances {
		writeInstances(p, g, name, instance, depth+1, guard+1)
	}
}

// WriteVisibility prints the visibility of every reachable node and of each
// of its fields and parameters.
func WriteVisibility(w io.Writer, g *scene.Graph, vis alias.Visibility, name Namer) error {
	p := &printer{w: w}
	if vis == nil {
		vis = alias.Nothing
	}

	for _, id := range g.All() {
		n := g.Node(id)
		p.printf(0, "%s visible: %s", name(id), strconv.FormatBool(vis.NodeVisible(id)))

		for _, fid := range slices.Concat(n.Parameters(), n.Fields()) {
			p.printf(1, "%s visible: %s", g.Field(fid).Name(), strconv.FormatBool(vis.FieldVisible(fid)))
		}
	}

	return p.err
}
