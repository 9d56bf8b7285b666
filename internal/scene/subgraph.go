package scene

// SubgraphOptions tunes which descendants Subgraph enumerates.
type SubgraphOptions struct {
	// IncludeSelf puts the starting node first in the result.
	IncludeSelf bool
	// IncludeHidden descends into fields flagged hidden.
	IncludeHidden bool
	// IncludeInternal descends into the body fields of prototype nodes,
	// not only into their parameters.
	IncludeInternal bool
}

// Subgraph enumerates the descendants of node in pre-order: a node always
// comes before everything it owns, parameters before regular fields.
// Walking the result backwards therefore visits the deepest nodes first.
func (g *Graph) Subgraph(node NodeID, opts SubgraphOptions) []NodeID {
	n := g.Node(node)
	if n == nil {
		return nil
	}

	var out []NodeID
	if opts.IncludeSelf {
		out = append(out, node)
	}

	g.collect(n, opts, &out)

	return out
}

func (g *Graph) collect(n *Node, opts SubgraphOptions, out *[]NodeID) {
	visit := func(ids []FieldID) {
		for _, fid := range ids {
			f := g.fields[fid]
			if f.hidden && !opts.IncludeHidden {
				continue
			}

			for _, child := range f.value.Nodes {
				*out = append(*out, child)
				g.collect(g.nodes[child], opts, out)
			}
		}
	}

	visit(n.parameters)

	if n.kind != KindProto || opts.IncludeInternal {
		visit(n.fields)
	}
}

// All returns the subgraph of the root with every filter open.
func (g *Graph) All() []NodeID {
	return g.Subgraph(g.root, SubgraphOptions{IncludeSelf: true, IncludeHidden: true, IncludeInternal: true})
}
