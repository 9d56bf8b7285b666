package alias

import (
	"github.com/hashicorp/go-set/v3"

	"proto-collapse/internal/scene"
)

// DefaultMaxDepth bounds alias-chain descent.
const DefaultMaxDepth = 64

// Resolver evaluates collapse predicates against one graph and visibility.
// It never mutates the graph.
type Resolver struct {
	graph    *scene.Graph
	vis      Visibility
	maxDepth int
	detached *set.Set[scene.NodeID]
}

// NewResolver creates a Resolver. A nil visibility means Nothing and a
// non-positive maxDepth means DefaultMaxDepth.
func NewResolver(graph *scene.Graph, vis Visibility, maxDepth int) *Resolver {
	if vis == nil {
		vis = Nothing
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Resolver{graph: graph, vis: vis, maxDepth: maxDepth, detached: set.New[scene.NodeID](0)}
}

// Detach makes the resolver treat nodes as having no alias, the state they
// are left in once a pass swaps them off a deleted source.
func (r *Resolver) Detach(nodes ...scene.NodeID) {
	r.detached.InsertSlice(nodes)
}

func (r *Resolver) aliasOf(n *scene.Node) scene.NodeID {
	if r.detached.Contains(n.ID()) {
		return scene.NoNode
	}

	return n.Alias()
}

// ChainDepth returns how many alias links separate node from the terminal
// node of its chain: 0 for a node without alias. It returns -1 when the chain
// is broken or longer than the configured limit.
func (r *Resolver) ChainDepth(node scene.NodeID) int {
	return r.chainDepth(node, 0)
}

func (r *Resolver) chainDepth(node scene.NodeID, depth int) int {
	n := r.graph.Node(node)
	if n == nil || depth > r.maxDepth {
		return -1
	}

	source := r.aliasOf(n)
	if source == scene.NoNode {
		return depth
	}

	return r.chainDepth(source, depth+1)
}

// ChainCollapsible reports whether node, reached depth links into an alias
// walk, could be removed: never at the start of the walk and never when
// visible. It also refuses chains that do not terminate within the
// resolver's depth limit, so a broken or runaway chain is never collapsed.
func (r *Resolver) ChainCollapsible(node scene.NodeID, depth int) bool {
	remaining := r.ChainDepth(node)
	if remaining < 0 || depth+remaining > r.maxDepth {
		return false
	}

	return depth != 0 && !r.vis.NodeVisible(node)
}

// CollapsibleRoot reports whether node can be collapsed: it is invisible, its
// alias is the terminal node of a chain, the field holding it is invisible,
// and neither its own fields nor anything it owns is visible.
func (r *Resolver) CollapsibleRoot(node scene.NodeID) bool {
	n := r.graph.Node(node)
	if n == nil || r.vis.NodeVisible(node) {
		return false
	}

	if holder := n.ParentField(); holder != scene.NoField && r.vis.FieldVisible(holder) {
		return false
	}

	source := r.graph.Node(r.aliasOf(n))
	if source == nil || r.aliasOf(source) != scene.NoNode {
		return false
	}

	return !r.exposes(node)
}

// exposes reports whether node or anything below it carries a visible node
// or field.
func (r *Resolver) exposes(node scene.NodeID) bool {
	subtree := r.graph.Subgraph(node, scene.SubgraphOptions{IncludeSelf: true, IncludeHidden: true, IncludeInternal: true})

	for _, id := range subtree {
		if r.vis.NodeVisible(id) || r.VisibleField(id) != scene.NoField {
			return true
		}
	}

	return false
}

// VisibleField returns the first visible field or parameter of node, or NoField.
func (r *Resolver) VisibleField(node scene.NodeID) scene.FieldID {
	n := r.graph.Node(node)
	if n == nil {
		return scene.NoField
	}

	for _, ids := range [][]scene.FieldID{n.Fields(), n.Parameters()} {
		for _, id := range ids {
			if r.vis.FieldVisible(id) {
				return id
			}
		}
	}

	return scene.NoField
}

// Classification is the full set of flags computed for one node.
type Classification struct {
	Node             scene.NodeID
	Model            string
	Visible          bool
	VisibleField     scene.FieldID
	IsProto          bool
	HasInstances     bool
	Alias            scene.NodeID
	ChainDepth       int
	ChainCollapsible bool
	CollapsibleRoot  bool
}

// Classify evaluates every predicate for each node, in the given order.
func (r *Resolver) Classify(nodes []scene.NodeID) []Classification {
	out := make([]Classification, 0, len(nodes))

	for _, id := range nodes {
		n := r.graph.Node(id)
		if n == nil {
			continue
		}

		// a node some instance points at is at least one link into a walk
		hasInstances := len(r.graph.InstancesOf(id)) > 0
		reached := 0
		if hasInstances {
			reached = 1
		}

		out = append(out, Classification{
			Node:             id,
			Model:            n.Model(),
			Visible:          r.vis.NodeVisible(id),
			VisibleField:     r.VisibleField(id),
			IsProto:          n.IsProto(),
			HasInstances:     hasInstances,
			Alias:            r.aliasOf(n),
			ChainDepth:       r.ChainDepth(id),
			ChainCollapsible: r.ChainCollapsible(id, reached),
			CollapsibleRoot:  r.CollapsibleRoot(id),
		})
	}

	return out
}
