package collapse

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/scene"
)

var everything = scene.SubgraphOptions{IncludeSelf: true, IncludeHidden: true, IncludeInternal: true}

type planner struct {
	graph       *scene.Graph
	resolver    *alias.Resolver
	plan        *Plan
	collapsible *set.Set[scene.NodeID]
	doomed      *set.Set[scene.NodeID]
}

// Plan resolves a pass over g without mutating it. The returned plan carries
// its own diagnostics; a plan with errors cannot be applied.
func (c *Collapser) Plan(g *scene.Graph, vis alias.Visibility) *Plan {
	defer c.enter(PhaseIdle)

	return c.plan(g, vis)
}

func (c *Collapser) plan(g *scene.Graph, vis alias.Visibility) *Plan {
	c.enter(PhaseSelecting)

	p := &planner{
		graph:       g,
		resolver:    alias.NewResolver(g, vis, c.config.MaxChainDepth),
		plan:        &Plan{Version: g.Version()},
		collapsible: set.New[scene.NodeID](0),
		doomed:      set.New[scene.NodeID](0),
	}

	p.selectNodes()
	p.planSwaps()
	p.planSplices()
	p.planInternal()
	p.planDeletions()

	p.plan.Diagnostics.Merge(*p.plan.Validate(g))
	if c.config.Strict {
		p.plan.Diagnostics.Escalate()
	}

	c.logger.Debug("collapse plan",
		slog.Int("nodes", len(p.plan.Nodes)),
		slog.Int("collapsible", len(p.plan.Collapsible)),
		slog.Int("doomed", len(p.plan.Doomed)),
		slog.Int("swaps", len(p.plan.Swaps)),
		slog.Int("splices", len(p.plan.Splices)),
		slog.Int("errors", len(p.plan.Diagnostics.Errors)),
	)

	return p.plan
}

// selectNodes repeats selection until it stops growing. Every surviving
// instance of a doomed node is detached by the pass, which can turn its own
// instances into collapsible roots; those are taken in the same pass so that
// a second pass finds nothing left to do.
func (p *planner) selectNodes() {
	g := p.graph
	p.plan.Nodes = g.All()

	for grew := true; grew; {
		grew = false

		for _, id := range p.plan.Nodes {
			if p.collapsible.Contains(id) || !p.resolver.CollapsibleRoot(id) {
				continue
			}

			p.collapsible.Insert(id)
			p.doomed.InsertSlice(g.Subgraph(id, everything))
			grew = true
		}

		for _, id := range g.NodeIDs() {
			if !p.doomed.Contains(id) && p.doomed.Contains(g.Node(id).Alias()) {
				p.resolver.Detach(id)
			}
		}
	}

	seen := set.New[scene.NodeID](p.doomed.Size())

	for _, id := range p.plan.Nodes {
		if !p.collapsible.Contains(id) {
			continue
		}

		p.plan.Collapsible = append(p.plan.Collapsible, id)

		for _, d := range g.Subgraph(id, everything) {
			if seen.Insert(d) {
				p.plan.Doomed = append(p.plan.Doomed, d)
			}
		}
	}
}

// planSwaps visits reachable nodes in enumeration order, then detached ones.
func (p *planner) planSwaps() {
	if p.doomed.Empty() {
		return
	}

	candidates := slices.Clone(p.plan.Nodes)
	reached := set.From(p.plan.Nodes)

	for _, id := range p.graph.NodeIDs() {
		if !reached.Contains(id) {
			candidates = append(candidates, id)
		}
	}

	for _, id := range candidates {
		if p.doomed.Contains(id) {
			continue
		}

		source := p.graph.Node(id).Alias()
		if source == scene.NoNode || !p.doomed.Contains(source) {
			continue
		}

		p.swap(id, source)
	}
}

func (p *planner) swap(instance, source scene.NodeID) {
	g := p.graph

	if err := g.CheckCompatible(instance, source); err != nil {
		p.plan.Diagnostics.AddError(mismatchCode(err), err.Error(), describe(g, instance), "")
		return
	}

	s := Swap{Instance: instance, Source: source, Collapsed: p.collapsible.Contains(source)}
	if !s.Collapsed {
		p.plan.Diagnostics.AddInfo(CodeDescendantSource,
			fmt.Sprintf("source %s is deleted with its ancestor", describe(g, source)),
			describe(g, instance), "")
	}

	fields, sourceFields := g.Node(instance).Fields(), g.Node(source).Fields()
	for k, fid := range fields {
		s.Fields = append(s.Fields, p.retarget(fid, sourceFields[k]))
	}

	p.plan.Swaps = append(p.plan.Swaps, s)
}

// planSplices catches surviving fields that mirror a doomed field without
// belonging to a swapped instance.
func (p *planner) planSplices() {
	if p.doomed.Empty() {
		return
	}

	g := p.graph
	swapped := set.New[scene.FieldID](0)

	for _, s := range p.plan.Swaps {
		for _, fr := range s.Fields {
			swapped.Insert(fr.Field)
		}
	}

	for _, id := range g.NodeIDs() {
		if p.doomed.Contains(id) {
			continue
		}

		n := g.Node(id)
		for _, fid := range slices.Concat(n.Parameters(), n.Fields()) {
			if swapped.Contains(fid) {
				continue
			}

			param := g.Field(fid).Parameter()
			if param == scene.NoField || !p.doomed.Contains(g.Field(param).Owner()) {
				continue
			}

			p.plan.Splices = append(p.plan.Splices, p.retarget(fid, param))
			p.plan.Diagnostics.AddWarning(CodeStraySplice,
				fmt.Sprintf("mirrored %q of deleted %s", fieldName(g, param), describe(g, g.Field(param).Owner())),
				describe(g, id), fieldName(g, fid))
		}
	}
}

// retarget points field at the first survivor up the parameter chain that
// starts at from, which is a doomed field.
func (p *planner) retarget(field, from scene.FieldID) FieldRetarget {
	g := p.graph
	fr := FieldRetarget{Field: field, From: g.Field(field).Parameter()}

	last := scene.NoField
	to := from

	for steps := 0; to != scene.NoField; steps++ {
		f := g.Field(to)
		if f == nil || steps > g.FieldLen() {
			to = scene.NoField
			break
		}

		if !p.doomed.Contains(f.Owner()) {
			break
		}

		last = to
		to = f.Parameter()
	}

	fr.To = to
	if to != scene.NoField || last == scene.NoField {
		return fr
	}

	f := g.Field(field)
	if !f.Type().IsNode() {
		fr.Items = g.Field(last).Value().Items
		return fr
	}

	if held := len(g.Field(last).Nodes()); held > 0 {
		p.plan.Diagnostics.AddWarning(CodeNodeValueDropped,
			fmt.Sprintf("%d node(s) of deleted %q are not carried over", held, fieldName(g, last)),
			describe(g, f.Owner()), f.Name())
	}

	return fr
}

func (p *planner) planInternal() {
	for _, id := range slices.Backward(p.plan.Collapsible) {
		n := p.graph.Node(id)
		p.plan.Internal = append(p.plan.Internal, slices.Concat(n.Parameters(), n.Fields())...)
	}
}

func (p *planner) planDeletions() {
	g := p.graph

	for _, id := range slices.Backward(p.plan.Collapsible) {
		n := g.Node(id)
		if n.Parent() == scene.NoNode {
			p.plan.Diagnostics.AddError(CodeMissingParent, "collapsible node has no parent", describe(g, id), "")
			continue
		}

		d := Deletion{Node: id}
		if !p.doomed.Contains(n.Parent()) {
			d.Parameter = p.parameterEdit(n)
		}

		p.plan.Deletions = append(p.plan.Deletions, d)
	}
}

// parameterEdit returns the edit of the prototype parameter holding n, nil
// when n is not held by a parameter.
func (p *planner) parameterEdit(n *scene.Node) *ParameterEdit {
	g := p.graph

	f := g.Field(n.ParentField())
	if f == nil || !f.IsParameter() {
		return nil
	}

	left := 0
	for _, held := range f.Nodes() {
		if !p.doomed.Contains(held) {
			left++
		}
	}

	if left > 0 {
		p.plan.Diagnostics.AddInfo(CodeListParameter,
			fmt.Sprintf("%s removed, %d entries kept", describe(g, n.ID()), left),
			describe(g, n.Parent()), f.Name())
	}

	return &ParameterEdit{Parent: n.Parent(), Field: f.ID(), DropField: left == 0}
}

func mismatchCode(err error) string {
	switch {
	case errors.Is(err, scene.ErrModelMismatch):
		return CodeModelMismatch
	case errors.Is(err, scene.ErrArityMismatch):
		return CodeArityMismatch
	case errors.Is(err, scene.ErrTypeMismatch):
		return CodeFieldTypeMismatch
	default:
		return CodeMissingSource
	}
}
