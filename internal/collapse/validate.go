package collapse

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"proto-collapse/internal/diagnostic"
	"proto-collapse/internal/scene"
)

// Validate simulates the plan on g and reports every surviving link that
// would point into a deleted node, and every cycle the retargeted field
// links would form.
func (p *Plan) Validate(g *scene.Graph) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	doomed := set.From(p.Doomed)
	links := p.fieldLinks(g, doomed)

	p.validateDangling(g, doomed, links, diags)
	validateParameterCycles(g, links, diags)

	return diags
}

// fieldLinks maps every field of a surviving node to the parameter it mirrors
// once the plan's retargets are in place. Fields without parameter are left
// out.
func (p *Plan) fieldLinks(g *scene.Graph, doomed *set.Set[scene.NodeID]) map[scene.FieldID]scene.FieldID {
	retargeted := make(map[scene.FieldID]scene.FieldID)

	for _, s := range p.Swaps {
		for _, fr := range s.Fields {
			retargeted[fr.Field] = fr.To
		}
	}

	for _, fr := range p.Splices {
		retargeted[fr.Field] = fr.To
	}

	links := make(map[scene.FieldID]scene.FieldID)

	for _, id := range g.NodeIDs() {
		if doomed.Contains(id) {
			continue
		}

		n := g.Node(id)
		for _, fid := range slices.Concat(n.Parameters(), n.Fields()) {
			param := g.Field(fid).Parameter()
			if to, ok := retargeted[fid]; ok {
				param = to
			}

			if param != scene.NoField {
				links[fid] = param
			}
		}
	}

	return links
}

func (p *Plan) validateDangling(g *scene.Graph, doomed *set.Set[scene.NodeID], links map[scene.FieldID]scene.FieldID, diags *diagnostic.Diagnostics) {
	detached := set.New[scene.NodeID](len(p.Swaps))
	for _, s := range p.Swaps {
		detached.Insert(s.Instance)
	}

	for _, id := range g.NodeIDs() {
		if doomed.Contains(id) {
			continue
		}

		n := g.Node(id)

		switch source := n.Alias(); {
		case source == scene.NoNode:
		case g.Node(source) == nil:
			diags.AddError(CodeMissingSource, fmt.Sprintf("alias %s does not exist", source), describe(g, id), "")
		case doomed.Contains(source) && !detached.Contains(id):
			diags.AddError(CodeDanglingAlias,
				fmt.Sprintf("alias %s would be deleted", describe(g, source)), describe(g, id), "")
		}

		for _, fid := range slices.Concat(n.Parameters(), n.Fields()) {
			param, ok := links[fid]
			if !ok {
				continue
			}

			if pf := g.Field(param); pf == nil || doomed.Contains(pf.Owner()) {
				diags.AddError(CodeDanglingParameter,
					fmt.Sprintf("parameter %s would be deleted", param), describe(g, id), fieldName(g, fid))
			}
		}
	}
}

// validateParameterCycles runs a strongly connected component search over the
// field links left by the plan. Retargets that close a loop would leave a
// field mirroring itself.
func validateParameterCycles(g *scene.Graph, links map[scene.FieldID]scene.FieldID, diags *diagnostic.Diagnostics) {
	dg := simple.NewDirectedGraph()

	for _, field := range slices.Sorted(maps.Keys(links)) {
		param := links[field]
		if param == field {
			diags.AddError(CodeParameterCycle, "field mirrors itself", describe(g, g.Field(field).Owner()), fieldName(g, field))
			continue
		}

		dg.SetEdge(simple.Edge{F: simple.Node(field), T: simple.Node(param)})
	}

	var cycles [][]scene.FieldID

	for _, component := range topo.TarjanSCC(dg) {
		if len(component) < 2 {
			continue
		}

		members := make([]scene.FieldID, 0, len(component))
		for _, n := range component {
			members = append(members, scene.FieldID(n.ID()))
		}

		slices.Sort(members)
		cycles = append(cycles, members)
	}

	slices.SortFunc(cycles, func(a, b []scene.FieldID) int { return int(a[0] - b[0]) })

	for _, members := range cycles {
		names := make([]string, 0, len(members))
		for _, fid := range members {
			names = append(names, describe(g, g.Field(fid).Owner())+"."+fieldName(g, fid))
		}

		first := g.Field(members[0])
		diags.AddError(CodeParameterCycle, "parameter cycle through "+strings.Join(names, ", "),
			describe(g, first.Owner()), first.Name())
	}
}
