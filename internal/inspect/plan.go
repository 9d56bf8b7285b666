package inspect

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"proto-collapse/internal/collapse"
	"proto-collapse/internal/diagnostic"
	"proto-collapse/internal/scene"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpPlan writes the raw Go structure of plan.
func DumpPlan(w io.Writer, plan *collapse.Plan) {
	dumper.Fdump(w, plan)
}

// WritePlan prints what applying plan to g would do, phase by phase.
func WritePlan(w io.Writer, g *scene.Graph, plan *collapse.Plan, name Namer) error {
	p := &printer{w: w}

	p.printf(0, "COLLAPSIBLE")
	for _, id := range plan.Collapsible {
		p.printf(1, "%s alias %s", name(id), name(g.Node(id).Alias()))
	}

	p.printf(0, "SWAP")
	for _, s := range plan.Swaps {
		p.printf(1, "%s off %s", name(s.Instance), name(s.Source))

		for _, fr := range s.Fields {
			writeRetarget(p, g, name, fr)
		}
	}

	for _, fr := range plan.Splices {
		p.printf(1, "splice")
		writeRetarget(p, g, name, fr)
	}

	p.printf(0, "CLEAR INTERNAL")
	for _, fid := range plan.Internal {
		if f := g.Field(fid); f != nil && len(f.Internal()) > 0 {
			p.printf(1, "%s (%d links)", fieldRef(g, name, fid), len(f.Internal()))
		}
	}

	p.printf(0, "DELETE")
	for _, d := range plan.Deletions {
		line := name(d.Node)
		if e := d.Parameter; e != nil {
			line += " from " + fieldRef(g, name, e.Field)
			if e.DropField {
				line += " (parameter dropped)"
			}
		}

		p.printf(1, "%s", line)
	}

	if p.err != nil {
		return p.err
	}

	return WriteDiagnostics(w, &plan.Diagnostics)
}

func writeRetarget(p *printer, g *scene.Graph, name Namer, fr collapse.FieldRetarget) {
	to := "value " + scene.Value{Items: fr.Items}.String()
	if fr.To != scene.NoField || fr.Items == nil {
		to = fieldRef(g, name, fr.To)
	}

	p.printf(2, "%s: %s -> %s", fieldRef(g, name, fr.Field), fieldRef(g, name, fr.From), to)
}

// WriteDiagnostics prints every diagnostic, errors first.
func WriteDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) error {
	p := &printer{w: w}

	for _, group := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings, diags.Infos} {
		for _, d := range group {
			p.printf(0, "%s: %s", d.Severity, d)
		}
	}

	return p.err
}
