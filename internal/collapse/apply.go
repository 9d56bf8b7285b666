package collapse

import (
	"fmt"
	"log/slog"

	"proto-collapse/internal/scene"
)

// Apply runs plan against g. The plan must have been computed against the
// current version of g, carry no errors and still pass Validate. Mutations
// happen on a clone that replaces g only once its invariants hold, so on
// error g is unchanged.
func (c *Collapser) Apply(g *scene.Graph, plan *Plan) (*Report, error) {
	defer c.enter(PhaseIdle)

	return c.apply(g, plan)
}

func (c *Collapser) apply(g *scene.Graph, plan *Plan) (*Report, error) {
	report := &Report{NodesBefore: g.Len(), NodesAfter: g.Len(), Diagnostics: plan.Diagnostics}

	if plan.Version != g.Version() {
		return report, fmt.Errorf("%w: planned at version %d, graph is at %d", ErrStalePlan, plan.Version, g.Version())
	}

	if plan.Diagnostics.HasErrors() {
		return report, fmt.Errorf("%w: %w", ErrInvariant, plan.Diagnostics.Error())
	}

	if plan.Empty() {
		c.logger.Debug("nothing to collapse", slog.Int("nodes", g.Len()))
		return report, nil
	}

	// plans are plain data and may have been edited since planning
	if diags := plan.Validate(g); diags.HasErrors() {
		return report, fmt.Errorf("%w: %w", ErrInvariant, diags.Error())
	}

	work := g.Clone()
	tally := &Report{}

	if err := c.run(work, plan, tally); err != nil {
		return report, fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	if err := work.CheckInvariants(); err != nil {
		return report, fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	g.Adopt(work)

	report.NodesAfter = g.Len()
	report.Collapsed = tally.Collapsed
	report.Detached = tally.Detached
	report.RetargetedFields = tally.RetargetedFields
	report.ClearedInternal = tally.ClearedInternal
	report.RemovedParameters = tally.RemovedParameters

	c.logger.Debug("collapse done",
		slog.Int("before", report.NodesBefore),
		slog.Int("after", report.NodesAfter),
		slog.Int("collapsed", len(report.Collapsed)),
	)

	return report, nil
}

func (c *Collapser) run(g *scene.Graph, plan *Plan, tally *Report) error {
	c.enter(PhaseSwapping)

	for _, s := range plan.Swaps {
		c.logger.Debug("swap instance",
			slog.String("instance", describe(g, s.Instance)),
			slog.String("source", describe(g, s.Source)),
		)

		for _, fr := range s.Fields {
			if err := retarget(g, fr); err != nil {
				return err
			}

			tally.RetargetedFields++
		}

		if err := g.SetAlias(s.Instance, scene.NoNode); err != nil {
			return err
		}

		tally.Detached = append(tally.Detached, s.Instance)
	}

	for _, fr := range plan.Splices {
		if err := retarget(g, fr); err != nil {
			return err
		}

		tally.RetargetedFields++
	}

	c.enter(PhaseClearingInternal)

	for _, fid := range plan.Internal {
		n, err := g.ClearInternalFields(fid)
		if err != nil {
			return err
		}

		tally.ClearedInternal += n
	}

	c.enter(PhaseDeleting)

	for _, d := range plan.Deletions {
		c.logger.Debug("delete node", slog.String("node", describe(g, d.Node)))

		if err := deleteNode(g, d, tally); err != nil {
			return err
		}

		tally.Collapsed = append(tally.Collapsed, d.Node)
	}

	return nil
}

func retarget(g *scene.Graph, fr FieldRetarget) error {
	if fr.To != scene.NoField || fr.Items == nil {
		return g.SetFieldParameter(fr.Field, fr.To)
	}

	if err := g.SetFieldParameter(fr.Field, scene.NoField); err != nil {
		return err
	}

	return g.SetItems(fr.Field, fr.Items...)
}

func deleteNode(g *scene.Graph, d Deletion, tally *Report) error {
	e := d.Parameter
	if e == nil {
		return g.DeleteNode(d.Node)
	}

	if err := g.RemoveNodeFromField(e.Field, d.Node); err != nil {
		return err
	}

	if f := g.Field(e.Field); f != nil && len(f.Nodes()) == 0 {
		if err := g.RemoveFieldFromParameters(e.Parent, e.Field); err != nil {
			return err
		}

		tally.RemovedParameters++
	}

	return nil
}
