package scene

import (
	"errors"
	"fmt"
	"slices"
)

// CheckInvariants verifies the structural invariants of the graph:
// linked nodes agree in model, arity and field types, the instance index
// matches the alias links, parents reference their children, and no link
// points at a deleted node or field. All violations are joined.
func (g *Graph) CheckInvariants() error {
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrBrokenInvariant, fmt.Sprintf(format, args...)))
	}

	live := 0

	for _, n := range g.nodes {
		if n == nil {
			continue
		}

		live++

		g.checkAlias(n, fail)

		if n.parent != NoNode {
			pf := g.Field(n.parentField)
			if g.Node(n.parent) == nil || pf == nil || pf.owner != n.parent || !slices.Contains(pf.value.Nodes, n.id) {
				fail("%s has stale parent %s", n.id, n.parent)
			}
		}

		for _, fid := range slices.Concat(n.parameters, n.fields) {
			f := g.Field(fid)
			if f == nil || f.owner != n.id {
				fail("%s lists field %s it does not own", n.id, fid)
				continue
			}

			g.checkField(f, fail)
		}
	}

	if live != g.liveNodes {
		fail("live node count %d, recorded %d", live, g.liveNodes)
	}

	for _, f := range g.fields {
		if f == nil {
			continue
		}

		if owner := g.Node(f.owner); owner == nil ||
			!slices.Contains(owner.fields, f.id) && !slices.Contains(owner.parameters, f.id) {
			fail("field %s %q is orphaned", f.id, f.name)
		}
	}

	for _, source := range g.tracker.Sources() {
		if g.Node(source) == nil {
			fail("instance index keeps deleted source %s", source)
		}
	}

	return errors.Join(errs...)
}

func (g *Graph) checkAlias(n *Node, fail func(string, ...any)) {
	tracked, ok := g.tracker.SourceOf(n.id)

	switch {
	case n.alias == NoNode && ok:
		fail("%s has stale instance index entry to %s", n.id, tracked)
	case n.alias != NoNode && (!ok || tracked != n.alias):
		fail("%s alias %s missing from instance index", n.id, n.alias)
	}

	if n.alias != NoNode {
		if src := g.Node(n.alias); src == nil {
			fail("%s aliases deleted node %s", n.id, n.alias)
		} else if err := g.compatible(n, src); err != nil {
			fail("%s alias %s: %v", n.id, n.alias, err)
		}
	}

	for _, instance := range g.tracker.InstancesOf(n.id) {
		if i := g.Node(instance); i == nil || i.alias != n.id {
			fail("instance index lists %s under %s", instance, n.id)
		}
	}
}

func (g *Graph) checkField(f *Field, fail func(string, ...any)) {
	if f.parameter != NoField {
		p := g.Field(f.parameter)

		switch {
		case p == nil:
			fail("field %s %q mirrors deleted field %s", f.id, f.name, f.parameter)
		case !slices.Contains(p.internal, f.id):
			fail("field %s %q missing from internal list of %s", f.id, f.name, f.parameter)
		case p.typ != f.typ:
			fail("field %s %q is %s, parameter is %s", f.id, f.name, f.typ, p.typ)
		}
	}

	for _, id := range f.internal {
		if internal := g.Field(id); internal == nil || internal.parameter != f.id {
			fail("field %s %q lists stale internal field %s", f.id, f.name, id)
		}
	}

	for _, c := range f.value.Nodes {
		if child := g.Node(c); child == nil || child.parent != f.owner || child.parentField != f.id {
			fail("field %s %q holds stale child %s", f.id, f.name, c)
		}
	}
}
