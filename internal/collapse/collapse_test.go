package collapse_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/collapse"
	"proto-collapse/internal/scene"
)

func TestCollapseChain(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	g := c.g

	types := func(n scene.NodeID) []scene.FieldType {
		var out []scene.FieldType
		for _, fid := range g.Node(n).Fields() {
			out = append(out, g.Field(fid).Type())
		}

		return out
	}
	i2Types := types(c.i2)

	report, err := collapse.Collapse(g, c.vis)
	require.NoError(t, err, spew.Sdump(report))

	assert.Nil(t, g.Node(c.i1))
	assert.Nil(t, g.Node(c.texture))
	assert.NotNil(t, g.Node(c.s))
	assert.NotNil(t, g.Node(c.i2))

	for _, name := range []string{"baseColor", "roughness", "texture"} {
		assert.Equal(t, c.fieldOf(c.s, name), g.Field(c.fieldOf(c.i2, name)).Parameter(), name)
	}

	assert.Equal(t, scene.NoNode, g.Node(c.i2).Alias())
	assert.Equal(t, i2Types, types(c.i2))
	assert.Equal(t, []scene.NodeID{c.i1}, report.Collapsed)
	assert.Equal(t, []scene.NodeID{c.i2}, report.Detached)
	assert.Equal(t, 3, report.RetargetedFields)
	assert.Equal(t, 5, report.NodesBefore)
	assert.Equal(t, 3, report.NodesAfter)
	assert.Equal(t, 2, report.Deleted())
	assert.True(t, report.Changed())
	assert.Equal(t, []scene.NodeID{c.s, c.i2}, g.Field(c.children).Nodes())

	requireNoDangling(t, g)
}

func TestCollapseIsIdempotent(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)

	_, err := collapse.Collapse(c.g, c.vis)
	require.NoError(t, err)

	version, size := c.g.Version(), c.g.Len()

	report, err := collapse.Collapse(c.g, c.vis)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Equal(t, size, c.g.Len())
	assert.Equal(t, version, c.g.Version())
}

func TestCollapseLongChainsSettleInOnePass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		instances int
		collapsed []int
		detached  []int
	}{
		{name: "three levels", instances: 2, collapsed: []int{1}, detached: []int{2}},
		{name: "four levels", instances: 3, collapsed: []int{3, 1}, detached: []int{2}},
		{name: "five levels", instances: 4, collapsed: []int{3, 1}, detached: []int{2, 4}},
	}

	pick := func(chain []scene.NodeID, at []int) []scene.NodeID {
		out := make([]scene.NodeID, 0, len(at))
		for _, k := range at {
			out = append(out, chain[k])
		}

		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, chain := newLongChain(t, tt.instances)

			report, err := collapse.Collapse(f.g, f.vis)
			require.NoError(t, err, spew.Sdump(report))

			assert.Equal(t, pick(chain, tt.collapsed), report.Collapsed)
			assert.Equal(t, pick(chain, tt.detached), report.Detached)

			for _, id := range report.Detached {
				assert.Equal(t, scene.NoNode, f.g.Node(id).Alias())

				mirrored := f.g.Field(f.fieldOf(id, "baseColor")).Parameter()
				require.NotEqual(t, scene.NoField, mirrored)
				assert.NotNil(t, f.g.Node(f.g.Field(mirrored).Owner()))
			}

			requireNoDangling(t, f.g)

			version, size := f.g.Version(), f.g.Len()

			again, err := collapse.Collapse(f.g, f.vis)
			require.NoError(t, err)
			assert.False(t, again.Changed(), spew.Sdump(again))
			assert.Equal(t, size, f.g.Len())
			assert.Equal(t, version, f.g.Version())
		})
	}
}

func TestCollapseFiveLevelChainMirrorsSurvivors(t *testing.T) {
	t.Parallel()

	f, chain := newLongChain(t, 4)

	_, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	for _, name := range []string{"baseColor", "roughness", "texture"} {
		assert.Equal(t, f.fieldOf(chain[0], name), f.g.Field(f.fieldOf(chain[2], name)).Parameter(), name)
		assert.Equal(t, f.fieldOf(chain[2], name), f.g.Field(f.fieldOf(chain[4], name)).Parameter(), name)
	}
}

func TestCollapseVisibleParameterVetoes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.appearance(f.children)

	p := f.g.AddProto("Robot", "Robot")
	f.attach(f.children, p)
	param, err := f.g.AddParameter(p, "appearance", scene.SFNode)
	require.NoError(t, err)

	d := f.appearance(param)
	f.mirror(d, s)
	f.vis.ShowField(param)

	version := f.g.Version()

	report, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	assert.False(t, report.Changed())
	assert.Equal(t, version, f.g.Version())
	assert.NotNil(t, f.g.Field(param))
	assert.NotNil(t, f.g.Node(d))
	assert.Equal(t, []scene.NodeID{d}, f.g.Field(param).Nodes())
}

func TestCollapseVisibleFieldVetoes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.appearance(f.children)
	n := f.appearance(f.children)
	f.mirror(n, s)
	f.vis.ShowField(f.fieldOf(n, "roughness"))

	report, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	assert.False(t, report.Changed())
	assert.NotNil(t, f.g.Node(n))
	assert.NotNil(t, f.g.Node(s))
	assert.Equal(t, s, f.g.Node(n).Alias())
}

func TestCollapseVisibilityVeto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		show func(c *chainScene)
	}{
		{name: "node", show: func(c *chainScene) { c.vis.ShowNode(c.i1) }},
		{name: "field", show: func(c *chainScene) { c.vis.ShowField(c.fieldOf(c.i1, "baseColor")) }},
		{name: "descendant", show: func(c *chainScene) { c.vis.ShowNode(c.texture) }},
		{name: "descendant field", show: func(c *chainScene) { c.vis.ShowField(c.fieldOf(c.texture, "url")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newChainScene(t)
			tt.show(c)

			report, err := collapse.Collapse(c.g, c.vis)
			require.NoError(t, err)

			assert.False(t, report.Changed())
			assert.NotNil(t, c.g.Node(c.i1))
			assert.Equal(t, c.i1, c.g.Node(c.i2).Alias())
		})
	}
}

func TestCollapseNeverSelectsChainRoots(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	c.vis.HideNode(c.s)

	plan := collapse.New(collapse.DefaultConfig()).Plan(c.g, c.vis)
	require.NotEmpty(t, plan.Collapsible)

	for _, id := range plan.Collapsible {
		assert.NotEqual(t, scene.NoNode, c.g.Node(id).Alias(), "%s has no alias", id)
	}

	assert.NotContains(t, plan.Collapsible, c.s)
	assert.NotContains(t, plan.Collapsible, c.root)
}

func TestCollapseListParameterKeepsOtherEntries(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.appearance(f.children)

	p := f.g.AddProto("Robot", "Robot")
	f.attach(f.children, p)
	list, err := f.g.AddParameter(p, "appearances", scene.MFNode)
	require.NoError(t, err)

	a := f.appearance(list)
	d := f.appearance(list)
	b := f.appearance(list)
	f.mirror(d, s)

	report, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	assert.Nil(t, f.g.Node(d))
	assert.NotNil(t, f.g.Node(p))
	assert.Equal(t, []scene.FieldID{list}, f.g.Node(p).Parameters())
	assert.Equal(t, []scene.NodeID{a, b}, f.g.Field(list).Nodes())
	assert.Zero(t, report.RemovedParameters)
	assert.True(t, report.Diagnostics.HasCode(collapse.CodeListParameter))

	requireNoDangling(t, f.g)
}

func TestCollapseListParameterMixedVisibility(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.appearance(f.children)

	p := f.g.AddProto("Robot", "Robot")
	f.attach(f.children, p)
	list, err := f.g.AddParameter(p, "appearances", scene.MFNode)
	require.NoError(t, err)

	d1 := f.appearance(list)
	d2 := f.appearance(list)
	d3 := f.appearance(list)

	for _, d := range []scene.NodeID{d1, d2, d3} {
		f.mirror(d, s)
	}

	f.vis.ShowField(f.fieldOf(d2, "baseColor"))

	report, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	assert.Equal(t, []scene.NodeID{d3, d1}, report.Collapsed)
	assert.Equal(t, []scene.NodeID{d2}, f.g.Field(list).Nodes())
	assert.Equal(t, s, f.g.Node(d2).Alias())
	assert.Zero(t, report.RemovedParameters)

	requireNoDangling(t, f.g)
}

func TestCollapseDropsEmptiedParameter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.appearance(f.children)

	p := f.g.AddProto("Robot", "Robot")
	f.attach(f.children, p)
	param, err := f.g.AddParameter(p, "appearance", scene.SFNode)
	require.NoError(t, err)
	body := f.field(p, "bodyAppearance", scene.SFNode)
	require.NoError(t, f.g.SetFieldParameter(body, param))

	d := f.appearance(param)
	f.mirror(d, s)

	report, err := collapse.Collapse(f.g, f.vis)
	require.NoError(t, err)

	assert.Nil(t, f.g.Node(d))
	assert.Nil(t, f.g.Field(param))
	assert.Empty(t, f.g.Node(p).Parameters())
	assert.Equal(t, scene.NoField, f.g.Field(body).Parameter())
	assert.Equal(t, 1, report.RemovedParameters)

	requireNoDangling(t, f.g)
}

func TestCollapseWithoutAliasesChangesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := f.appearance(f.children)
	b := f.appearance(f.children)
	tex := f.imageTexture(f.fieldOf(a, "texture"), "textures/metal.png")

	before := f.g.Clone()
	version := f.g.Version()

	report, err := collapse.Collapse(f.g, alias.Nothing)
	require.NoError(t, err)

	assert.False(t, report.Changed())
	assert.Equal(t, version, f.g.Version())
	assert.Equal(t, before.Len(), f.g.Len())
	assert.Equal(t, before.NodeIDs(), f.g.NodeIDs())

	for _, id := range []scene.NodeID{f.root, a, b, tex} {
		assert.Equal(t, before.Children(id), f.g.Children(id))

		for _, fid := range f.g.Node(id).Fields() {
			assert.True(t, before.Field(fid).Value().Equal(f.g.Field(fid).Value()))
		}
	}
}

func TestCollapseEmptyGraph(t *testing.T) {
	t.Parallel()

	report, err := collapse.Collapse(scene.NewGraph(), nil)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Zero(t, report.NodesBefore)
}

func TestCollapseMissingParentLeavesGraphUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.imageTexture(f.children, "a.png")

	detached := f.g.AddNode("Group")
	f.field(detached, "children", scene.MFNode)
	require.NoError(t, f.g.SetAlias(f.root, detached))

	version := f.g.Version()
	c := collapse.New(collapse.DefaultConfig())

	report, err := c.Collapse(f.g, f.vis)
	require.ErrorIs(t, err, collapse.ErrInvariant)

	assert.True(t, report.Diagnostics.HasCode(collapse.CodeMissingParent), spew.Sdump(report.Diagnostics))
	assert.False(t, report.Changed())
	assert.Equal(t, version, f.g.Version())
	assert.Equal(t, collapse.PhaseIdle, c.Phase())
}

func TestCollapseArityMismatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	terminal := f.appearance(f.children)
	middle := f.appearance(f.children)
	leaf := f.appearance(f.children)
	f.mirror(middle, terminal)
	f.mirror(leaf, middle)
	f.field(middle, "transparency", scene.SFFloat, "0")

	version := f.g.Version()

	report, err := collapse.Collapse(f.g, f.vis)
	require.ErrorIs(t, err, collapse.ErrInvariant)

	assert.True(t, report.Diagnostics.HasCode(collapse.CodeArityMismatch))
	assert.True(t, report.Diagnostics.HasCode(collapse.CodeDanglingAlias))
	assert.Equal(t, version, f.g.Version())
	assert.NotNil(t, f.g.Node(middle))
}

func TestCollapseSplicesStrayFields(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) (*chainScene, scene.FieldID) {
		t.Helper()

		c := newChainScene(t)
		material := c.g.AddNode("Material")
		color := c.field(material, "diffuseColor", scene.SFColor, "0 0 1")
		c.attach(c.children, material)
		require.NoError(t, c.g.SetFieldParameter(color, c.fieldOf(c.i1, "baseColor")))

		return c, color
	}

	t.Run("lenient", func(t *testing.T) {
		t.Parallel()

		c, color := build(t)

		report, err := collapse.Collapse(c.g, c.vis)
		require.NoError(t, err)

		assert.True(t, report.Diagnostics.HasCode(collapse.CodeStraySplice))
		assert.Len(t, report.Diagnostics.Warnings, 1)
		assert.Equal(t, c.fieldOf(c.s, "baseColor"), c.g.Field(color).Parameter())
		requireNoDangling(t, c.g)
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		c, _ := build(t)
		config := collapse.DefaultConfig()
		config.Strict = true

		report, err := collapse.New(config).Collapse(c.g, c.vis)
		require.ErrorIs(t, err, collapse.ErrInvariant)

		require.Len(t, report.Diagnostics.Errors, 1)
		assert.Equal(t, collapse.CodeStraySplice, report.Diagnostics.Errors[0].Code)
		assert.NotNil(t, c.g.Node(c.i1))
	})
}

func TestCollapseCopiesValueWhenChainEndsInside(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	rough := c.fieldOf(c.i1, "roughness")
	require.NoError(t, c.g.SetFieldParameter(rough, scene.NoField))
	require.NoError(t, c.g.SetItems(rough, "0.25"))

	_, err := collapse.Collapse(c.g, c.vis)
	require.NoError(t, err)

	f := c.g.Field(c.fieldOf(c.i2, "roughness"))
	assert.Equal(t, scene.NoField, f.Parameter())
	assert.Equal(t, []string{"0.25"}, f.Value().Items)
}

func TestCollapseWarnsWhenNodeValueIsDropped(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	require.NoError(t, c.g.SetFieldParameter(c.fieldOf(c.i1, "texture"), scene.NoField))

	report, err := collapse.Collapse(c.g, c.vis)
	require.NoError(t, err)

	require.True(t, report.Diagnostics.HasCode(collapse.CodeNodeValueDropped), spew.Sdump(report.Diagnostics))
	assert.Len(t, report.Diagnostics.Warnings, 1)
	assert.Equal(t, "texture", report.Diagnostics.Warnings[0].Field)

	tex := c.g.Field(c.fieldOf(c.i2, "texture"))
	assert.Equal(t, scene.NoField, tex.Parameter())
	assert.Empty(t, tex.Nodes())
	assert.Nil(t, c.g.Node(c.texture))

	requireNoDangling(t, c.g)
}

func TestCollapseDetachesInstancesOfDescendants(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	copied := c.imageTexture(c.children, "textures/stone.png")
	c.mirror(copied, c.texture)
	c.vis.ShowNode(copied)

	report, err := collapse.Collapse(c.g, c.vis)
	require.NoError(t, err)

	assert.Contains(t, report.Detached, copied)
	assert.True(t, report.Diagnostics.HasCode(collapse.CodeDescendantSource))
	assert.Equal(t, scene.NoNode, c.g.Node(copied).Alias())

	url := c.g.Field(c.fieldOf(copied, "url"))
	assert.Equal(t, scene.NoField, url.Parameter())
	assert.Equal(t, []string{"textures/wood.png"}, url.Value().Items)

	requireNoDangling(t, c.g)
}

func TestCollapsePhases(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)

	var phases []collapse.Phase
	config := collapse.DefaultConfig()
	config.OnPhase = func(p collapse.Phase) { phases = append(phases, p) }
	collapser := collapse.New(config)

	plan := collapser.Plan(c.g, c.vis)
	assert.Equal(t, []collapse.Phase{collapse.PhaseSelecting, collapse.PhaseIdle}, phases)

	phases = nil
	_, err := collapser.Apply(c.g, plan)
	require.NoError(t, err)

	assert.Equal(t, []collapse.Phase{
		collapse.PhaseSwapping,
		collapse.PhaseClearingInternal,
		collapse.PhaseDeleting,
		collapse.PhaseIdle,
	}, phases)
	assert.Equal(t, collapse.PhaseIdle, collapser.Phase())
	assert.Equal(t, "ClearingInternal", collapse.PhaseClearingInternal.String())
}

func TestApplyRejectsStalePlan(t *testing.T) {
	t.Parallel()

	c := newChainScene(t)
	collapser := collapse.New(collapse.DefaultConfig())

	plan := collapser.Plan(c.g, c.vis)
	c.imageTexture(c.children, "late.png")

	_, err := collapser.Apply(c.g, plan)
	require.ErrorIs(t, err, collapse.ErrStalePlan)
	assert.NotNil(t, c.g.Node(c.i1))

	plan = collapser.Plan(c.g, c.vis)
	_, err = collapser.Apply(c.g, plan)
	require.NoError(t, err)

	_, err = collapser.Apply(c.g, plan)
	require.ErrorIs(t, err, collapse.ErrStalePlan)
}

func TestPlanValidateFindsParameterCycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		splice func(c *chainScene) collapse.FieldRetarget
	}{
		{
			name: "loop through a retarget",
			splice: func(c *chainScene) collapse.FieldRetarget {
				return collapse.FieldRetarget{Field: c.fieldOf(c.s, "baseColor"), From: scene.NoField, To: c.fieldOf(c.i2, "baseColor")}
			},
		},
		{
			name: "field mirrors itself",
			splice: func(c *chainScene) collapse.FieldRetarget {
				color := c.fieldOf(c.s, "baseColor")
				return collapse.FieldRetarget{Field: color, From: scene.NoField, To: color}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newChainScene(t)
			collapser := collapse.New(collapse.DefaultConfig())

			plan := collapser.Plan(c.g, c.vis)
			require.False(t, plan.Validate(c.g).HasErrors())

			plan.Splices = append(plan.Splices, tt.splice(c))

			diags := plan.Validate(c.g)
			require.True(t, diags.HasCode(collapse.CodeParameterCycle), spew.Sdump(diags))
			assert.Len(t, diags.Errors, 1)
			assert.Equal(t, "baseColor", diags.Errors[0].Field)

			version := c.g.Version()

			_, err := collapser.Apply(c.g, plan)
			require.ErrorIs(t, err, collapse.ErrInvariant)
			assert.Equal(t, version, c.g.Version())
			assert.NotNil(t, c.g.Node(c.i1))
		})
	}
}

func TestPlanValidateEmptyGraph(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	plan := collapse.New(collapse.DefaultConfig()).Plan(f.g, f.vis)

	diags := plan.Validate(f.g)
	assert.False(t, diags.HasErrors())
	assert.True(t, plan.Empty())
}
