package collapse_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/scene"
)

type fixture struct {
	t        *testing.T
	g        *scene.Graph
	vis      *alias.VisibilitySet
	root     scene.NodeID
	children scene.FieldID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := scene.NewGraph()
	root := g.AddNode("Group")
	children, err := g.AddField(root, "children", scene.MFNode)
	require.NoError(t, err)
	require.NoError(t, g.SetRoot(root))

	return &fixture{t: t, g: g, vis: alias.NewVisibilitySet(), root: root, children: children}
}

func (f *fixture) field(node scene.NodeID, name string, typ scene.FieldType, items ...string) scene.FieldID {
	f.t.Helper()

	id, err := f.g.AddField(node, name, typ)
	require.NoError(f.t, err)

	if len(items) > 0 {
		require.NoError(f.t, f.g.SetItems(id, items...))
	}

	return id
}

func (f *fixture) attach(parent scene.FieldID, child scene.NodeID) {
	f.t.Helper()
	require.NoError(f.t, f.g.AttachChild(parent, child))
}

// appearance adds an Appearance held by parent.
func (f *fixture) appearance(parent scene.FieldID) scene.NodeID {
	f.t.Helper()

	n := f.g.AddNode("Appearance")
	f.field(n, "baseColor", scene.SFColor, "1 0 0")
	f.field(n, "roughness", scene.SFFloat, "0.5")
	f.field(n, "texture", scene.SFNode)
	f.attach(parent, n)

	return n
}

func (f *fixture) imageTexture(parent scene.FieldID, url string) scene.NodeID {
	f.t.Helper()

	n := f.g.AddNode("ImageTexture")
	f.field(n, "url", scene.MFString, url)
	f.attach(parent, n)

	return n
}

// mirror makes instance an alias of source, every field linked pairwise.
func (f *fixture) mirror(instance, source scene.NodeID) {
	f.t.Helper()

	require.NoError(f.t, f.g.SetAlias(instance, source))

	src := f.g.Node(source).Fields()
	for k, fid := range f.g.Node(instance).Fields() {
		require.NoError(f.t, f.g.SetFieldParameter(fid, src[k]))
	}
}

func (f *fixture) fieldOf(node scene.NodeID, name string) scene.FieldID {
	f.t.Helper()

	id, ok := f.g.FieldByName(node, name)
	require.True(f.t, ok, "%s has no field %q", node, name)

	return id
}

// chainScene is a visible source S mirrored by I1, itself mirrored by I2.
// I1 owns an ImageTexture.
type chainScene struct {
	*fixture
	s, i1, i2, texture scene.NodeID
}

func newChainScene(t *testing.T) *chainScene {
	t.Helper()

	f := newFixture(t)
	c := &chainScene{fixture: f}

	c.s = f.appearance(f.children)
	c.i1 = f.appearance(f.children)
	c.i2 = f.appearance(f.children)
	c.texture = f.imageTexture(f.fieldOf(c.i1, "texture"), "textures/wood.png")

	f.mirror(c.i1, c.s)
	f.mirror(c.i2, c.i1)
	f.vis.ShowNode(c.s)

	return c
}

// newLongChain builds a visible source followed by instances, each
// mirroring the node before it. The source is at index 0.
func newLongChain(t *testing.T, instances int) (*fixture, []scene.NodeID) {
	t.Helper()

	f := newFixture(t)
	chain := []scene.NodeID{f.appearance(f.children)}

	for range instances {
		n := f.appearance(f.children)
		f.mirror(n, chain[len(chain)-1])
		chain = append(chain, n)
	}

	f.vis.ShowNode(chain[0])

	return f, chain
}

// requireNoDangling checks that no surviving link points at a deleted node
// or field.
func requireNoDangling(t *testing.T, g *scene.Graph) {
	t.Helper()

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Alias() != scene.NoNode {
			require.NotNil(t, g.Node(n.Alias()), "%s aliases a deleted node", id)
		}

		for _, fid := range slices.Concat(n.Parameters(), n.Fields()) {
			if p := g.Field(fid).Parameter(); p != scene.NoField {
				require.NotNil(t, g.Field(p), "%s mirrors a deleted field", fid)
				require.NotNil(t, g.Node(g.Field(p).Owner()))
			}
		}
	}

	require.NoError(t, g.CheckInvariants())
}
