package alias

import (
	"slices"

	"github.com/hashicorp/go-set/v3"

	"proto-collapse/internal/scene"
)

// Visibility answers whether a node or field can be referenced from outside
// its prototype instantiation, e.g. by the document model or external tools.
type Visibility interface {
	NodeVisible(id scene.NodeID) bool
	FieldVisible(id scene.FieldID) bool
}

// Nothing is a Visibility under which no node or field is visible.
var Nothing Visibility = nothing{}

type nothing struct{}

func (nothing) NodeVisible(scene.NodeID) bool   { return false }
func (nothing) FieldVisible(scene.FieldID) bool { return false }

// VisibilitySet is a Visibility backed by explicit sets of visible IDs.
type VisibilitySet struct {
	nodes  *set.Set[scene.NodeID]
	fields *set.Set[scene.FieldID]
}

// NewVisibilitySet creates an empty set: nothing is visible.
func NewVisibilitySet() *VisibilitySet {
	return &VisibilitySet{
		nodes:  set.New[scene.NodeID](0),
		fields: set.New[scene.FieldID](0),
	}
}

// ShowNode marks nodes visible.
func (v *VisibilitySet) ShowNode(ids ...scene.NodeID) {
	v.nodes.InsertSlice(ids)
}

// ShowField marks fields visible.
func (v *VisibilitySet) ShowField(ids ...scene.FieldID) {
	v.fields.InsertSlice(ids)
}

// HideNode removes nodes from the visible set.
func (v *VisibilitySet) HideNode(ids ...scene.NodeID) {
	v.nodes.RemoveSlice(ids)
}

// HideField removes fields from the visible set.
func (v *VisibilitySet) HideField(ids ...scene.FieldID) {
	v.fields.RemoveSlice(ids)
}

// NodeVisible implements Visibility.
func (v *VisibilitySet) NodeVisible(id scene.NodeID) bool {
	return v.nodes.Contains(id)
}

// FieldVisible implements Visibility.
func (v *VisibilitySet) FieldVisible(id scene.FieldID) bool {
	return v.fields.Contains(id)
}

// Nodes returns the visible nodes in ascending order.
func (v *VisibilitySet) Nodes() []scene.NodeID {
	out := v.nodes.Slice()
	slices.Sort(out)

	return out
}

// Fields returns the visible fields in ascending order.
func (v *VisibilitySet) Fields() []scene.FieldID {
	out := v.fields.Slice()
	slices.Sort(out)

	return out
}
