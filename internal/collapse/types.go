package collapse

import (
	"proto-collapse/internal/diagnostic"
	"proto-collapse/internal/scene"
)

// Diagnostic codes reported while planning.
const (
	CodeModelMismatch     = "model_mismatch"
	CodeArityMismatch     = "arity_mismatch"
	CodeFieldTypeMismatch = "field_type_mismatch"
	CodeMissingSource     = "missing_source"
	CodeMissingParent     = "missing_parent"
	CodeParameterCycle    = "parameter_cycle"
	CodeDanglingAlias     = "dangling_alias"
	CodeDanglingParameter = "dangling_parameter"
	CodeStraySplice       = "stray_field_splice"
	CodeDescendantSource  = "descendant_source"
	CodeListParameter     = "list_parameter_shrunk"
	CodeNodeValueDropped  = "node_value_dropped"
)

// Plan is a fully resolved collapse pass, computed against one version of a
// graph and applicable to that version only.
type Plan struct {
	// Version is the graph version the plan was computed against.
	Version uint64
	// Nodes is the pre-order enumeration of the graph at planning time.
	Nodes []scene.NodeID
	// Collapsible lists the selected nodes in enumeration order.
	Collapsible []scene.NodeID
	// Doomed lists the collapsible nodes and their descendants.
	Doomed []scene.NodeID
	// Swaps detach surviving instances from doomed sources.
	Swaps []Swap
	// Splices retarget remaining surviving fields that mirror doomed fields.
	Splices []FieldRetarget
	// Internal lists the doomed fields whose reverse links are cleared.
	Internal []scene.FieldID
	// Deletions run in order, deepest collapsible node first.
	Deletions []Deletion
	// Diagnostics collects everything found while planning and validating.
	Diagnostics diagnostic.Diagnostics
}

// Swap moves one instance off its doomed source.
type Swap struct {
	Instance scene.NodeID
	Source   scene.NodeID
	// Collapsed is false when Source is only deleted as a descendant of a
	// collapsible node.
	Collapsed bool
	Fields    []FieldRetarget
}

// FieldRetarget replaces the parameter of Field.
type FieldRetarget struct {
	Field scene.FieldID
	From  scene.FieldID
	// To is the first surviving field up the parameter chain of From, or
	// NoField when the chain ends inside the doomed set.
	To scene.FieldID
	// Items, when To is NoField on a scalar field, is the value the chain
	// ended on. It is copied into Field. Node-valued fields keep their own
	// value.
	Items []string
}

// Deletion removes one collapsible node.
type Deletion struct {
	Node scene.NodeID
	// Parameter is set when the node is held by a parameter of a surviving
	// prototype-nesting parent.
	Parameter *ParameterEdit
}

// ParameterEdit is a parameter of a prototype-nesting parent that holds the
// node being deleted.
type ParameterEdit struct {
	Parent scene.NodeID
	Field  scene.FieldID
	// DropField is set when no surviving entry is left in the field.
	DropField bool
}

// Empty reports whether applying the plan would change nothing.
func (p *Plan) Empty() bool {
	return len(p.Swaps) == 0 && len(p.Splices) == 0 && len(p.Deletions) == 0
}

// Report summarises an applied pass.
type Report struct {
	NodesBefore       int
	NodesAfter        int
	Collapsed         []scene.NodeID
	Detached          []scene.NodeID
	RetargetedFields  int
	ClearedInternal   int
	RemovedParameters int
	Diagnostics       diagnostic.Diagnostics
}

// Changed reports whether the pass mutated the graph.
func (r *Report) Changed() bool {
	return r.NodesAfter != r.NodesBefore || r.RetargetedFields > 0 || len(r.Detached) > 0
}

// Deleted returns how many nodes the pass removed, descendants included.
func (r *Report) Deleted() int {
	return r.NodesBefore - r.NodesAfter
}
