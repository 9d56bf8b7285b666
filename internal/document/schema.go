package document

import (
	"proto-collapse/internal/alias"
	"proto-collapse/internal/scene"
)

// CurrentVersion is the only document version understood.
const CurrentVersion = "1"

// File is the YAML form of a scene.
type File struct {
	Version  string     `yaml:"version"`
	Root     *NodeDef   `yaml:"root"`
	Detached []*NodeDef `yaml:"detached,omitempty"`
}

// NodeDef describes one node and everything it owns.
type NodeDef struct {
	// ID labels the node for alias and field references.
	ID    string `yaml:"id,omitempty"`
	Model string `yaml:"model"`
	// Proto names the template of a prototype-nesting node.
	Proto string `yaml:"proto,omitempty"`
	// Alias is the label of the parameter-source node.
	Alias      string     `yaml:"alias,omitempty"`
	Visible    bool       `yaml:"visible,omitempty"`
	Parameters []FieldDef `yaml:"parameters,omitempty"`
	Fields     []FieldDef `yaml:"fields,omitempty"`
}

// FieldDef describes one field or parameter.
type FieldDef struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Value Items      `yaml:"value,omitempty"`
	Nodes []*NodeDef `yaml:"nodes,omitempty"`
	// Is is the field this one mirrors.
	Is      *FieldRef `yaml:"is,omitempty"`
	Hidden  bool      `yaml:"hidden,omitempty"`
	Visible bool      `yaml:"visible,omitempty"`
}

// Items holds literal values. It accepts a single scalar or a list.
type Items []string

// FieldRef points at a field of a labelled node. Written as "label.name"
// or, for parameters, as {node: label, parameter: name}.
type FieldRef struct {
	Node      string
	Field     string
	Parameter bool
}

// Document is a built scene graph together with its visibility and labels.
type Document struct {
	Version    string
	Graph      *scene.Graph
	Visibility *alias.VisibilitySet
	Labels     map[string]scene.NodeID
}

// DecodeOptions tunes Build.
type DecodeOptions struct {
	// Lenient downgrades unresolved alias and field references to warnings;
	// the references are dropped.
	Lenient bool
}

// Label returns the label of id, or "" when it has none.
func (d *Document) Label(id scene.NodeID) string {
	for label, node := range d.Labels {
		if node == id {
			return label
		}
	}

	return ""
}
