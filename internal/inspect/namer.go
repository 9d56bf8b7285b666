package inspect

import (
	"proto-collapse/internal/scene"
)

// Namer renders a node in dumps.
type Namer func(scene.NodeID) string

// ModelNamer names nodes by model and id, such as "Appearance#3".
func ModelNamer(g *scene.Graph) Namer {
	return func(id scene.NodeID) string {
		if n := g.Node(id); n != nil {
			return n.Model() + id.String()
		}

		return id.String()
	}
}

// LabelNamer prefixes the model name with the label of the node, if any.
func LabelNamer(g *scene.Graph, labels map[string]scene.NodeID) Namer {
	byID := make(map[scene.NodeID]string, len(labels))
	for label, id := range labels {
		byID[id] = label
	}

	model := ModelNamer(g)

	return func(id scene.NodeID) string {
		if label, ok := byID[id]; ok {
			return label + " (" + model(id) + ")"
		}

		return model(id)
	}
}

func fieldRef(g *scene.Graph, name Namer, id scene.FieldID) string {
	f := g.Field(id)
	if f == nil {
		return id.String()
	}

	return name(f.Owner()) + "." + f.Name()
}
