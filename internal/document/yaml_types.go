package document

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Items YAML methods ---

// UnmarshalYAML accepts a single scalar or a sequence of scalars.
func (s *Items) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Items{node.Value}
		return nil

	case yaml.SequenceNode:
		items := make(Items, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected scalar in value list, got %v", item.Line, item.Kind)
			}

			items = append(items, item.Value)
		}

		*s = items

		return nil

	default:
		return fmt.Errorf("line %d: expected scalar or list, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes a single item as a scalar, otherwise a list.
func (s Items) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// --- FieldRef YAML methods ---

// UnmarshalYAML accepts "label.name", {node: label, field: name} or
// {node: label, parameter: name}.
func (r *FieldRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		label, name, ok := strings.Cut(node.Value, ".")
		if !ok || label == "" || name == "" {
			return fmt.Errorf("line %d: expected \"node.field\", got %q", node.Line, node.Value)
		}

		*r = FieldRef{Node: label, Field: name}

		return nil

	case yaml.MappingNode:
		var raw struct {
			Node      string `yaml:"node"`
			Field     string `yaml:"field"`
			Parameter string `yaml:"parameter"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		if raw.Node == "" {
			return fmt.Errorf("line %d: field reference without node", node.Line)
		}

		switch {
		case raw.Field != "" && raw.Parameter != "":
			return errors.New("field reference sets both field and parameter")
		case raw.Parameter != "":
			*r = FieldRef{Node: raw.Node, Field: raw.Parameter, Parameter: true}
		case raw.Field != "":
			*r = FieldRef{Node: raw.Node, Field: raw.Field}
		default:
			return fmt.Errorf("line %d: field reference without field or parameter", node.Line)
		}

		return nil

	default:
		return fmt.Errorf("line %d: expected string or map, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes field references in the short form.
func (r FieldRef) MarshalYAML() (any, error) {
	if !r.Parameter {
		return r.String(), nil
	}

	return map[string]string{"node": r.Node, "parameter": r.Field}, nil
}

func (r FieldRef) String() string {
	return r.Node + "." + r.Field
}
