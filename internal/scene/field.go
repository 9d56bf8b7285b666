package scene

import "slices"

// Field is a named, typed value slot of a node.
type Field struct {
	id          FieldID
	name        string
	typ         FieldType
	owner       NodeID
	isParameter bool
	hidden      bool
	value       Value
	parameter   FieldID
	internal    []FieldID
}

// ID returns the stable identifier of the field.
func (f *Field) ID() FieldID { return f.id }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the declared type.
func (f *Field) Type() FieldType { return f.typ }

// Owner returns the node the field belongs to.
func (f *Field) Owner() NodeID { return f.owner }

// IsParameter reports whether the field is declared at a prototype boundary.
func (f *Field) IsParameter() bool { return f.isParameter }

// Hidden reports whether the field is excluded from ordinary traversal.
func (f *Field) Hidden() bool { return f.hidden }

// Value returns a copy of the stored value.
func (f *Field) Value() Value { return f.value.Clone() }

// Nodes returns the node references held by a node-valued field.
func (f *Field) Nodes() []NodeID { return slices.Clone(f.value.Nodes) }

// Parameter returns the field this one mirrors, or NoField.
// Reads and writes of a field with a parameter flow through the parameter.
func (f *Field) Parameter() FieldID { return f.parameter }

// Internal returns the fields that mirror this one.
func (f *Field) Internal() []FieldID { return slices.Clone(f.internal) }

func (f *Field) clone() *Field {
	c := *f
	c.value = f.value.Clone()
	c.internal = slices.Clone(f.internal)

	return &c
}
