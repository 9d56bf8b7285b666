package scene

import "errors"

var (
	ErrUnknownNode     = errors.New("unknown node")
	ErrUnknownField    = errors.New("unknown field")
	ErrModelMismatch   = errors.New("model mismatch")
	ErrArityMismatch   = errors.New("field arity mismatch")
	ErrTypeMismatch    = errors.New("field type mismatch")
	ErrAliasCycle      = errors.New("alias cycle")
	ErrNotNodeField    = errors.New("field does not hold nodes")
	ErrNotProto        = errors.New("only prototype nodes declare parameters")
	ErrNotParameter    = errors.New("field is not a parameter of node")
	ErrAlreadyOwned    = errors.New("node already has a parent")
	ErrFieldOccupied   = errors.New("single-valued field already holds a value")
	ErrOwnershipCycle  = errors.New("node would own one of its ancestors")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrRootDeletion    = errors.New("root node cannot be deleted")
	ErrDuplicateField  = errors.New("duplicate field name")
	ErrBrokenInvariant = errors.New("graph invariant broken")
)
