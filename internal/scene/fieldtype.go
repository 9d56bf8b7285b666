package scene

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=FieldType -output=fieldtype_string.go

// FieldType is the declared type of a field: a base value type combined with
// single (SF) or ordered multiple (MF) arity.
type FieldType int

const (
	_ FieldType = iota // zero value is invalid

	SFBool
	SFInt32
	SFFloat
	SFString
	SFVec2f
	SFVec3f
	SFColor
	SFRotation
	SFNode
	MFBool
	MFInt32
	MFFloat
	MFString
	MFVec2f
	MFVec3f
	MFColor
	MFRotation
	MFNode
)

const multiOffset = MFBool - SFBool

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	return t >= SFBool && t <= MFNode
}

// IsMulti reports whether the field holds an ordered list of values.
func (t FieldType) IsMulti() bool {
	return t >= MFBool && t <= MFNode
}

// IsNode reports whether the field holds node references.
func (t FieldType) IsNode() bool {
	return t == SFNode || t == MFNode
}

// Single returns the single-valued counterpart of t.
func (t FieldType) Single() FieldType {
	if t.IsMulti() {
		return t - multiOffset
	}

	return t
}

// ParseFieldType parses names such as "SFVec3f" or "MFNode".
func ParseFieldType(s string) (FieldType, error) {
	for t := SFBool; t <= MFNode; t++ {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown field type %q", s)
}

// components returns how many whitespace-separated numbers make one item of t,
// or 0 when the item is not numeric.
func (t FieldType) components() int {
	switch t.Single() {
	case SFInt32, SFFloat:
		return 1
	case SFVec2f:
		return 2
	case SFVec3f, SFColor:
		return 3
	case SFRotation:
		return 4
	default:
		return 0
	}
}

// CheckItem validates one textual literal against the base type of t.
func (t FieldType) CheckItem(item string) error {
	switch base := t.Single(); base {
	case SFBool:
		switch item {
		case "TRUE", "FALSE", "true", "false":
			return nil
		}

		return fmt.Errorf("%w: %s expects TRUE or FALSE, got %q", ErrInvalidValue, base, item)

	case SFString:
		return nil

	case SFNode:
		return fmt.Errorf("%w: %s holds nodes, not literals", ErrInvalidValue, base)

	case SFInt32:
		if _, err := strconv.ParseInt(strings.TrimSpace(item), 10, 32); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, base, err)
		}

		return nil

	case SFFloat, SFVec2f, SFVec3f, SFColor, SFRotation:
		parts := strings.Fields(item)
		if len(parts) != base.components() {
			return fmt.Errorf("%w: %s expects %d numbers, got %q", ErrInvalidValue, base, base.components(), item)
		}

		for _, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, base, err)
			}

			if base == SFColor && (v < 0 || v > 1) {
				return fmt.Errorf("%w: %s component %v out of [0, 1]", ErrInvalidValue, base, v)
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: unknown type %s", ErrInvalidValue, t)
	}
}
