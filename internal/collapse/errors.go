package collapse

import "errors"

var (
	// ErrInvariant is returned when a pass would break a graph invariant. The
	// graph is left untouched.
	ErrInvariant = errors.New("collapse would break graph invariants")
	// ErrStalePlan is returned when a plan is applied to a graph that changed
	// since the plan was computed.
	ErrStalePlan = errors.New("plan was computed against another graph version")
)
