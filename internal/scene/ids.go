package scene

import "strconv"

// NodeID addresses a node in the graph arena.
type NodeID int32

// FieldID addresses a field in the graph arena.
type FieldID int32

const (
	NoNode  NodeID  = -1
	NoField FieldID = -1
)

// String returns "#<id>" or "<none>".
func (id NodeID) String() string {
	if id == NoNode {
		return "<none>"
	}

	return "#" + strconv.Itoa(int(id))
}

// String returns "@<id>" or "<none>".
func (id FieldID) String() string {
	if id == NoField {
		return "<none>"
	}

	return "@" + strconv.Itoa(int(id))
}
