package scene

//go:generate go tool stringer -type=NodeKind -trimprefix=Kind -output=nodekind_string.go

// NodeKind is the closed set of node variants.
type NodeKind int

const (
	// KindStandard is an ordinary node: its fields are its whole interface.
	KindStandard NodeKind = iota
	// KindProto is a prototype-nesting node hosting one instantiation of a
	// template. Its parameters are the exposed interface, its fields are the
	// internal body of the instantiation.
	KindProto
)

// ProtoInfo is the payload carried by KindProto nodes.
type ProtoInfo struct {
	// Template names the prototype this node instantiates.
	Template string
}
