// Package inspect writes human-readable dumps of a scene graph and of a
// collapse plan: the node structure, the collapse flags of every node, the
// alias chains and the visibility of nodes and fields.
package inspect
