// Package scene provides the node/field graph of a loaded scene description.
//
// Nodes and fields live in an arena and are addressed by stable integer IDs
// that are assigned at creation and never reused. Every cross reference is an
// ID, never a pointer:
//   - ownership: a node-valued field holds child IDs, the child records its
//     parent node and parent field
//   - alias: an instance node records the parameter-source node it mirrors;
//     the reverse index lives in an instances.Tracker
//   - parameter: a field records the field it mirrors; the mirrored field keeps
//     the reverse list of its internal fields
//
// Mutators keep both directions of every link consistent and reject changes
// that would break model, arity or type agreement between linked nodes.
// A Graph is not safe for concurrent use.
package scene
