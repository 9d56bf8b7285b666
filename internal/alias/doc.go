// Package alias classifies nodes of a scene graph for collapse.
//
// Two questions are answered:
//   - ChainCollapsible: given where a node sits in an alias chain, could it
//     be removed at all
//   - CollapsibleRoot: is the node an invisible internal copy of a terminal
//     parameter-source node, with no visible field or descendant, so that its
//     instances can be spliced onto the next link up and the node deleted
//
// Visibility dominates structure: a visible node, a visible field of the
// node, or anything visible below it vetoes collapse regardless of how the
// alias chain is shaped.
package alias
