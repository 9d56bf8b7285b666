// Package collapse removes redundant proto-parameter nodes from a scene graph.
//
// A node is collapsible when it is invisible, nothing it owns is visible and
// its alias is the terminal node of an alias chain. Collapsing it means every
// node that mirrored it mirrors the terminal node directly, after which the
// node and its subtree can be deleted.
//
// A pass runs in four phases:
//
//  1. Selecting: classify every node reachable from the root and pick the
//     collapsible ones. The doomed set is those nodes plus everything they own.
//     Instances about to be detached from a doomed source count as chain
//     terminals, and selection repeats until it stops growing.
//  2. Swapping: every surviving node whose alias is doomed has its fields
//     retargeted one by one to the first surviving field up the parameter
//     chain, then its alias cleared.
//  3. Clearing internal: the reverse links of the doomed fields are dropped.
//  4. Deleting: doomed nodes are deleted deepest first. A prototype-nesting
//     parent loses the parameter entry that held the node, and the whole
//     parameter field once it is empty.
//
// The pass is all-or-nothing. Phases 1 to 4 are first resolved into a Plan
// against the untouched graph. A plan with errors, or one whose retargeted
// field links would form a cycle, is rejected. Otherwise it is applied to a clone, the clone is checked for structural invariants and
// only then swapped in place of the original graph.
package collapse
