// Package esnode defines the syntax tree the lint rules operate on.
//
// The tree follows the ESTree vocabulary for the handful of node kinds the rules
// care about and keeps everything else as a generic passthrough node. Every node
// carries a read-only link to its syntactic parent which is set once by [Link]
// when the tree is built.
//
// Node kinds are checked with the Is* predicates of this package. They are total:
// nil nodes and nodes of any other kind yield false, so callers may access the
// kind specific fields right after a true result.
package esnode
