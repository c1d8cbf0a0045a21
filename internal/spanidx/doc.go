// Package spanidx provides an index of values attached to byte spans of a source file.
//
// Spans of one index must either be disjoint or nested: a span partially overlapping
// another one is rejected with [ErrPartialOverlap]. Under this invariant spans form a
// containment forest. Every level of the forest is kept in a red-black tree ordered
// "disjoint by position", so finding the innermost span covering an offset takes a
// logarithmic search per nesting level.
package spanidx
