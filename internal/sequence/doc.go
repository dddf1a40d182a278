// Package sequence turns the validated dependency graph into per-course
// linear lab orderings. Ordering is a heap-based Kahn topological sort over
// the in-course subgraph with a deterministic tie-break, so unchanged
// content always produces byte-identical sequences.
package sequence
