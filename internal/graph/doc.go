// Package graph builds the immutable dependency graph over a normalized
// content corpus. Nodes are content units keyed by slug; a directed edge
// A → B records that B lists A among its prerequisites.
//
// Building never fails. Structural problems that need corpus-wide context
// (duplicate slugs, prerequisite references that resolve to nothing) are
// captured on the graph as data and reported by the validate package, so
// one build pass yields the complete diagnostic picture.
package graph
