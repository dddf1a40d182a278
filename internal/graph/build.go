package graph

import (
	"context"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/ctxlog"
)

// Build assembles the full corpus of normalized units into a dependency
// graph. It never fails: duplicate slugs and unresolved prerequisite
// references are recorded on the graph for the validator to surface, so a
// single pass collects every problem instead of stopping at the first.
//
// When a slug appears on more than one unit, the first occurrence wins and
// the slug is recorded as a duplicate.
func Build(ctx context.Context, units []*content.Unit) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "unit_count", len(units))

	g := &Graph{nodes: make(map[string]*node, len(units))}

	// First pass: create one node per unique slug.
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if _, exists := g.nodes[u.Slug]; exists {
			if !seen[u.Slug] {
				g.duplicates = append(g.duplicates, u.Slug)
				seen[u.Slug] = true
			}
			logger.Warn("Duplicate slug found, keeping the first occurrence.", "slug", u.Slug)
			continue
		}
		g.nodes[u.Slug] = &node{
			unit:       u,
			deps:       make(map[string]*node),
			dependents: make(map[string]*node),
		}
	}
	logger.Debug("Build: node creation complete.", "node_count", len(g.nodes))

	// Second pass: link prerequisite edges now that the whole corpus is
	// known. Forward references across files resolve here; references to
	// slugs that never appeared become dangling descriptors.
	for _, n := range g.nodes {
		for _, prereq := range n.unit.Prerequisites {
			target, ok := g.nodes[prereq]
			if !ok {
				g.dangling = append(g.dangling, Dangling{From: n.unit.Slug, Missing: prereq})
				continue
			}
			n.deps[prereq] = target
			target.dependents[n.unit.Slug] = n
		}
	}
	logger.Debug("Build: edge linking complete.",
		"dangling_count", len(g.dangling), "duplicate_count", len(g.duplicates))

	return g
}
