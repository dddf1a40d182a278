package graph

import (
	"sort"

	"github.com/coursekit/coursegraph/internal/content"
)

// node is a single vertex in the dependency graph. It is un-exported so all
// interaction goes through the Graph API using slugs, not struct pointers.
type node struct {
	unit *content.Unit
	// deps holds the units this node lists as prerequisites (predecessors).
	deps map[string]*node
	// dependents holds the units that list this node as a prerequisite
	// (successors).
	dependents map[string]*node
}

// Dangling describes a prerequisite reference whose target slug is absent
// from the corpus. The builder records these instead of silently dropping
// the edge; the validator surfaces them.
type Dangling struct {
	// From is the slug of the unit that declared the prerequisite.
	From string
	// Missing is the prerequisite slug that resolved to nothing.
	Missing string
}

// Graph is the directed dependency graph over a corpus, keyed by slug. An
// edge A → B means A is a prerequisite of B. Built once per corpus load and
// read-only afterward; no mutation methods are exported.
type Graph struct {
	nodes      map[string]*node
	dangling   []Dangling
	duplicates []string
}

// Len returns the number of units in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Slugs returns every slug in the graph in ascending lexicographic order.
// All graph traversal that feeds output iterates in this order so results
// are reproducible between builds.
func (g *Graph) Slugs() []string {
	slugs := make([]string, 0, len(g.nodes))
	for slug := range g.nodes {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Unit returns the unit stored under slug.
func (g *Graph) Unit(slug string) (*content.Unit, bool) {
	n, ok := g.nodes[slug]
	if !ok {
		return nil, false
	}
	return n.unit, true
}

// Dependencies returns the sorted slugs of the units slug directly depends
// on. Dangling references are not edges and do not appear here.
func (g *Graph) Dependencies(slug string) []string {
	n, ok := g.nodes[slug]
	if !ok {
		return nil
	}
	return sortedKeys(n.deps)
}

// Dependents returns the sorted slugs of the units that directly depend on
// slug.
func (g *Graph) Dependents(slug string) []string {
	n, ok := g.nodes[slug]
	if !ok {
		return nil
	}
	return sortedKeys(n.dependents)
}

// Dangling returns every unresolved prerequisite reference recorded during
// the build, ordered by (From, Missing).
func (g *Graph) Dangling() []Dangling {
	out := make([]Dangling, len(g.dangling))
	copy(out, g.dangling)
	sort.Slice(out, func(a, b int) bool {
		if out[a].From != out[b].From {
			return out[a].From < out[b].From
		}
		return out[a].Missing < out[b].Missing
	})
	return out
}

// Duplicates returns the sorted set of slugs that appeared on more than one
// unit in the corpus.
func (g *Graph) Duplicates() []string {
	out := make([]string, len(g.duplicates))
	copy(out, g.duplicates)
	sort.Strings(out)
	return out
}

// Courses returns the sorted slugs of all course units.
func (g *Graph) Courses() []string {
	var out []string
	for slug, n := range g.nodes {
		if n.unit.Kind == content.KindCourse {
			out = append(out, slug)
		}
	}
	sort.Strings(out)
	return out
}

// Labs returns the labs that belong to the given course, sorted by slug.
func (g *Graph) Labs(courseSlug string) []*content.Unit {
	var out []*content.Unit
	for _, n := range g.nodes {
		if n.unit.Kind == content.KindLab && n.unit.CourseSlug == courseSlug {
			out = append(out, n.unit)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Slug < out[b].Slug })
	return out
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
