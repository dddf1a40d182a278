// Package nav derives the navigation view models the rendering layer
// consumes: previous/next neighbors within a course sequence and the unlock
// state against a visitor's completed-slug set.
package nav

import (
	"github.com/coursekit/coursegraph/internal/graph"
	"github.com/coursekit/coursegraph/internal/sequence"
)

// View is the navigation state of one unit. Previous and Next are empty at
// the sequence boundaries.
type View struct {
	Previous string
	Next     string
	Unlocked bool
}

// Derive computes a View for every slug in the sequence. Unlocking honors
// the full dependency graph, not just the course: a unit is unlocked only
// when every transitively reachable prerequisite, in-course or not, is in
// the completed set.
//
// Derive is pure. It mutates neither the graph nor the sequence, so it is
// safe to call repeatedly with a different completed set per visitor.
func Derive(g *graph.Graph, seq *sequence.Sequence, completed map[string]bool) map[string]View {
	views := make(map[string]View, len(seq.Labs))
	for i, slug := range seq.Labs {
		v := View{Unlocked: unlocked(g, slug, completed)}
		if i > 0 {
			v.Previous = seq.Labs[i-1]
		}
		if i < len(seq.Labs)-1 {
			v.Next = seq.Labs[i+1]
		}
		views[slug] = v
	}
	return views
}

// unlocked walks every prerequisite edge reachable from slug, so multi-hop
// chains are honored: one incomplete ancestor anywhere keeps the unit
// locked.
func unlocked(g *graph.Graph, slug string, completed map[string]bool) bool {
	visited := map[string]bool{slug: true}
	frontier := g.Dependencies(slug)

	for len(frontier) > 0 {
		prereq := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if visited[prereq] {
			continue
		}
		visited[prereq] = true

		if !completed[prereq] {
			return false
		}
		frontier = append(frontier, g.Dependencies(prereq)...)
	}
	return true
}
