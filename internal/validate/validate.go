package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/graph"
	"github.com/coursekit/coursegraph/internal/issue"
)

// Corpus checks a built graph and returns the complete list of structural
// issues, or an empty list when the graph is acceptable. It never stops at
// the first finding: unresolved references, duplicate slugs, and cycles are
// all collected in one pass so build tooling can report everything at once.
//
// A graph with any issue must not be used for sequencing.
func Corpus(ctx context.Context, g *graph.Graph) issue.List {
	logger := ctxlog.FromContext(ctx)
	var issues issue.List

	for _, d := range g.Dangling() {
		issues.Add(issue.Issue{
			Kind:   issue.UnresolvedPrerequisite,
			Slugs:  []string{d.From, d.Missing},
			Detail: fmt.Sprintf("%q lists prerequisite %q, which does not exist in the corpus", d.From, d.Missing),
		})
	}

	for _, slug := range g.Duplicates() {
		issues.Add(issue.Issue{
			Kind:   issue.DuplicateSlug,
			Slugs:  []string{slug},
			Detail: fmt.Sprintf("more than one unit uses slug %q", slug),
		})
	}

	for _, cycle := range findCycles(g) {
		issues.Add(issue.Issue{
			Kind:   issue.CyclicDependency,
			Slugs:  cycle,
			Detail: "prerequisite cycle: " + strings.Join(cycle, " -> "),
		})
	}

	logger.Debug("Corpus: validation complete.", "issue_count", len(issues))
	return issues
}

// DFS coloring states. A gray node is on the active traversal path; hitting
// one again means the path closed into a cycle.
const (
	white = iota
	gray
	black
)

// frame is one entry of the explicit DFS stack.
type frame struct {
	slug string
	succ []string
	next int
}

// findCycles detects every distinct prerequisite cycle reachable in the
// graph using an iterative three-color depth-first search. Work is linear in
// nodes plus edges; nodes finished once (black) are never re-entered, so
// there is no exhaustive path enumeration.
//
// Each cycle is returned rotated so its lexicographically smallest slug
// leads, and cycles already seen under another entry point are deduplicated.
func findCycles(g *graph.Graph) [][]string {
	color := make(map[string]int, g.Len())
	pathIndex := make(map[string]int, g.Len())
	var path []string

	var cycles [][]string
	seen := make(map[string]bool)

	// Roots iterate in sorted slug order so the traversal, and with it the
	// reported cycle set, is identical between runs.
	for _, root := range g.Slugs() {
		if color[root] != white {
			continue
		}

		stack := []*frame{{slug: root, succ: g.Dependents(root)}}
		color[root] = gray
		pathIndex[root] = len(path)
		path = append(path, root)

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next >= len(f.succ) {
				// All successors handled; retire the node.
				stack = stack[:len(stack)-1]
				color[f.slug] = black
				path = path[:len(path)-1]
				delete(pathIndex, f.slug)
				continue
			}

			succ := f.succ[f.next]
			f.next++

			switch color[succ] {
			case white:
				color[succ] = gray
				pathIndex[succ] = len(path)
				path = append(path, succ)
				stack = append(stack, &frame{slug: succ, succ: g.Dependents(succ)})
			case gray:
				// Back edge: the active path from succ to here is a cycle.
				cycle := canonicalCycle(path[pathIndex[succ]:])
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
	}

	return cycles
}

// canonicalCycle copies the cycle and rotates it so the lexicographically
// smallest slug comes first, giving every cycle one stable spelling no
// matter where the traversal entered it.
func canonicalCycle(cycle []string) []string {
	minIdx := 0
	for i, s := range cycle {
		if s < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[minIdx:]...)
	out = append(out, cycle[:minIdx]...)
	return out
}
