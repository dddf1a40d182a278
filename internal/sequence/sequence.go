package sequence

import (
	"container/heap"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/graph"
	"github.com/coursekit/coursegraph/internal/issue"
)

// Sequence is the linear ordering of one course's labs, consistent with
// every prerequisite edge whose endpoints both lie inside the course.
type Sequence struct {
	CourseSlug string
	Labs       []string
}

// ForCourse computes the deterministic topological ordering of the labs
// belonging to courseSlug. Only in-course edges constrain position;
// cross-course prerequisites gate unlocking, not placement, so they are
// ignored here.
//
// The ready queue is a min-heap keyed by (order hint, slug): among
// simultaneously eligible labs, an explicit order hint ascending wins, labs
// without a hint rank after all hinted ones, and ascending slug breaks the
// remaining ties. Identical input therefore always yields the identical
// sequence, which static navigation links depend on.
//
// The graph is expected to be validated. If the in-course subgraph still
// turns out cyclic, a CyclicDependency error scoped to this course is
// returned instead of a partial sequence.
func ForCourse(ctx context.Context, g *graph.Graph, courseSlug string) (*Sequence, error) {
	logger := ctxlog.FromContext(ctx)

	labs := g.Labs(courseSlug)
	member := make(map[string]*content.Unit, len(labs))
	for _, lab := range labs {
		member[lab.Slug] = lab
	}

	// In-degree counts only prerequisites inside this course.
	indegree := make(map[string]int, len(labs))
	for _, lab := range labs {
		count := 0
		for _, dep := range g.Dependencies(lab.Slug) {
			if _, inCourse := member[dep]; inCourse {
				count++
			}
		}
		indegree[lab.Slug] = count
	}

	ready := &labHeap{}
	heap.Init(ready)
	for _, lab := range labs {
		if indegree[lab.Slug] == 0 {
			heap.Push(ready, lab)
		}
	}

	ordered := make([]string, 0, len(labs))
	for ready.Len() > 0 {
		lab := heap.Pop(ready).(*content.Unit)
		ordered = append(ordered, lab.Slug)

		for _, dep := range g.Dependents(lab.Slug) {
			next, inCourse := member[dep]
			if !inCourse {
				continue
			}
			indegree[dep]--
			if indegree[dep] == 0 {
				heap.Push(ready, next)
			}
		}
	}

	if len(ordered) != len(labs) {
		stuck := make([]string, 0, len(labs)-len(ordered))
		emitted := make(map[string]bool, len(ordered))
		for _, slug := range ordered {
			emitted[slug] = true
		}
		for _, lab := range labs {
			if !emitted[lab.Slug] {
				stuck = append(stuck, lab.Slug)
			}
		}
		sort.Strings(stuck)
		return nil, issue.New(issue.CyclicDependency,
			fmt.Sprintf("course %q has a prerequisite cycle among labs: %s",
				courseSlug, strings.Join(stuck, ", ")),
			stuck...)
	}

	logger.Debug("ForCourse: sequence computed.", "course", courseSlug, "lab_count", len(ordered))
	return &Sequence{CourseSlug: courseSlug, Labs: ordered}, nil
}

// labHeap is the ready queue for Kahn's algorithm: a min-heap over eligible
// labs keyed by (order hint, slug). A missing order hint sorts as +inf, so
// hinted labs always surface before unhinted ones.
type labHeap []*content.Unit

func (h labHeap) Len() int { return len(h) }

func (h labHeap) Less(i, j int) bool {
	oi, oj := orderKey(h[i]), orderKey(h[j])
	if oi != oj {
		return oi < oj
	}
	return h[i].Slug < h[j].Slug
}

func (h labHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *labHeap) Push(x any) { *h = append(*h, x.(*content.Unit)) }

func (h *labHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// orderKey widens the optional order hint into a total order.
func orderKey(u *content.Unit) int64 {
	if u.Order == nil {
		return int64(1) << 62
	}
	return int64(*u.Order)
}
