// Package issue defines the diagnostic taxonomy for structural problems in a
// content corpus. Issues are collected, never thrown one at a time: every
// stage of the pipeline accumulates its findings into a single List so the
// build tooling can report all problems in one pass.
package issue

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a single corpus problem.
type Kind int

const (
	// MalformedRecord marks a raw record that could not be normalized
	// (missing or empty slug, unknown kind, mistyped field).
	MalformedRecord Kind = iota
	// SelfDependency marks a unit that lists its own slug as a prerequisite.
	SelfDependency
	// DuplicateSlug marks a slug shared by more than one unit.
	DuplicateSlug
	// UnresolvedPrerequisite marks a prerequisite reference that does not
	// resolve to any unit in the corpus.
	UnresolvedPrerequisite
	// CyclicDependency marks a prerequisite cycle; the issue carries the
	// full cycle path for diagnosability.
	CyclicDependency
)

// String returns the stable machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case MalformedRecord:
		return "malformed_record"
	case SelfDependency:
		return "self_dependency"
	case DuplicateSlug:
		return "duplicate_slug"
	case UnresolvedPrerequisite:
		return "unresolved_prerequisite"
	case CyclicDependency:
		return "cyclic_dependency"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Issue is one structural problem found in the corpus.
type Issue struct {
	// Kind classifies the problem.
	Kind Kind
	// Slugs names the offending unit(s). For CyclicDependency it holds the
	// full cycle path in order, starting at the lexicographically smallest
	// slug of the cycle.
	Slugs []string
	// Detail is a human-readable elaboration, safe to print verbatim.
	Detail string
}

// New constructs an issue.
func New(kind Kind, detail string, slugs ...string) *Issue {
	return &Issue{Kind: kind, Slugs: slugs, Detail: detail}
}

// Error implements the error interface so normalization failures can travel
// as ordinary Go errors and be folded back into a List by the pipeline.
func (i *Issue) Error() string {
	if i == nil {
		return ""
	}
	if len(i.Slugs) == 0 {
		return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Kind, strings.Join(i.Slugs, ", "), i.Detail)
}

// List is an ordered collection of issues.
type List []Issue

// Add appends an issue to the list.
func (l *List) Add(i Issue) {
	*l = append(*l, i)
}

// OfKind returns the subset of issues with the given kind, preserving order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, i := range l {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Sort orders the list by (kind, first slug, detail) so that reports are
// reproducible across builds of unchanged content.
func (l List) Sort() {
	sort.SliceStable(l, func(a, b int) bool {
		if l[a].Kind != l[b].Kind {
			return l[a].Kind < l[b].Kind
		}
		as, bs := firstSlug(l[a]), firstSlug(l[b])
		if as != bs {
			return as < bs
		}
		return l[a].Detail < l[b].Detail
	})
}

func firstSlug(i Issue) string {
	if len(i.Slugs) == 0 {
		return ""
	}
	return i.Slugs[0]
}
