// Package pipeline orchestrates the one-shot corpus computation:
// normalize → build → validate → sequence. Data flows strictly forward and
// every stage runs to completion synchronously, so independent corpora can
// be processed in parallel with no shared state.
package pipeline

import (
	"context"
	"errors"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/graph"
	"github.com/coursekit/coursegraph/internal/issue"
	"github.com/coursekit/coursegraph/internal/sequence"
	"github.com/coursekit/coursegraph/internal/validate"
)

// Result is everything one pipeline run derives from a corpus snapshot.
type Result struct {
	// Graph is the dependency graph, present even when issues were found so
	// callers can still inspect structure.
	Graph *graph.Graph
	// Issues is the complete, sorted diagnostic set. Empty means the corpus
	// was accepted.
	Issues issue.List
	// Sequences maps course slug to its lab ordering. Populated only when
	// Issues is empty: a corpus with structural problems is never sequenced.
	Sequences map[string]*sequence.Sequence
}

// OK reports whether the corpus was accepted without issues.
func (r *Result) OK() bool {
	return len(r.Issues) == 0
}

// Run executes the full pipeline over one immutable corpus snapshot. Records
// that fail normalization are reported as issues and excluded from the
// graph; everything else proceeds so that a single run surfaces every
// problem the corpus has.
func Run(ctx context.Context, records []content.Raw) *Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run: pipeline started.", "record_count", len(records))

	var issues issue.List
	units := make([]*content.Unit, 0, len(records))
	for _, raw := range records {
		unit, err := content.Normalize(raw)
		if err != nil {
			var iss *issue.Issue
			if errors.As(err, &iss) {
				issues.Add(*iss)
				continue
			}
			issues.Add(issue.Issue{Kind: issue.MalformedRecord, Detail: err.Error()})
			continue
		}
		units = append(units, unit)
	}
	logger.Debug("Run: normalization complete.",
		"unit_count", len(units), "rejected_count", len(records)-len(units))

	g := graph.Build(ctx, units)
	issues = append(issues, validate.Corpus(ctx, g)...)

	result := &Result{Graph: g, Issues: issues}
	if !result.OK() {
		result.Issues.Sort()
		logger.Debug("Run: corpus rejected.", "issue_count", len(result.Issues))
		return result
	}

	result.Sequences = make(map[string]*sequence.Sequence)
	for _, courseSlug := range g.Courses() {
		seq, err := sequence.ForCourse(ctx, g, courseSlug)
		if err != nil {
			// Defensive: validation already proved the graph acyclic, but a
			// sequencing failure must never yield a partial ordering.
			var iss *issue.Issue
			if errors.As(err, &iss) {
				result.Issues.Add(*iss)
			} else {
				result.Issues.Add(issue.Issue{Kind: issue.CyclicDependency, Detail: err.Error()})
			}
			continue
		}
		result.Sequences[courseSlug] = seq
	}
	if !result.OK() {
		result.Sequences = nil
	}
	result.Issues.Sort()

	logger.Debug("Run: pipeline finished.",
		"issue_count", len(result.Issues), "course_count", len(result.Sequences))
	return result
}
