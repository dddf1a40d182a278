package app

import (
	"context"
	"fmt"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/frontmatter"
	"github.com/coursekit/coursegraph/internal/nav"
	"github.com/coursekit/coursegraph/internal/pipeline"
)

// Run executes one full build pass: load the corpus, run the pipeline, and
// print the report. The returned error is non-nil when the run itself failed
// or when strict mode is on and the corpus has issues.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	records, fileErrs, err := frontmatter.Load(ctx, a.siteCfg.ContentRoot, a.siteCfg.Extensions)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	for _, fe := range fileErrs {
		a.logger.Warn("Skipping unreadable content file.", "path", fe.Path, "error", fe.Err)
	}

	// Courses declared in site.hcl have no content file of their own; fold
	// them into the corpus as plain records.
	for _, c := range a.siteCfg.Courses {
		records = append(records, content.Raw{
			"slug":  c.Slug,
			"kind":  string(content.KindCourse),
			"title": c.Title,
		})
	}
	a.logger.Info("Corpus loaded.", "record_count", len(records))

	result := pipeline.Run(ctx, records)
	a.printReport(result, appConfig)

	if a.siteCfg.Strict {
		if len(fileErrs) > 0 {
			return fmt.Errorf("%d content file(s) could not be read", len(fileErrs))
		}
		if !result.OK() {
			return fmt.Errorf("corpus has %d issue(s)", len(result.Issues))
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printReport writes the human-readable build report: every issue found, or
// the per-course sequences plus, when a course filter is set, its navigation
// table for the supplied completion set.
func (a *App) printReport(result *pipeline.Result, appConfig *Config) {
	if !result.OK() {
		fmt.Fprintf(a.outW, "Found %d issue(s):\n", len(result.Issues))
		for _, iss := range result.Issues {
			fmt.Fprintf(a.outW, "  - %s\n", iss.Detail)
		}
		return
	}

	fmt.Fprintf(a.outW, "Corpus OK: %d unit(s), %d course(s).\n",
		result.Graph.Len(), len(result.Sequences))

	for _, courseSlug := range result.Graph.Courses() {
		if appConfig.Course != "" && appConfig.Course != courseSlug {
			continue
		}
		seq, ok := result.Sequences[courseSlug]
		if !ok {
			continue
		}

		fmt.Fprintf(a.outW, "\nCourse %s:\n", courseSlug)
		for i, slug := range seq.Labs {
			fmt.Fprintf(a.outW, "  %2d. %s\n", i+1, slug)
		}

		if appConfig.Course == "" {
			continue
		}
		completed := make(map[string]bool, len(appConfig.Completed))
		for _, slug := range appConfig.Completed {
			completed[slug] = true
		}
		views := nav.Derive(result.Graph, seq, completed)
		fmt.Fprintf(a.outW, "\nNavigation (completed: %d):\n", len(completed))
		for _, slug := range seq.Labs {
			v := views[slug]
			state := "locked"
			if v.Unlocked {
				state = "unlocked"
			}
			fmt.Fprintf(a.outW, "  %-24s prev=%-24s next=%-24s %s\n",
				slug, orNone(v.Previous), orNone(v.Next), state)
		}
	}
}

func orNone(slug string) string {
	if slug == "" {
		return "-"
	}
	return slug
}
