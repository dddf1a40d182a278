package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/issue"
	"github.com/coursekit/coursegraph/internal/nav"
)

func rawLab(slug, course string, prereqs ...string) content.Raw {
	raw := content.Raw{"slug": slug, "kind": "lab", "courseSlug": course}
	if len(prereqs) > 0 {
		entries := make([]any, len(prereqs))
		for i, p := range prereqs {
			entries[i] = p
		}
		raw["prerequisites"] = entries
	}
	return raw
}

func rawCourse(slug string) content.Raw {
	return content.Raw{"slug": slug, "kind": "course"}
}

// The canonical three-lab scenario: one course, a linear chain.
func chainCorpus() []content.Raw {
	return []content.Raw{
		rawCourse("go-basics"),
		rawLab("lab1", "go-basics"),
		rawLab("lab2", "go-basics", "lab1"),
		rawLab("lab3", "go-basics", "lab2"),
	}
}

func TestRun_CleanCorpus(t *testing.T) {
	result := Run(context.Background(), chainCorpus())

	require.True(t, result.OK())
	require.Contains(t, result.Sequences, "go-basics")
	assert.Equal(t, []string{"lab1", "lab2", "lab3"}, result.Sequences["go-basics"].Labs)

	views := nav.Derive(result.Graph, result.Sequences["go-basics"], nil)
	assert.Equal(t, "lab1", views["lab2"].Previous)
	assert.Equal(t, "lab3", views["lab2"].Next)
}

func TestRun_MalformedRecordsBecomeIssues(t *testing.T) {
	records := append(chainCorpus(),
		// Missing slug, unknown kind, and a self-dependency.
		content.Raw{"kind": "lab"},
		content.Raw{"slug": "bad-kind", "kind": "seminar"},
		content.Raw{"slug": "loop", "kind": "lab", "prerequisites": []any{"loop"}},
	)

	result := Run(context.Background(), records)

	require.False(t, result.OK())
	assert.Len(t, result.Issues.OfKind(issue.MalformedRecord), 2)
	assert.Len(t, result.Issues.OfKind(issue.SelfDependency), 1)
	assert.Nil(t, result.Sequences)
}

func TestRun_RejectedCorpusIsNeverSequenced(t *testing.T) {
	records := append(chainCorpus(),
		rawLab("dangler", "go-basics", "does-not-exist"),
	)

	result := Run(context.Background(), records)

	require.False(t, result.OK())
	assert.Len(t, result.Issues.OfKind(issue.UnresolvedPrerequisite), 1)
	// The graph survives for inspection; sequences do not.
	assert.NotNil(t, result.Graph)
	assert.Nil(t, result.Sequences)
}

func TestRun_CycleBlocksSequencing(t *testing.T) {
	records := []content.Raw{
		rawCourse("c1"),
		rawLab("x", "c1", "z"),
		rawLab("y", "c1", "x"),
		rawLab("z", "c1", "y"),
	}

	result := Run(context.Background(), records)

	require.False(t, result.OK())
	cycles := result.Issues.OfKind(issue.CyclicDependency)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"x", "y", "z"}, cycles[0].Slugs)
	assert.Nil(t, result.Sequences)
}

func TestRun_IssuesAreSorted(t *testing.T) {
	records := []content.Raw{
		rawLab("z-dangler", "", "nowhere"),
		rawLab("a-dangler", "", "nowhere-else"),
		rawCourse("dup"),
		rawCourse("dup"),
		content.Raw{"kind": "lab"},
	}

	result := Run(context.Background(), records)
	require.False(t, result.OK())

	sorted := make(issue.List, len(result.Issues))
	copy(sorted, result.Issues)
	sorted.Sort()
	assert.Equal(t, sorted, result.Issues)
}

func TestRun_MultipleCourses(t *testing.T) {
	records := []content.Raw{
		rawCourse("c1"),
		rawCourse("c2"),
		rawLab("c1-intro", "c1"),
		rawLab("c1-deep", "c1", "c1-intro"),
		rawLab("c2-solo", "c2", "c1-deep"),
	}

	result := Run(context.Background(), records)

	require.True(t, result.OK())
	require.Len(t, result.Sequences, 2)
	assert.Equal(t, []string{"c1-intro", "c1-deep"}, result.Sequences["c1"].Labs)
	assert.Equal(t, []string{"c2-solo"}, result.Sequences["c2"].Labs)
}

func TestRun_IsIdempotent(t *testing.T) {
	// Determinism law: two runs over the unchanged corpus must agree on
	// every output, including navigation views.
	corpus := []content.Raw{
		rawCourse("c1"),
		rawCourse("c2"),
		rawLab("setup", "c1"),
		rawLab("build", "c1", "setup"),
		rawLab("test", "c1", "build"),
		rawLab("docs", "c1", "setup"),
		rawLab("adv", "c2", "test"),
	}

	first := Run(context.Background(), corpus)
	second := Run(context.Background(), corpus)

	require.True(t, first.OK())
	require.True(t, second.OK())

	if diff := cmp.Diff(first.Issues, second.Issues); diff != "" {
		t.Errorf("issue mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Sequences, second.Sequences); diff != "" {
		t.Errorf("sequence mismatch (-first +second):\n%s", diff)
	}

	for courseSlug, seq := range first.Sequences {
		completed := map[string]bool{"setup": true, "build": true}
		firstViews := nav.Derive(first.Graph, seq, completed)
		secondViews := nav.Derive(second.Graph, second.Sequences[courseSlug], completed)
		if diff := cmp.Diff(firstViews, secondViews); diff != "" {
			t.Errorf("navigation mismatch for %s (-first +second):\n%s", courseSlug, diff)
		}
	}
}

func TestRun_EmptyCorpus(t *testing.T) {
	result := Run(context.Background(), nil)

	require.True(t, result.OK())
	assert.Equal(t, 0, result.Graph.Len())
	assert.Empty(t, result.Sequences)
}
