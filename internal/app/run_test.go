package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func cleanCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeContent(t, dir, "go-basics.md", "---\nslug: go-basics\nkind: course\ntitle: Go Basics\n---\n")
	writeContent(t, dir, "lab1.md", "---\nslug: lab1\nkind: lab\ncourseSlug: go-basics\n---\n")
	writeContent(t, dir, "lab2.md", "---\nslug: lab2\nkind: lab\ncourseSlug: go-basics\nprerequisites: [lab1]\n---\n")
	return dir
}

func TestRun_CleanCorpusReport(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{ContentPath: cleanCorpus(t), LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	report := out.String()
	assert.Contains(t, report, "Corpus OK: 3 unit(s), 1 course(s).")
	assert.Contains(t, report, "Course go-basics:")
	assert.Contains(t, report, "1. lab1")
	assert.Contains(t, report, "2. lab2")
}

func TestRun_NavigationTable(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		ContentPath: cleanCorpus(t),
		Course:      "go-basics",
		Completed:   []string{"lab1"},
		LogLevel:    "error",
	})
	require.NoError(t, err)

	a := NewApp(out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	report := out.String()
	assert.Contains(t, report, "Navigation (completed: 1):")
	assert.Contains(t, report, "unlocked")
}

func TestRun_IssuesReported(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "broken.md", "---\nslug: broken\nkind: lab\nprerequisites: [nowhere]\n---\n")

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{ContentPath: dir, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(out, cfg)
	// Not strict: issues are reported, the run itself succeeds.
	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "Found 1 issue(s):")
	assert.Contains(t, out.String(), `"nowhere"`)
}

func TestRun_StrictModeFailsOnIssues(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "broken.md", "---\nslug: broken\nkind: lab\nprerequisites: [nowhere]\n---\n")

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{ContentPath: dir, Strict: true, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(out, cfg)
	runErr := a.Run(context.Background(), cfg)
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "1 issue(s)")
}

func TestNewApp_SiteConfigCoursesJoinTheCorpus(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "lab1.md", "---\nslug: lab1\nkind: lab\ncourseSlug: from-config\n---\n")

	siteHCL := filepath.Join(t.TempDir(), "site.hcl")
	require.NoError(t, os.WriteFile(siteHCL, []byte(`
site {
  content_root = "`+dir+`"
}

course "from-config" {
  title = "Declared In Config"
}
`), 0o600))

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{ConfigPath: siteHCL, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	report := out.String()
	assert.Contains(t, report, "Corpus OK: 2 unit(s), 1 course(s).")
	assert.Contains(t, report, "Course from-config:")
}

func TestNewApp_PanicsOnBadSiteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.hcl")
	require.NoError(t, os.WriteFile(path, []byte("site {\n  content_root = \n"), 0o600))

	cfg, err := NewConfig(Config{ConfigPath: path, LogLevel: "error"})
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg)
	})
}
