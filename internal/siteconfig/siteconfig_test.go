package siteconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "content", cfg.ContentRoot)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.Extensions)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Courses)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
site {
  content_root = "docs/lessons"
  extensions   = [".mdx"]
  strict       = true
}

course "go-basics" {
  title = "Go Basics"
}

course "go-advanced" {}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "docs/lessons", cfg.ContentRoot)
	assert.Equal(t, []string{".mdx"}, cfg.Extensions)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []CourseDecl{
		{Slug: "go-basics", Title: "Go Basics"},
		{Slug: "go-advanced"},
	}, cfg.Courses)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
site {
  strict = true
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.ContentRoot)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.Extensions)
	assert.True(t, cfg.Strict)
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("COURSEGRAPH_TEST_ROOT", "/srv/content")

	path := writeConfig(t, `
site {
  content_root = env.COURSEGRAPH_TEST_ROOT
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/content", cfg.ContentRoot)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "syntax error",
			body: "site {\n  content_root = \n",
		},
		{
			name: "extension without dot",
			body: "site {\n  extensions = [\"mdx\"]\n}\n",
		},
		{
			name: "course with empty slug",
			body: "course \"\" {}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}
