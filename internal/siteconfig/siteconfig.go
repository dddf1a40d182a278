// Package siteconfig loads the build configuration for a content corpus
// from a site.hcl file. Attribute expressions are evaluated against an
// `env` variable map, so paths can be written as env.CONTENT_DIR instead of
// being baked into the file.
package siteconfig

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/coursekit/coursegraph/internal/ctxlog"
)

// Config is the validated build configuration.
type Config struct {
	// ContentRoot is the directory the loader walks for content files.
	ContentRoot string
	// Extensions filters which files are treated as content.
	Extensions []string
	// Strict makes any validation issue fail the build instead of being
	// reported as a warning.
	Strict bool
	// Courses declares courses that have no standalone content file of
	// their own.
	Courses []CourseDecl
}

// CourseDecl is a course declared directly in site.hcl rather than in a
// content file's frontmatter.
type CourseDecl struct {
	Slug  string
	Title string
}

// hclSiteFile is the top-level decoding structure for a site.hcl file.
type hclSiteFile struct {
	Site    *hclSiteBlock     `hcl:"site,block"`
	Courses []*hclCourseBlock `hcl:"course,block"`
}

type hclSiteBlock struct {
	ContentRoot string   `hcl:"content_root,optional"`
	Extensions  []string `hcl:"extensions,optional"`
	Strict      bool     `hcl:"strict,optional"`
}

type hclCourseBlock struct {
	Slug  string `hcl:"slug,label"`
	Title string `hcl:"title,optional"`
}

// Default returns the configuration used when no site.hcl exists.
func Default() *Config {
	return &Config{
		ContentRoot: "content",
		Extensions:  []string{".md", ".mdx"},
	}
}

// Load parses and validates a site.hcl file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Load: reading site configuration.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse site config %s: %w", path, diags)
	}

	var parsed hclSiteFile
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode site config %s: %w", path, diags)
	}

	cfg := Default()
	if parsed.Site != nil {
		if parsed.Site.ContentRoot != "" {
			cfg.ContentRoot = parsed.Site.ContentRoot
		}
		if len(parsed.Site.Extensions) > 0 {
			cfg.Extensions = parsed.Site.Extensions
		}
		cfg.Strict = parsed.Site.Strict
	}
	for _, c := range parsed.Courses {
		if c.Slug == "" {
			return nil, fmt.Errorf("site config %s: course block with empty slug", path)
		}
		cfg.Courses = append(cfg.Courses, CourseDecl{Slug: c.Slug, Title: c.Title})
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("site config %s: extension %q must start with a dot", path, ext)
		}
	}

	logger.Debug("Load: site configuration ready.",
		"content_root", cfg.ContentRoot, "course_count", len(cfg.Courses))
	return cfg, nil
}

// evalContext builds the evaluation context available to expressions in
// site.hcl. Only the process environment is exposed, as an `env` object.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		envVars[key] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(envVars) > 0 {
		env = cty.ObjectVal(envVars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
