// Package validate checks a built dependency graph for the three corpus-wide
// problem classes: unresolved prerequisite references, duplicate slugs, and
// prerequisite cycles. All findings are accumulated into a single issue list;
// the caller decides whether any of them blocks publishing.
package validate
