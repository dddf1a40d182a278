// Package frontmatter is the loader collaborator that feeds the pipeline:
// it walks a content tree and decodes the YAML frontmatter block of each
// Markdown/MDX file into an untyped raw record. Document bodies are never
// parsed; only the fenced metadata head is read.
package frontmatter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coursekit/coursegraph/internal/content"
	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/fsutil"
)

// fence delimits a frontmatter block: the file's first line and the next
// line consisting solely of this marker.
const fence = "---"

// FileError ties a load failure to the file it came from. One broken file
// never aborts the walk; all failures are collected and returned together.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FileError) Unwrap() error { return e.Err }

// Load discovers every content file under root with one of the given
// extensions and extracts its frontmatter into a raw record. Files without
// a frontmatter block are prose-only pages and are skipped silently; files
// whose block cannot be decoded are reported in the second return value.
func Load(ctx context.Context, root string, extensions []string) ([]content.Raw, []FileError, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtensions(root, extensions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan content root %q: %w", root, err)
	}
	logger.Debug("Load: content files discovered.", "root", root, "file_count", len(paths))

	var records []content.Raw
	var failures []FileError
	for _, path := range paths {
		record, found, err := extractFile(path)
		if err != nil {
			failures = append(failures, FileError{Path: path, Err: err})
			continue
		}
		if !found {
			continue
		}
		records = append(records, record)
	}

	logger.Debug("Load: frontmatter extraction complete.",
		"record_count", len(records), "failure_count", len(failures))
	return records, failures, nil
}

func extractFile(path string) (content.Raw, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, false, scanner.Err()
	}
	if strings.TrimRight(scanner.Text(), "\r") != fence {
		// No frontmatter block; nothing to extract.
		return nil, false, nil
	}

	var block strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimRight(line, "\r") == fence {
			closed = true
			break
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	if !closed {
		return nil, false, fmt.Errorf("frontmatter block is never closed")
	}

	record := content.Raw{}
	if err := yaml.Unmarshal([]byte(block.String()), &record); err != nil {
		return nil, false, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}
	return record, true, nil
}
