package tasks

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	opMarkdownIndex = "create markdown index"
	headingPrefix   = "# "
)

// CreateMarkdownIndex maps every markdown file in the docs directory to its first
// level-1 heading. Files without such a heading are left out of the index.
func (s *Service) CreateMarkdownIndex(_ context.Context) (Result, error) {
	dir := s.paths.DocsDir
	if err := requireDir(opMarkdownIndex, dir); err != nil {
		return Result{}, err
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return Result{}, execError(opMarkdownIndex, dir, err)
	}

	index := make(map[string]string, len(matches))
	for _, m := range matches {
		title, ok, err := firstHeading(m)
		if err != nil {
			return Result{}, execError(opMarkdownIndex, m, err)
		}
		if ok {
			index[filepath.Base(m)] = title
		}
	}

	if err := writeJSON(opMarkdownIndex, s.paths.DocsIndex, index); err != nil {
		return Result{}, err
	}

	return Result{
		Message: "Markdown index created successfully.",
		Value:   len(index),
	}, nil
}

func firstHeading(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if strings.HasPrefix(line, headingPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, headingPrefix)), true, nil
		}
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
	}
}
