package tasks

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	opRecentLogs  = "extract recent logs"
	recentLogsMax = 10
)

type logFile struct {
	path    string
	modTime time.Time
}

// ExtractRecentLogs writes the first line of the most recently modified log
// files, newest first, one per line.
func (s *Service) ExtractRecentLogs(_ context.Context) (Result, error) {
	dir := s.paths.LogsDir
	if err := requireDir(opRecentLogs, dir); err != nil {
		return Result{}, err
	}

	files, err := recentLogFiles(dir, recentLogsMax)
	if err != nil {
		return Result{}, err
	}

	var b strings.Builder
	for _, lf := range files {
		line, err := firstLine(lf.path)
		if err != nil {
			return Result{}, execError(opRecentLogs, lf.path, err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := writeText(opRecentLogs, s.paths.LogsOut, b.String()); err != nil {
		return Result{}, err
	}

	return Result{
		Message: "Recent logs extracted successfully.",
		Value:   len(files),
	}, nil
}

func recentLogFiles(dir string, limit int) ([]logFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return nil, execError(opRecentLogs, dir, err)
	}

	files := make([]logFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, execError(opRecentLogs, m, err)
		}
		if info.IsDir() {
			continue
		}
		files = append(files, logFile{path: m, modTime: info.ModTime()})
	}

	slices.SortFunc(files, func(a, b logFile) int {
		if c := b.modTime.Compare(a.modTime); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	})

	if len(files) > limit {
		files = files[:limit]
	}

	return files, nil
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read first line: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
