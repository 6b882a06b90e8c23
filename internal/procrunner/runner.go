// Package procrunner runs external programs on behalf of the task handlers.
package procrunner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ExecRunner starts programs with os/exec and reports a non-zero exit as an
// error carrying the program's stderr.
type ExecRunner struct {
	dir    string
	logger *slog.Logger
}

// New creates a runner. Programs run in dir; an empty dir keeps the current
// working directory.
func New(dir string, logger *slog.Logger) *ExecRunner {
	return &ExecRunner{
		dir:    dir,
		logger: logger,
	}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	r.logger.Debug("Process finished",
		slog.String("cmd", name),
		slog.String("args", strings.Join(args, " ")),
		slog.Duration("duration", time.Since(start)),
		slog.Int("stdout_bytes", stdout.Len()))

	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}

	return nil
}
