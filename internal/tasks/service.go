package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
)

// Result is what a handler reports back to the caller on success.
type Result struct {
	Message        string `json:"message"`
	Value          any    `json:"value,omitempty"`
	NotImplemented bool   `json:"not_implemented,omitempty"`
}

func notImplemented(message string) Result {
	return Result{Message: message, NotImplemented: true}
}

// Runner executes an external program and fails on a non-zero exit.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// SenderExtractor pulls the sender address out of an email body.
type SenderExtractor interface {
	ExtractSender(ctx context.Context, email string) (string, error)
}

// Tools pins the external binaries used by the formatting handler.
type Tools struct {
	NPX             string
	PrettierVersion string
}

// Bootstrap lists the binaries and the local generator script used by the
// environment bootstrap handler.
type Bootstrap struct {
	Pip       string
	UV        string
	Python    string
	Script    string
	UserEmail string
}

type Config struct {
	Paths     Paths
	Tools     Tools
	Bootstrap Bootstrap
}

type Service struct {
	paths     Paths
	tools     Tools
	bootstrap Bootstrap
	runner    Runner
	extractor SenderExtractor
	logger    *slog.Logger
}

// NewService wires the handlers. extractor may be nil, in which case email
// sender extraction reports itself as not implemented.
func NewService(cfg Config, runner Runner, extractor SenderExtractor, logger *slog.Logger) *Service {
	return &Service{
		paths:     cfg.Paths,
		tools:     cfg.Tools,
		bootstrap: cfg.Bootstrap,
		runner:    runner,
		extractor: extractor,
		logger:    logger,
	}
}

func (s *Service) Paths() Paths {
	return s.paths
}

// writeJSON writes v with two-space indentation and no trailing newline.
func writeJSON(op, path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return execError(op, path, err)
	}

	if err := os.WriteFile(path, bytes.TrimSuffix(buf.Bytes(), []byte("\n")), 0o644); err != nil {
		return execError(op, path, err)
	}

	return nil
}

func writeText(op, path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return execError(op, path, err)
	}
	return nil
}
