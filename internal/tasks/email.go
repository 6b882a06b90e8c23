package tasks

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

const opEmailSender = "extract email sender"

// ExtractEmailSender asks the configured extraction service for the sender of
// the email text. Without a configured service the task is not implemented and
// no output is written.
func (s *Service) ExtractEmailSender(ctx context.Context) (Result, error) {
	in := s.paths.EmailFile
	if err := requireFile(opEmailSender, in); err != nil {
		return Result{}, err
	}

	if s.extractor == nil {
		s.logger.Warn("No extraction service configured", slog.String("task", opEmailSender))
		return notImplemented("Email sender extraction not yet implemented."), nil
	}

	body, err := os.ReadFile(in)
	if err != nil {
		return Result{}, execError(opEmailSender, in, err)
	}

	sender, err := s.extractor.ExtractSender(ctx, string(body))
	if err != nil {
		return Result{}, execError(opEmailSender, in, err)
	}
	sender = strings.TrimSpace(sender)

	if err := writeText(opEmailSender, s.paths.EmailSenderOut, sender); err != nil {
		return Result{}, err
	}

	return Result{
		Message: "Email sender extracted successfully.",
		Value:   sender,
	}, nil
}
