package tasks

import "context"

const opFormatMarkdown = "format markdown"

// FormatMarkdown rewrites the markdown file in place with the pinned prettier version.
func (s *Service) FormatMarkdown(ctx context.Context) (Result, error) {
	path := s.paths.FormatFile
	if err := requireFile(opFormatMarkdown, path); err != nil {
		return Result{}, err
	}

	pkg := "prettier@" + s.tools.PrettierVersion
	if err := s.runner.Run(ctx, s.tools.NPX, pkg, "--write", path); err != nil {
		return Result{}, execError(opFormatMarkdown, path, err)
	}

	return Result{Message: "Markdown formatted successfully."}, nil
}
