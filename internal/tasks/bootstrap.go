package tasks

import (
	"context"
	"log/slog"
)

const opBootstrap = "bootstrap environment"

type step struct {
	name string
	args []string
}

// BootstrapEnvironment installs uv and requests, then runs the local data
// generator script with the configured user email. Each step must exit zero.
func (s *Service) BootstrapEnvironment(ctx context.Context) (Result, error) {
	if err := requireFile(opBootstrap, s.bootstrap.Script); err != nil {
		return Result{}, err
	}

	for _, st := range s.bootstrapSteps() {
		s.logger.Info("Running bootstrap step",
			slog.String("cmd", st.name),
			slog.Any("args", st.args))

		if err := s.runner.Run(ctx, st.name, st.args...); err != nil {
			return Result{}, execError(opBootstrap, "", err)
		}
	}

	return Result{Message: "datagen.py executed successfully."}, nil
}

func (s *Service) bootstrapSteps() []step {
	b := s.bootstrap
	return []step{
		{name: b.Pip, args: []string{"install", "--upgrade", "uv"}},
		{name: b.UV, args: []string{"pip", "install", "requests"}},
		{name: b.Python, args: []string{"-m", "pip", "install", "requests"}},
		{name: b.Python, args: []string{b.Script, b.UserEmail}},
	}
}
