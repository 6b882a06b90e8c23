package main

import (
	"io"
	"log/slog"

	"github.com/angeloszaimis/task-runner/config"
	"github.com/angeloszaimis/task-runner/internal/circuitbreaker"
	"github.com/angeloszaimis/task-runner/internal/dispatcher"
	"github.com/angeloszaimis/task-runner/internal/extractor"
	"github.com/angeloszaimis/task-runner/internal/filereader"
	"github.com/angeloszaimis/task-runner/internal/procrunner"
	"github.com/angeloszaimis/task-runner/internal/tasks"
	"github.com/angeloszaimis/task-runner/pkg/logger"
)

type configLoader func() (*config.Config, error)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

// app holds the components shared by every command.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	dispatcher *dispatcher.Dispatcher
	reader     *filereader.Reader
}

func newApp(cfg *config.Config, logOut io.Writer) *app {
	log := logger.NewWithWriter(logOut, cfg.Logging.Level, cfg.Server.Environment != config.EnvProd, cfg.Server.Environment)

	var sender tasks.SenderExtractor
	if cfg.ExtractionEnabled() {
		breaker := circuitbreaker.New(cfg.Breaker.Threshold, cfg.Breaker.ResetTimeout)
		sender = extractor.New(cfg.ExtractorConfig(), breaker, log)
		log.Info("Email extraction enabled", slog.String("model", cfg.LLM.Model))
	}

	svc := tasks.NewService(cfg.TasksConfig(), procrunner.New("", log), sender, log)

	return &app{
		cfg:        cfg,
		log:        log,
		dispatcher: dispatcher.NewForService(svc, log),
		reader:     filereader.New(),
	}
}
