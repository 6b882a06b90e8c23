package main

import (
	"net/http"

	"github.com/angeloszaimis/task-runner/internal/handler"
	"github.com/angeloszaimis/task-runner/internal/metrics"
)

func setupRouter(h *handler.TaskHandler, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/run", h.Instrument("/run", h.RunTask))
	mux.HandleFunc("/read", h.Instrument("/read", h.ReadFile))
	mux.HandleFunc("/metrics", collector.Handler())
	mux.HandleFunc("/health", h.Health)

	return mux
}
