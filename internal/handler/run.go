package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/angeloszaimis/task-runner/internal/dispatcher"
	"github.com/angeloszaimis/task-runner/internal/metrics"
	"github.com/angeloszaimis/task-runner/internal/tasks"
)

const detailInvalidTask = "Invalid task request"

type runRequest struct {
	Task *string `json:"task"`
	Kind string  `json:"kind"`
}

func (req runRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Task, validation.When(req.Kind == "", validation.NotNil)),
	)
}

type runResponse struct {
	Status string       `json:"status"`
	Result tasks.Result `json:"result"`
}

// RunTask serves POST /run. The task description comes from the "task" query
// or form parameter; a "kind" parameter selects a task directly instead.
func (h *TaskHandler) RunTask(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req := runRequest{Kind: r.Form.Get("kind")}
	if r.Form.Has("task") {
		task := r.Form.Get("task")
		req.Task = &task
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log := h.loggerFrom(r.Context())

	var (
		kind dispatcher.Kind
		res  tasks.Result
		err  error
	)
	if req.Kind != "" {
		kind, err = dispatcher.ParseKind(req.Kind)
		if err == nil {
			res, err = h.dispatcher.Run(r.Context(), kind)
		}
	} else {
		kind, res, err = h.dispatcher.Dispatch(r.Context(), *req.Task)
	}

	if kind != "" {
		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventTaskResolved,
			Timestamp: time.Now(),
			Task:      string(kind),
		})
	}

	switch {
	case errors.Is(err, dispatcher.ErrUnsupportedTask):
		log.Warn("Unsupported task", slog.Any("err", err))
		respondError(w, http.StatusBadRequest, detailInvalidTask)
	case err != nil:
		log.Error("Task failed",
			slog.String("kind", string(kind)),
			slog.Bool("not_found", errors.Is(err, tasks.ErrNotFound)),
			slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, runResponse{Status: "success", Result: res})
	}
}
