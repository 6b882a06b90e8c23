package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/angeloszaimis/task-runner/internal/filereader"
)

const (
	detailFileNotFound        = "File not found"
	detailUnsupportedEncoding = "File encoding not supported."
)

type readRequest struct {
	Path *string `json:"path"`
}

func (req readRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Path, validation.NotNil),
	)
}

type readResponse struct {
	Content string `json:"content"`
}

// ReadFile serves GET /read?path=... with the decoded file content.
func (h *TaskHandler) ReadFile(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var req readRequest
	if q := r.URL.Query(); q.Has("path") {
		path := q.Get("path")
		req.Path = &path
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log := h.loggerFrom(r.Context())

	content, encoding, err := h.reader.Read(*req.Path)
	switch {
	case errors.Is(err, filereader.ErrNotFound):
		respondError(w, http.StatusNotFound, detailFileNotFound)
	case errors.Is(err, filereader.ErrUnsupportedEncoding):
		log.Warn("Undecodable file", slog.String("path", *req.Path), slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, detailUnsupportedEncoding)
	case err != nil:
		log.Error("Read failed", slog.String("path", *req.Path), slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Debug("Read file", slog.String("path", *req.Path), slog.String("encoding", encoding))
		respondJSON(w, http.StatusOK, readResponse{Content: content})
	}
}

// Health serves GET /health.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
