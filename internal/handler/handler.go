package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/task-runner/internal/dispatcher"
	"github.com/angeloszaimis/task-runner/internal/metrics"
	"github.com/angeloszaimis/task-runner/internal/tasks"
)

// TaskDispatcher runs tasks by description or by kind.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, task string) (dispatcher.Kind, tasks.Result, error)
	Run(ctx context.Context, kind dispatcher.Kind) (tasks.Result, error)
}

// FileReader returns decoded file content and the encoding used.
type FileReader interface {
	Read(path string) (string, string, error)
}

type TaskHandler struct {
	logger           *slog.Logger
	dispatcher       TaskDispatcher
	reader           FileReader
	metricsCollector *metrics.Collector
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func NewTaskHandler(logger *slog.Logger, d TaskDispatcher, reader FileReader, collector *metrics.Collector) *TaskHandler {
	return &TaskHandler{
		logger:           logger,
		dispatcher:       d,
		reader:           reader,
		metricsCollector: collector,
	}
}

// Instrument logs each request with a request id and reports its outcome to
// the metrics collector.
func (h *TaskHandler) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		log := h.logger.With(slog.String("request_id", requestID))
		log.Info("Received request",
			slog.String("from", extractClientIP(r)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("user_agent", r.UserAgent()))

		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventRequestReceived,
			Timestamp: time.Now(),
			Route:     route,
		})

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next(wrapped, r.WithContext(withLogger(r.Context(), log)))
		duration := time.Since(start)

		log.Info("Completed request",
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", duration))

		h.emitEvent(metrics.MetricEvent{
			Type:       metrics.EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      route,
			Duration:   duration,
			StatusCode: wrapped.statusCode,
		})
	}
}

func (h *TaskHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}
	h.metricsCollector.Emit(event)
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

type loggerKey struct{}

func withLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func (h *TaskHandler) loggerFrom(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return h.logger
}
