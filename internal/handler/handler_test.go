package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/task-runner/internal/dispatcher"
	"github.com/angeloszaimis/task-runner/internal/filereader"
	"github.com/angeloszaimis/task-runner/internal/handler"
	"github.com/angeloszaimis/task-runner/internal/metrics"
	"github.com/angeloszaimis/task-runner/internal/tasks"
)

type body map[string]any

func decode(w *httptest.ResponseRecorder) body {
	var b body
	Expect(json.Unmarshal(w.Body.Bytes(), &b)).To(Succeed())
	return b
}

var _ = Describe("TaskHandler", func() {
	var (
		h         *handler.TaskHandler
		dataDir   string
		paths     tasks.Paths
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	run := func(query url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/run?"+query.Encode(), nil)
		w := httptest.NewRecorder()
		h.Instrument("/run", h.RunTask)(w, req)
		return w
	}

	read := func(query url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/read?"+query.Encode(), nil)
		w := httptest.NewRecorder()
		h.Instrument("/read", h.ReadFile)(w, req)
		return w
	}

	BeforeEach(func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		dataDir = GinkgoT().TempDir()
		paths = tasks.NewPaths(dataDir)

		svc := tasks.NewService(tasks.Config{Paths: paths}, nil, nil, log)
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, log)
		collector.Start(ctx)

		h = handler.NewTaskHandler(log, dispatcher.NewForService(svc, log), filereader.New(), collector)
	})

	AfterEach(func() {
		cancel()
	})

	Describe("RunTask", func() {
		It("should run the matched task and wrap its result", func() {
			Expect(os.WriteFile(paths.DatesFile, []byte("2024-01-03\n2024-01-04\n"), 0o644)).To(Succeed())

			w := run(url.Values{"task": {"Count the Wednesdays in /data/dates.txt"}})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(decode(w)).To(Equal(body{
				"status": "success",
				"result": map[string]any{
					"message": "1 Wednesdays counted and saved.",
					"value":   1.0,
				},
			}))
		})

		It("should accept the task as a form field", func() {
			Expect(os.WriteFile(paths.DatesFile, []byte("2024-01-03\n"), 0o644)).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader("task=wednesdays"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			h.RunTask(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should reject an unrecognised task with 400", func() {
			w := run(url.Values{"task": {"do nothing"}})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(Equal(body{"detail": "Invalid task request"}))
		})

		It("should reject an empty task with 400", func() {
			w := run(url.Values{"task": {""}})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 422 when the task parameter is missing", func() {
			w := run(url.Values{})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(decode(w)["detail"]).To(ContainSubstring("task"))
		})

		It("should surface a missing input as 500 with its message", func() {
			w := run(url.Values{"task": {"sort contacts"}})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)["detail"]).To(ContainSubstring("contacts.json not found"))
		})

		It("should return not-implemented tasks as successes", func() {
			w := run(url.Values{"task": {"extract the credit card"}})

			Expect(w.Code).To(Equal(http.StatusOK))
			result := decode(w)["result"].(map[string]any)
			Expect(result["not_implemented"]).To(BeTrue())
		})

		Context("with a structured kind", func() {
			It("should run the named task", func() {
				w := run(url.Values{"kind": {"similar_comments"}})
				Expect(w.Code).To(Equal(http.StatusOK))
			})

			It("should reject an unknown kind with 400", func() {
				w := run(url.Values{"kind": {"make_coffee"}})
				Expect(w.Code).To(Equal(http.StatusBadRequest))
			})
		})

		It("should reject GET with 405", func() {
			w := httptest.NewRecorder()
			h.RunTask(w, httptest.NewRequest(http.MethodGet, "/run?task=wednesdays", nil))
			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should record the dispatched task and response", func() {
			run(url.Values{"task": {"credit card"}})
			run(url.Values{"task": {"do nothing"}})

			Eventually(func() map[int]int64 {
				return collector.Snapshot().Routes["/run"].StatusCodes
			}).Should(Equal(map[int]int64{200: 1, 400: 1}))
			Expect(collector.Snapshot().Tasks).To(Equal(map[string]int64{"credit_card": 1}))
		})
	})

	Describe("ReadFile", func() {
		It("should return the file content", func() {
			path := filepath.Join(dataDir, "note.txt")
			Expect(os.WriteFile(path, []byte("hello\n"), 0o644)).To(Succeed())

			w := read(url.Values{"path": {path}})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)).To(Equal(body{"content": "hello\n"}))
		})

		It("should decode UTF-16 files", func() {
			path := filepath.Join(dataDir, "wide.txt")
			Expect(os.WriteFile(path, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, 0o644)).To(Succeed())

			w := read(url.Values{"path": {path}})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["content"]).To(Equal("hi"))
		})

		It("should return 404 for a missing path", func() {
			w := read(url.Values{"path": {filepath.Join(dataDir, "nope.txt")}})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)).To(Equal(body{"detail": "File not found"}))
		})

		It("should return 500 when no encoding fits", func() {
			path := filepath.Join(dataDir, "bad.bin")
			Expect(os.WriteFile(path, []byte{0x00, 0xD8, 0x41, 0x00, 0xFF}, 0o644)).To(Succeed())

			w := read(url.Values{"path": {path}})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)).To(Equal(body{"detail": "File encoding not supported."}))
		})

		It("should return 422 without a path parameter", func() {
			w := read(url.Values{})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("Instrument", func() {
		It("should echo a caller supplied request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("X-Request-ID", "abc-123")
			w := httptest.NewRecorder()

			h.Instrument("/health", h.Health)(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-Request-ID")).To(Equal("abc-123"))
		})

		It("should generate a request id when none is given", func() {
			w := httptest.NewRecorder()
			h.Instrument("/health", h.Health)(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Header().Get("X-Request-ID")).To(HaveLen(36))
		})
	})
})
