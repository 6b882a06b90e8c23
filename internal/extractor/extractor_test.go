package extractor_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/task-runner/internal/circuitbreaker"
	"github.com/angeloszaimis/task-runner/internal/extractor"
)

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		calls    atomic.Int32
		status   int
		reply    string
		lastBody map[string]any
		client   *extractor.Client
		breaker  *circuitbreaker.Breaker
		log      *slog.Logger
	)

	BeforeEach(func() {
		calls.Store(0)
		status = http.StatusOK
		reply = "alice@example.com"
		lastBody = nil
		log = slog.New(slog.NewTextHandler(io.Discard, nil))

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			calls.Add(1)
			Expect(r.URL.Path).To(Equal("/chat/completions"))
			Expect(json.NewDecoder(r.Body).Decode(&lastBody)).To(Succeed())

			w.Header().Set("Content-Type", "application/json")
			if status != http.StatusOK {
				w.WriteHeader(status)
				w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
				return
			}
			json.NewEncoder(w).Encode(completion(reply))
		}))

		breaker = circuitbreaker.New(2, time.Minute)
		client = extractor.New(extractor.Config{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Model:   "test-model",
		}, breaker, log)
	})

	AfterEach(func() {
		server.Close()
	})

	It("should return the address from the reply", func() {
		addr, err := client.ExtractSender(context.Background(), "From: Alice <alice@example.com>")
		Expect(err).NotTo(HaveOccurred())
		Expect(addr).To(Equal("alice@example.com"))
		Expect(lastBody["model"]).To(Equal("test-model"))
	})

	It("should pick the address out of a chatty reply", func() {
		reply = "The sender is bob.smith+news@mail.example.org."
		addr, err := client.ExtractSender(context.Background(), "...")
		Expect(err).NotTo(HaveOccurred())
		Expect(addr).To(Equal("bob.smith+news@mail.example.org"))
	})

	It("should fail when the reply holds no address", func() {
		reply = "I could not find one."
		_, err := client.ExtractSender(context.Background(), "...")
		Expect(err).To(MatchError(extractor.ErrNoAddress))
	})

	It("should open the breaker after repeated service failures", func() {
		status = http.StatusInternalServerError

		for i := 0; i < 2; i++ {
			_, err := client.ExtractSender(context.Background(), "...")
			Expect(err).To(HaveOccurred())
		}
		Expect(breaker.State()).To(Equal(circuitbreaker.StateOpen))

		before := calls.Load()
		_, err := client.ExtractSender(context.Background(), "...")
		Expect(err).To(MatchError(circuitbreaker.ErrOpen))
		Expect(calls.Load()).To(Equal(before))
	})
})
