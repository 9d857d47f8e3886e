package notifier_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hmaulana/maintenance-management/internal/notifier"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNotifier(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notifier Suite")
}

var _ = Describe("Dispatcher", func() {
	var (
		testLogger *slog.Logger
	)

	BeforeEach(func() {
		testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	It("posts queued notifications to the webhook", func() {
		var mu sync.Mutex
		var received []notifier.Job

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var job notifier.Job
			Expect(json.NewDecoder(r.Body).Decode(&job)).To(Succeed())
			mu.Lock()
			received = append(received, job)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := notifier.NewDispatcher(notifier.Config{
			WebhookURL: server.URL,
			MaxWorkers: 2,
			Timeout:    2 * time.Second,
		}, testLogger)
		defer d.Shutdown()

		Expect(d.Notify(notifier.Job{
			Kind:    notifier.KindCriticalAlert,
			Subject: "Critical alert on asset 3",
			Body:    "bearing temperature critical",
		})).To(Succeed())

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return len(received)
		}, 3*time.Second).Should(Equal(1))

		mu.Lock()
		Expect(received[0].Kind).To(Equal(notifier.KindCriticalAlert))
		mu.Unlock()
	})

	It("retries a failed delivery", func() {
		var mu sync.Mutex
		calls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := notifier.NewDispatcher(notifier.Config{
			WebhookURL:  server.URL,
			MaxWorkers:  1,
			MaxAttempts: 3,
			Timeout:     2 * time.Second,
		}, testLogger)
		defer d.Shutdown()

		Expect(d.Notify(notifier.Job{Kind: notifier.KindWorkOrderCreated, Subject: "wo"})).To(Succeed())

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return calls
		}, 5*time.Second).Should(BeNumerically(">=", 2))
	})

	It("rejects notifications when the queue is full", func() {
		// No workers draining fast enough: queue of 1, slow webhook.
		block := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		defer close(block)

		d := notifier.NewDispatcher(notifier.Config{
			WebhookURL:   server.URL,
			MaxWorkers:   1,
			JobQueueSize: 1,
			Timeout:      5 * time.Second,
		}, testLogger)
		defer d.Shutdown()

		// First fills the worker, second fills the queue, the rest overflow.
		var lastErr error
		for i := 0; i < 10; i++ {
			if err := d.Notify(notifier.Job{Kind: notifier.KindWorkOrderCreated}); err != nil {
				lastErr = err
			}
		}
		Expect(lastErr).To(HaveOccurred())
	})

	It("treats a missing webhook URL as delivered", func() {
		d := notifier.NewDispatcher(notifier.Config{MaxWorkers: 1}, testLogger)
		defer d.Shutdown()

		Expect(d.Notify(notifier.Job{Kind: notifier.KindWorkOrderCreated, Subject: "wo"})).To(Succeed())
	})
})
