package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Job is one notification to deliver to the on-call webhook.
type Job struct {
	Kind        string                 `json:"kind"`
	Subject     string                 `json:"subject"`
	Body        string                 `json:"body"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	EnqueuedAt  time.Time              `json:"enqueued_at"`
	Attempts    int                    `json:"-"`
	maxAttempts int
}

const (
	KindWorkOrderCreated = "work_order_created"
	KindCriticalAlert    = "critical_alert"
)

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, deliverFunc func(Job)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker delivering notification", "worker_id", w.ID, "kind", job.Kind)
				deliverFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type Config struct {
	WebhookURL     string
	Timeout        time.Duration
	MaxWorkers     int
	JobQueueSize   int
	WorkerPoolSize int
	MaxAttempts    int
}

// Dispatcher fans notification jobs out to a bounded worker pool and posts
// them to the on-call webhook. Delivery is best effort; an exhausted queue
// drops the notification rather than blocking the caller.
type Dispatcher struct {
	webhookURL string
	timeout    time.Duration
	logger     *slog.Logger

	jobQueue    chan Job
	workerPool  chan chan Job
	maxWorkers  int
	maxAttempts int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	once        sync.Once
}

func NewDispatcher(config Config, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	workerPoolSize := config.WorkerPoolSize
	if workerPoolSize <= 0 {
		workerPoolSize = maxWorkers
	}

	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	d := &Dispatcher{
		webhookURL:  config.WebhookURL,
		timeout:     timeout,
		logger:      logger,
		maxWorkers:  maxWorkers,
		maxAttempts: maxAttempts,
		jobQueue:    make(chan Job, jobQueueSize),
		workerPool:  make(chan chan Job, workerPoolSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	d.startWorkerPool()

	return d
}

func (d *Dispatcher) startWorkerPool() {
	d.once.Do(func() {
		for i := 0; i < d.maxWorkers; i++ {
			worker := NewWorker(i, d.workerPool, d.logger)
			worker.Start(d.ctx, &d.wg, d.deliver)
		}

		go d.dispatch()

		d.logger.Info("notifier worker pool started",
			"max_workers", d.maxWorkers,
			"queue_size", cap(d.jobQueue))
	})
}

func (d *Dispatcher) dispatch() {
	defer d.wg.Done()
	d.wg.Add(1)

	for {
		select {
		case job := <-d.jobQueue:
			select {
			case jobChannel := <-d.workerPool:
				select {
				case jobChannel <- job:
				case <-d.ctx.Done():
					d.logger.Info("notifier dispatcher shutting down")
					return
				}
			case <-d.ctx.Done():
				d.logger.Info("notifier dispatcher shutting down")
				return
			}
		case <-d.ctx.Done():
			d.logger.Info("notifier dispatcher shutting down")
			return
		}
	}
}

func (d *Dispatcher) Shutdown() {
	d.logger.Info("shutting down notifier")
	d.cancel()
	d.wg.Wait()
	d.logger.Info("notifier shutdown complete")
}

// Notify queues a notification. Returns an error only when the queue is
// full; delivery failures are retried by the workers and then dropped.
func (d *Dispatcher) Notify(job Job) error {
	job.EnqueuedAt = time.Now()
	job.maxAttempts = d.maxAttempts

	select {
	case d.jobQueue <- job:
		d.logger.Debug("notification queued",
			"kind", job.Kind,
			"queue_length", len(d.jobQueue))
		return nil
	default:
		d.logger.Warn("notification queue full, dropping",
			"kind", job.Kind,
			"queue_capacity", cap(d.jobQueue))
		return fmt.Errorf("notification queue full")
	}
}

func (d *Dispatcher) deliver(job Job) {
	job.Attempts++

	if err := d.post(job); err != nil {
		d.logger.Error("notification delivery failed",
			"kind", job.Kind,
			"attempt", job.Attempts,
			"error", err)

		if job.Attempts < job.maxAttempts {
			select {
			case <-time.After(time.Duration(job.Attempts) * time.Second):
			case <-d.ctx.Done():
				return
			}

			select {
			case d.jobQueue <- job:
			default:
				d.logger.Warn("queue full during retry, dropping notification", "kind", job.Kind)
			}
			return
		}

		d.logger.Warn("notification dropped after max attempts",
			"kind", job.Kind,
			"attempts", job.Attempts)
		return
	}

	d.logger.Info("notification delivered", "kind", job.Kind, "subject", job.Subject)
}

func (d *Dispatcher) post(job Job) error {
	if d.webhookURL == "" {
		// No webhook configured, treat as delivered.
		return nil
	}

	jsonData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", d.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: d.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
