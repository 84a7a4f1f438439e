package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull     = errors.New("webhook queue is full")
	ErrPoolClosed    = errors.New("webhook pool is closed")
	ErrMissingURL    = errors.New("webhook url is required")
	ErrMissingSecret = errors.New("webhook signing secret is required")
)

// WebhookDispatcher accepts webhook payloads for asynchronous delivery.
type WebhookDispatcher interface {
	Enqueue(payload any, destination, secret string) error
}

type Task struct {
	Call WebhookCall
}

type WorkerPool struct {
	tasks       chan Task
	sender      Sender
	workerCount int
	throttle    *time.Ticker
	queue       string
	sugar       *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

const bufSize = 100

func NewWorkerPool(sender Sender, workerCount, maxRequestsPerMinute int, queue string, logger *zap.SugaredLogger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}

	var throttle *time.Ticker
	if maxRequestsPerMinute > 0 {
		throttle = time.NewTicker(time.Minute / time.Duration(maxRequestsPerMinute))
	}

	return &WorkerPool{
		tasks:       make(chan Task, bufSize),
		sender:      sender,
		workerCount: workerCount,
		throttle:    throttle,
		queue:       queue,
		sugar:       logger,
	}
}

// Start launches the workers. ctx bounds every delivery, so cancelling it
// aborts in-flight retries.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if wp.throttle != nil {
			select {
			case <-wp.throttle.C:
			case <-ctx.Done():
			}
		}

		start := time.Now()
		if err := wp.sender.Send(ctx, task.Call); err != nil {
			wp.sugar.Errorw("webhook delivery failed",
				"queue", wp.queue,
				"delivery_id", task.Call.ID,
				"url", task.Call.URL,
				"error", err,
			)
			continue
		}
		wp.sugar.Infow("webhook delivered",
			"queue", wp.queue,
			"delivery_id", task.Call.ID,
			"url", task.Call.URL,
			"duration", time.Since(start),
		)
	}
}

// Enqueue never blocks: a full queue is reported as ErrQueueFull.
func (wp *WorkerPool) Enqueue(payload any, destination, secret string) error {
	if strings.TrimSpace(destination) == "" {
		return ErrMissingURL
	}
	if secret == "" {
		return ErrMissingSecret
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	task := Task{Call: WebhookCall{
		ID:     uuid.New().String(),
		URL:    destination,
		Body:   body,
		Secret: secret,
	}}

	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}

	select {
	case wp.tasks <- task:
		wp.sugar.Debugf("(Enqueue) webhook %s queued on %s", task.Call.ID, wp.queue)
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new calls, lets the workers drain the queue and waits for
// them or for ctx.
func (wp *WorkerPool) Stop(ctx context.Context) error {
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.mu.Unlock()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	defer func() {
		if wp.throttle != nil {
			wp.throttle.Stop()
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
