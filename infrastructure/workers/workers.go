// Package workers provides a generic polling worker pool. A Processor
// supplies checkout/process/complete/fail semantics; the pool handles
// concurrency, adaptive polling, retries and panic recovery.
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/hearthkeep/hearthkeep/sdk/environment"
)

var (
	// ErrWorkerShutdown tells the pool to stop the worker that returned it.
	ErrWorkerShutdown = errors.New("worker should shutdown")

	// ErrPoolShutdown tells the pool the whole pool should come down.
	ErrPoolShutdown = errors.New("pool should shutdown")

	// ErrNoWorkAvailable is returned by Checkout when the queue is empty.
	// The worker switches to idle polling instead of treating it as a failure.
	ErrNoWorkAvailable = errors.New("no work available")
)

// Options represents the exportable worker configuration.
type Options struct {
	Name         string        `env:"WORKER_NAME" default:"worker"`
	WorkerCount  int           `env:"WORKER_COUNT" default:"5"`
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" default:"5s"`
	IdleInterval time.Duration `env:"WORKER_IDLE_INTERVAL" default:"30s"`
	MaxRetries   int           `env:"WORKER_MAX_RETRIES" default:"3"`
}

// options holds the internal runtime configuration.
type options struct {
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	middlewares  []Middleware
	metrics      WorkerPoolMetrics
	logger       *slog.Logger
}

// Option configures the worker pool.
type Option func(*options)

// WithName sets the worker pool name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithWorkerCount sets the number of workers.
func WithWorkerCount(count int) Option {
	return func(o *options) {
		o.workerCount = count
	}
}

// WithPollInterval sets how often to poll while work is flowing.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// WithIdleInterval sets how long to wait between polls when the queue is empty.
func WithIdleInterval(interval time.Duration) Option {
	return func(o *options) {
		o.idleInterval = interval
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxRetries sets the maximum number of Process attempts per task.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithMiddleware appends middleware around the work function.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithMetrics sets a custom metrics collector.
func WithMetrics(metrics WorkerPoolMetrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WorkerPool runs tasks through a Processor with a fixed set of workers.
type WorkerPool[T Task] struct {
	processor    Processor[T]
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	log          *slog.Logger

	workFunc         WorkFunc
	middlewares      []Middleware
	preProcessHooks  []PreProcessHook[T]
	postProcessHooks []PostProcessHook[T]
	metrics          WorkerPoolMetrics

	ctx        context.Context
	cancel     context.CancelFunc
	workers    sync.WaitGroup
	stopMutex  sync.Mutex
	startMutex sync.Mutex
	running    bool
	startTime  time.Time

	errors chan error
}

// NewFromEnv creates a worker pool configured from prefixed environment
// variables.
func NewFromEnv[T Task](prefix string, processor Processor[T], opts ...Option) (*WorkerPool[T], error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing worker config: %w", err)
	}

	return newWorkerPool(processor, cfg, opts...)
}

// NewWorkerPool creates a worker pool with the given name and processor.
func NewWorkerPool[T Task](name string, workerCount int, processor Processor[T], opts ...Option) (*WorkerPool[T], error) {
	cfg := Options{
		Name:         name,
		WorkerCount:  workerCount,
		PollInterval: 1 * time.Second,
		IdleInterval: 30 * time.Second,
		MaxRetries:   3,
	}

	pool, err := newWorkerPool(processor, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("pool setup failure: %w", err)
	}
	return pool, nil
}

func newWorkerPool[T Task](processor Processor[T], cfg Options, opts ...Option) (*WorkerPool[T], error) {
	internalOpts := &options{
		name:         cfg.Name,
		workerCount:  cfg.WorkerCount,
		pollInterval: cfg.PollInterval,
		idleInterval: cfg.IdleInterval,
		maxRetries:   cfg.MaxRetries,
		metrics:      NewNoOpMetrics(),
	}

	for _, opt := range opts {
		opt(internalOpts)
	}

	if internalOpts.logger == nil {
		internalOpts.logger = slog.Default()
	}
	if internalOpts.workerCount <= 0 {
		internalOpts.workerCount = 1
	}
	if internalOpts.pollInterval <= 0 {
		internalOpts.pollInterval = 5 * time.Second
	}
	if internalOpts.idleInterval <= 0 {
		internalOpts.idleInterval = 30 * time.Second
	}

	pool := &WorkerPool[T]{
		processor:    processor,
		name:         internalOpts.name,
		workerCount:  internalOpts.workerCount,
		pollInterval: internalOpts.pollInterval,
		idleInterval: internalOpts.idleInterval,
		maxRetries:   internalOpts.maxRetries,
		log:          internalOpts.logger,
		middlewares:  internalOpts.middlewares,
		metrics:      internalOpts.metrics,
		errors:       make(chan error, internalOpts.workerCount),
	}
	pool.buildMiddlewareChain()

	return pool, nil
}

// Start launches the workers and blocks until they all stop.
func (wp *WorkerPool[T]) Start(ctx context.Context) error {
	wp.startTime = time.Now()
	wp.startMutex.Lock()
	defer wp.startMutex.Unlock()

	wp.log.InfoContext(ctx, "starting worker pool",
		"name", wp.name,
		"worker_count", wp.workerCount,
		"poll_interval", wp.pollInterval,
	)
	wp.metrics.Start(ctx, wp.name)

	wp.ctx, wp.cancel = context.WithCancel(ctx)
	for i := 0; i < wp.workerCount; i++ {
		workerID := fmt.Sprintf("%s-worker-%d", wp.name, i+1)
		wp.workers.Add(1)
		go wp.worker(workerID)
	}
	wp.running = true
	wp.workers.Wait()

	close(wp.errors)
	wp.metrics.Stop(ctx)

	wp.log.InfoContext(ctx, "worker pool stopped", "name", wp.name, "total_runtime", time.Since(wp.startTime))
	wp.running = false
	return nil
}

// Stop gracefully stops the worker pool.
func (wp *WorkerPool[T]) Stop() {
	wp.stopMutex.Lock()
	defer wp.stopMutex.Unlock()

	if !wp.running {
		wp.log.InfoContext(wp.ctx, "pool already stopped", "name", wp.name)
		return
	}

	wp.log.InfoContext(wp.ctx, "stopping worker pool", "name", wp.name)
	if wp.cancel != nil {
		wp.cancel()
		wp.running = false
	}
}

func (wp *WorkerPool[T]) worker(workerID string) {
	defer wp.workers.Done()
	defer wp.metrics.RecordWorkerStopped()

	wp.log.InfoContext(wp.ctx, "worker started", "worker_id", workerID, "pool", wp.name)
	defer wp.log.InfoContext(context.Background(), "worker stopped", "worker_id", workerID, "pool", wp.name)

	wp.metrics.RecordWorkerStarted()

	// Adaptive polling: start hot, fall back to idleInterval once the
	// queue drains, snap back to pollInterval when work shows up.
	currentInterval := 1 * time.Millisecond

	ticker := time.NewTicker(currentInterval)
	defer ticker.Stop()

	for {
		select {
		case <-wp.ctx.Done():
			wp.log.InfoContext(context.Background(), "worker received shutdown signal", "worker_id", workerID)
			return

		case <-ticker.C:
			err := wp.workWithPanicRecovery(wp.ctx, workerID)

			var newInterval time.Duration

			switch {
			case err == nil:
				newInterval = wp.pollInterval

			case errors.Is(err, ErrWorkerShutdown):
				wp.log.InfoContext(wp.ctx, "worker shutting down as requested", "worker_id", workerID)
				return

			case errors.Is(err, ErrPoolShutdown):
				wp.log.ErrorContext(wp.ctx, "worker requesting pool shutdown",
					"worker_id", workerID,
					"error", err)
				select {
				case wp.errors <- fmt.Errorf("worker %s: %w", workerID, err):
				default:
					wp.log.ErrorContext(wp.ctx, "error channel full, critical error not sent",
						"worker_id", workerID)
				}
				return

			case errors.Is(err, ErrNoWorkAvailable):
				newInterval = wp.idleInterval
				if currentInterval != wp.idleInterval {
					wp.log.DebugContext(wp.ctx, "no work available, switching to idle polling",
						"worker_id", workerID,
						"idle_interval", wp.idleInterval)
				}

			default:
				newInterval = wp.pollInterval
				wp.log.ErrorContext(wp.ctx, "task processing error",
					"worker_id", workerID,
					"error", err)
			}

			if newInterval != currentInterval {
				currentInterval = newInterval
				ticker.Reset(newInterval)
			}
		}
	}
}

// workWithPanicRecovery wraps the whole work cycle so a panicking
// middleware or hook cannot kill the worker goroutine.
func (wp *WorkerPool[T]) workWithPanicRecovery(ctx context.Context, workerID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			wp.log.ErrorContext(context.Background(), "panic recovered in worker",
				"worker_id", workerID,
				"panic", r,
				"stack_trace", string(stack))

			wp.metrics.RecordWorkerPanic()
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	return wp.workFunc(ctx, workerID)
}

// work runs one Checkout -> Process -> Complete/Fail cycle. Process gets
// its own panic recovery so a task panic is reported as a task failure,
// not a worker failure.
func (wp *WorkerPool[T]) work(ctx context.Context, workerID string) error {
	task, err := wp.processor.Checkout(ctx, workerID)
	if err != nil {
		wp.metrics.RecordCheckoutError()
		if errors.Is(err, ErrNoWorkAvailable) {
			return err
		}
		return fmt.Errorf("checkout failed: %w", err)
	}
	wp.metrics.RecordTaskCheckedOut()

	var processErr error
	var processedTask T
	var duration time.Duration
	startTime := time.Now()

	defer func() {
		duration = time.Since(startTime)

		if r := recover(); r != nil {
			stack := debug.Stack()
			wp.log.ErrorContext(ctx, "panic recovered in task",
				"worker_id", workerID,
				"task_id", task.GetID(),
				"panic", r,
				"stack_trace", string(stack))

			wp.metrics.RecordWorkerPanic()
			processErr = fmt.Errorf("panic: %v", r)
		}

		// Post-process hooks see the processed task on success and the
		// original task on any error.
		hookTask := processedTask
		if processErr != nil {
			hookTask = task
		}

		for _, hook := range wp.postProcessHooks {
			if err := hook(ctx, hookTask, processErr); err != nil {
				wp.log.ErrorContext(ctx, "post-process hook failed",
					"task_id", task.GetID(),
					"error", err)
			}
		}

		if processErr != nil {
			wp.metrics.RecordTaskFailed(duration)
			if failErr := wp.processor.Fail(ctx, task, processErr); failErr != nil {
				wp.log.ErrorContext(ctx, "failed to mark task as failed",
					"task_id", task.GetID(),
					"error", failErr)
			}
		} else {
			wp.metrics.RecordTaskCompleted(duration)
			if completeErr := wp.processor.Complete(ctx, processedTask, int(duration.Milliseconds())); completeErr != nil {
				wp.log.ErrorContext(ctx, "failed to mark task as complete",
					"task_id", task.GetID(),
					"error", completeErr)
			}
		}
	}()

	for _, hook := range wp.preProcessHooks {
		if err := hook(ctx, task); err != nil {
			wp.log.ErrorContext(ctx, "pre-process hook failed",
				"task_id", task.GetID(),
				"error", err)
		}
	}

	wp.log.InfoContext(ctx, "processing task",
		"worker_id", workerID,
		"task_id", task.GetID())

	processedTask, processErr = wp.processWithRetry(ctx, task)

	if processErr != nil {
		wp.log.ErrorContext(ctx, "task processing failed",
			"worker_id", workerID,
			"task_id", task.GetID(),
			"error", processErr)
		return fmt.Errorf("task processing error: %w", processErr)
	}

	wp.log.InfoContext(ctx, "task completed",
		"worker_id", workerID,
		"task_id", task.GetID())

	return nil
}

// processWithRetry calls Process up to maxRetries times with exponential
// backoff between attempts.
func (wp *WorkerPool[T]) processWithRetry(ctx context.Context, task T) (T, error) {
	maxAttempts := wp.maxRetries
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	initialDelay := 1 * time.Second

	var lastErr error
	var processedTask T

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			wp.metrics.RecordRetryAttempt()
			wp.log.InfoContext(ctx, "retrying task",
				"task_id", task.GetID(),
				"attempt", attempt,
				"max_attempts", maxAttempts)

			delay := initialDelay * time.Duration(1<<(attempt-2))
			select {
			case <-ctx.Done():
				return processedTask, ctx.Err()
			case <-time.After(delay):
			}
		}

		processedTask, lastErr = wp.processor.Process(ctx, task)

		if lastErr == nil {
			if attempt > 1 {
				wp.metrics.RecordRetrySuccess()
			}
			return processedTask, nil
		}

		if ctx.Err() != nil {
			return processedTask, ctx.Err()
		}

		wp.log.ErrorContext(ctx, "task processing attempt failed",
			"task_id", task.GetID(),
			"attempt", attempt,
			"error", lastErr)
	}

	if maxAttempts > 1 {
		wp.metrics.RecordRetryExhausted()
	}

	return processedTask, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// GetMetrics returns a point-in-time metrics snapshot.
func (wp *WorkerPool[T]) GetMetrics() MetricsSnapshot {
	return wp.metrics.GetSnapshot()
}
