package workers

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPoolMetrics collects pool orchestration metrics.
type WorkerPoolMetrics interface {
	RecordWorkerStarted()
	RecordWorkerStopped()
	RecordWorkerPanic()

	RecordTaskCheckedOut()
	RecordTaskCompleted(duration time.Duration)
	RecordTaskFailed(duration time.Duration)
	RecordCheckoutError()

	RecordRetryAttempt()
	RecordRetrySuccess()
	RecordRetryExhausted()

	GetSnapshot() MetricsSnapshot

	Start(ctx context.Context, poolName string)
	Stop(ctx context.Context)
}

// MetricsSnapshot represents a point-in-time view of pool metrics.
type MetricsSnapshot struct {
	WorkersStarted int64 `json:"workers_started"`
	WorkersStopped int64 `json:"workers_stopped"`
	WorkersActive  int64 `json:"workers_active"`
	WorkerPanics   int64 `json:"worker_panics"`

	TasksCheckedOut int64 `json:"tasks_checked_out"`
	TasksCompleted  int64 `json:"tasks_completed"`
	TasksFailed     int64 `json:"tasks_failed"`
	TasksInProgress int64 `json:"tasks_in_progress"`
	CheckoutErrors  int64 `json:"checkout_errors"`

	RetryAttempts    int64   `json:"retry_attempts"`
	RetrySuccesses   int64   `json:"retry_successes"`
	RetriesExhausted int64   `json:"retries_exhausted"`
	RetryRate        float64 `json:"retry_rate"`

	TotalDuration   time.Duration `json:"total_duration_ms"`
	AverageDuration time.Duration `json:"average_duration_ms"`
	MinDuration     time.Duration `json:"min_duration_ms"`
	MaxDuration     time.Duration `json:"max_duration_ms"`

	Throughput float64 `json:"throughput_per_sec"`
	ErrorRate  float64 `json:"error_rate"`

	CollectedAt    time.Time     `json:"collected_at"`
	UptimeDuration time.Duration `json:"uptime_seconds"`
}

// NoOpMetrics discards everything. It is the default collector.
type NoOpMetrics struct{}

func NewNoOpMetrics() WorkerPoolMetrics {
	return &NoOpMetrics{}
}

func (n *NoOpMetrics) RecordWorkerStarted()                       {}
func (n *NoOpMetrics) RecordWorkerStopped()                       {}
func (n *NoOpMetrics) RecordWorkerPanic()                         {}
func (n *NoOpMetrics) RecordTaskCheckedOut()                      {}
func (n *NoOpMetrics) RecordTaskCompleted(duration time.Duration) {}
func (n *NoOpMetrics) RecordTaskFailed(duration time.Duration)    {}
func (n *NoOpMetrics) RecordCheckoutError()                       {}
func (n *NoOpMetrics) RecordRetryAttempt()                        {}
func (n *NoOpMetrics) RecordRetrySuccess()                        {}
func (n *NoOpMetrics) RecordRetryExhausted()                      {}
func (n *NoOpMetrics) GetSnapshot() MetricsSnapshot               { return MetricsSnapshot{} }
func (n *NoOpMetrics) Start(ctx context.Context, poolName string) {}
func (n *NoOpMetrics) Stop(ctx context.Context)                   {}

// InMemoryMetrics tracks counters in memory with atomics.
type InMemoryMetrics struct {
	poolName  string
	startTime time.Time

	workersStarted atomic.Int64
	workersStopped atomic.Int64
	workerPanics   atomic.Int64

	tasksCheckedOut atomic.Int64
	tasksCompleted  atomic.Int64
	tasksFailed     atomic.Int64
	checkoutErrors  atomic.Int64

	retryAttempts    atomic.Int64
	retrySuccesses   atomic.Int64
	retriesExhausted atomic.Int64

	totalDurationNs atomic.Int64

	// min/max need the mutex; everything else is atomic.
	mu          sync.RWMutex
	minDuration time.Duration
	maxDuration time.Duration
}

func NewInMemoryMetrics() WorkerPoolMetrics {
	return &InMemoryMetrics{
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (m *InMemoryMetrics) Start(ctx context.Context, poolName string) {
	m.poolName = poolName
	m.startTime = time.Now()
}

func (m *InMemoryMetrics) Stop(ctx context.Context) {}

func (m *InMemoryMetrics) RecordWorkerStarted() {
	m.workersStarted.Add(1)
}

func (m *InMemoryMetrics) RecordWorkerStopped() {
	m.workersStopped.Add(1)
}

func (m *InMemoryMetrics) RecordWorkerPanic() {
	m.workerPanics.Add(1)
}

func (m *InMemoryMetrics) RecordTaskCheckedOut() {
	m.tasksCheckedOut.Add(1)
}

func (m *InMemoryMetrics) RecordTaskCompleted(duration time.Duration) {
	m.tasksCompleted.Add(1)
	m.recordDuration(duration)
}

func (m *InMemoryMetrics) RecordTaskFailed(duration time.Duration) {
	m.tasksFailed.Add(1)
	m.recordDuration(duration)
}

func (m *InMemoryMetrics) recordDuration(duration time.Duration) {
	m.totalDurationNs.Add(int64(duration))

	m.mu.Lock()
	if duration < m.minDuration {
		m.minDuration = duration
	}
	if duration > m.maxDuration {
		m.maxDuration = duration
	}
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordCheckoutError() {
	m.checkoutErrors.Add(1)
}

func (m *InMemoryMetrics) RecordRetryAttempt() {
	m.retryAttempts.Add(1)
}

func (m *InMemoryMetrics) RecordRetrySuccess() {
	m.retrySuccesses.Add(1)
}

func (m *InMemoryMetrics) RecordRetryExhausted() {
	m.retriesExhausted.Add(1)
}

func (m *InMemoryMetrics) GetSnapshot() MetricsSnapshot {
	now := time.Now()
	uptime := now.Sub(m.startTime)

	workersStarted := m.workersStarted.Load()
	workersStopped := m.workersStopped.Load()
	tasksCompleted := m.tasksCompleted.Load()
	tasksFailed := m.tasksFailed.Load()
	tasksCheckedOut := m.tasksCheckedOut.Load()
	totalTasks := tasksCompleted + tasksFailed

	m.mu.RLock()
	minDur := m.minDuration
	maxDur := m.maxDuration
	m.mu.RUnlock()

	var avgDuration time.Duration
	if totalTasks > 0 {
		avgDuration = time.Duration(m.totalDurationNs.Load() / totalTasks)
	}

	var throughput float64
	if uptime.Seconds() > 0 {
		throughput = float64(totalTasks) / uptime.Seconds()
	}

	var errorRate float64
	if totalTasks > 0 {
		errorRate = float64(tasksFailed) / float64(totalTasks) * 100
	}

	var retryRate float64
	if totalTasks > 0 {
		retryRate = float64(m.retryAttempts.Load()) / float64(totalTasks) * 100
	}

	// No tasks yet means minDuration is still the sentinel.
	if minDur == time.Duration(1<<63-1) {
		minDur = 0
	}

	return MetricsSnapshot{
		WorkersStarted: workersStarted,
		WorkersStopped: workersStopped,
		WorkersActive:  workersStarted - workersStopped,
		WorkerPanics:   m.workerPanics.Load(),

		TasksCheckedOut: tasksCheckedOut,
		TasksCompleted:  tasksCompleted,
		TasksFailed:     tasksFailed,
		TasksInProgress: tasksCheckedOut - totalTasks,
		CheckoutErrors:  m.checkoutErrors.Load(),

		RetryAttempts:    m.retryAttempts.Load(),
		RetrySuccesses:   m.retrySuccesses.Load(),
		RetriesExhausted: m.retriesExhausted.Load(),
		RetryRate:        retryRate,

		TotalDuration:   time.Duration(m.totalDurationNs.Load()),
		AverageDuration: avgDuration,
		MinDuration:     minDur,
		MaxDuration:     maxDur,

		Throughput: throughput,
		ErrorRate:  errorRate,

		CollectedAt:    now,
		UptimeDuration: uptime,
	}
}

// LoggerMetrics extends InMemoryMetrics with periodic slog output.
type LoggerMetrics struct {
	*InMemoryMetrics
	interval  time.Duration
	logOnStop bool
	level     slog.Level
	logger    *slog.Logger

	ticker *time.Ticker
	done   chan bool
}

// MetricsOption configures LoggerMetrics.
type MetricsOption func(*metricsOptions)

type metricsOptions struct {
	interval  time.Duration
	logOnStop bool
	level     slog.Level
	logger    *slog.Logger
}

// WithMetricsInterval sets how often to log metrics.
func WithMetricsInterval(interval time.Duration) MetricsOption {
	return func(o *metricsOptions) {
		o.interval = interval
	}
}

// WithMetricsLogOnStop enables a final metrics line on shutdown.
func WithMetricsLogOnStop(enabled bool) MetricsOption {
	return func(o *metricsOptions) {
		o.logOnStop = enabled
	}
}

// WithMetricsLogLevel sets the log level used for metrics lines.
func WithMetricsLogLevel(level slog.Level) MetricsOption {
	return func(o *metricsOptions) {
		o.level = level
	}
}

// WithMetricsLogger sets a custom slog logger.
func WithMetricsLogger(logger *slog.Logger) MetricsOption {
	return func(o *metricsOptions) {
		o.logger = logger
	}
}

// NewLoggerMetrics creates a collector that logs snapshots on an interval
// and optionally on shutdown.
func NewLoggerMetrics(opts ...MetricsOption) WorkerPoolMetrics {
	options := &metricsOptions{
		interval:  30 * time.Second,
		logOnStop: true,
		level:     slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}

	return &LoggerMetrics{
		InMemoryMetrics: &InMemoryMetrics{
			minDuration: time.Duration(1<<63 - 1),
		},
		interval:  options.interval,
		logOnStop: options.logOnStop,
		level:     options.level,
		logger:    options.logger,
		done:      make(chan bool),
	}
}

func (l *LoggerMetrics) Start(ctx context.Context, poolName string) {
	l.InMemoryMetrics.Start(ctx, poolName)

	if l.interval > 0 {
		l.ticker = time.NewTicker(l.interval)
		go l.periodicLog(ctx)
	}

	l.logger.LogAttrs(ctx, l.level, "worker_pool_started",
		slog.String("pool", poolName),
		slog.Time("start_time", l.startTime),
		slog.Duration("log_interval", l.interval),
	)
}

func (l *LoggerMetrics) Stop(ctx context.Context) {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	close(l.done)

	if l.logOnStop {
		snapshot := l.GetSnapshot()
		l.logger.LogAttrs(ctx, l.level, "worker_pool_stopped",
			slog.String("pool", l.poolName),
			slog.Duration("uptime", snapshot.UptimeDuration),
		)
		l.logMetrics(ctx, snapshot, "shutdown")
	}
}

func (l *LoggerMetrics) periodicLog(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case <-l.ticker.C:
			snapshot := l.GetSnapshot()
			l.logMetrics(ctx, snapshot, "periodic")
		}
	}
}

func (l *LoggerMetrics) logMetrics(ctx context.Context, snapshot MetricsSnapshot, trigger string) {
	attrs := []slog.Attr{
		slog.String("pool", l.poolName),
		slog.String("trigger", trigger),
		slog.Duration("uptime", snapshot.UptimeDuration.Round(time.Second)),

		slog.Group("workers",
			slog.Int64("active", snapshot.WorkersActive),
			slog.Int64("started", snapshot.WorkersStarted),
			slog.Int64("stopped", snapshot.WorkersStopped),
			slog.Int64("panics", snapshot.WorkerPanics),
		),

		slog.Group("tasks",
			slog.Int64("completed", snapshot.TasksCompleted),
			slog.Int64("failed", snapshot.TasksFailed),
			slog.Int64("in_progress", snapshot.TasksInProgress),
			slog.Int64("checkout_errors", snapshot.CheckoutErrors),
		),

		slog.Group("performance",
			slog.Duration("avg_duration", snapshot.AverageDuration),
			slog.Duration("min_duration", snapshot.MinDuration),
			slog.Duration("max_duration", snapshot.MaxDuration),
			slog.Float64("throughput_per_sec", snapshot.Throughput),
			slog.Float64("error_rate_pct", snapshot.ErrorRate),
		),
	}

	if snapshot.RetryAttempts > 0 {
		attrs = append(attrs, slog.Group("retries",
			slog.Int64("attempts", snapshot.RetryAttempts),
			slog.Int64("successes", snapshot.RetrySuccesses),
			slog.Int64("exhausted", snapshot.RetriesExhausted),
			slog.Float64("retry_rate_pct", snapshot.RetryRate),
		))
	}

	l.logger.LogAttrs(ctx, l.level, "worker_pool_metrics", attrs...)
}
