package workers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hearthkeep/hearthkeep/infrastructure/workers"
)

type testTask struct {
	ID        string
	ShouldErr bool
}

func (t testTask) GetID() string {
	return t.ID
}

type stubProcessor struct {
	mu    sync.Mutex
	tasks []testTask

	processCount  atomic.Int32
	completeCount atomic.Int32
	failCount     atomic.Int32

	panicOnProcess bool

	processFunc func(ctx context.Context, task testTask) (testTask, error)
}

func newStubProcessor(tasks ...testTask) *stubProcessor {
	return &stubProcessor{tasks: tasks}
}

func (p *stubProcessor) Checkout(ctx context.Context, workerID string) (testTask, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tasks) == 0 {
		return testTask{}, workers.ErrNoWorkAvailable
	}

	task := p.tasks[0]
	p.tasks = p.tasks[1:]
	return task, nil
}

func (p *stubProcessor) Process(ctx context.Context, task testTask) (testTask, error) {
	if p.processFunc != nil {
		return p.processFunc(ctx, task)
	}

	if p.panicOnProcess {
		panic("process panic test")
	}

	p.processCount.Add(1)

	if task.ShouldErr {
		return task, errors.New("task failed")
	}
	return task, nil
}

func (p *stubProcessor) Complete(ctx context.Context, task testTask, processingTimeMS int) error {
	p.completeCount.Add(1)
	return nil
}

func (p *stubProcessor) Fail(ctx context.Context, task testTask, err error) error {
	p.failCount.Add(1)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func runPool[T workers.Task](t *testing.T, pool *workers.WorkerPool[T], wait time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		pool.Start(context.Background())
		close(done)
	}()

	time.Sleep(wait)
	pool.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop in time")
	}
}

func TestPoolProcessesTasks(t *testing.T) {
	processor := newStubProcessor(
		testTask{ID: "t-1"},
		testTask{ID: "t-2"},
		testTask{ID: "t-3"},
	)

	pool, err := workers.NewWorkerPool("test", 2, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithIdleInterval(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	runPool(t, pool, 300*time.Millisecond)

	if got := processor.completeCount.Load(); got != 3 {
		t.Errorf("completeCount = %d, want 3", got)
	}
	if got := processor.failCount.Load(); got != 0 {
		t.Errorf("failCount = %d, want 0", got)
	}
}

func TestPoolFailsTaskAfterRetries(t *testing.T) {
	processor := newStubProcessor(testTask{ID: "bad", ShouldErr: true})

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithMaxRetries(1),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	runPool(t, pool, 200*time.Millisecond)

	if got := processor.failCount.Load(); got != 1 {
		t.Errorf("failCount = %d, want 1", got)
	}
	if got := processor.completeCount.Load(); got != 0 {
		t.Errorf("completeCount = %d, want 0", got)
	}
}

func TestPoolRetriesUntilSuccess(t *testing.T) {
	processor := newStubProcessor(testTask{ID: "flaky"})

	var attempts atomic.Int32
	processor.processFunc = func(ctx context.Context, task testTask) (testTask, error) {
		if attempts.Add(1) < 2 {
			return task, errors.New("transient")
		}
		return task, nil
	}

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithMaxRetries(3),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	// First retry backs off one second before the second attempt.
	runPool(t, pool, 1500*time.Millisecond)

	if got := attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
	if got := processor.completeCount.Load(); got != 1 {
		t.Errorf("completeCount = %d, want 1", got)
	}
}

func TestPoolRecoversFromTaskPanic(t *testing.T) {
	processor := newStubProcessor(testTask{ID: "boom"})
	processor.panicOnProcess = true

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithMaxRetries(1),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	runPool(t, pool, 200*time.Millisecond)

	if got := processor.failCount.Load(); got != 1 {
		t.Errorf("failCount = %d, want 1", got)
	}
}

func TestPoolMetricsSnapshot(t *testing.T) {
	processor := newStubProcessor(
		testTask{ID: "ok"},
		testTask{ID: "bad", ShouldErr: true},
	)

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithMaxRetries(1),
		workers.WithMetrics(workers.NewInMemoryMetrics()),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	runPool(t, pool, 300*time.Millisecond)

	snapshot := pool.GetMetrics()
	if snapshot.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1", snapshot.TasksCompleted)
	}
	if snapshot.TasksFailed != 1 {
		t.Errorf("TasksFailed = %d, want 1", snapshot.TasksFailed)
	}
	if snapshot.WorkersStarted != 1 {
		t.Errorf("WorkersStarted = %d, want 1", snapshot.WorkersStarted)
	}
}

func TestPoolRunsHooks(t *testing.T) {
	processor := newStubProcessor(testTask{ID: "hooked"})

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	var preCount, postCount atomic.Int32
	pool.AddPreProcessHooks(func(ctx context.Context, task testTask) error {
		preCount.Add(1)
		return nil
	})
	pool.AddPostProcessHooks(func(ctx context.Context, task testTask, err error) error {
		postCount.Add(1)
		return nil
	})

	runPool(t, pool, 200*time.Millisecond)

	if got := preCount.Load(); got != 1 {
		t.Errorf("preCount = %d, want 1", got)
	}
	if got := postCount.Load(); got != 1 {
		t.Errorf("postCount = %d, want 1", got)
	}
}
