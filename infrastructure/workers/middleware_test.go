package workers_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hearthkeep/hearthkeep/infrastructure/workers"
)

func TestMiddlewareWrapsWork(t *testing.T) {
	processor := newStubProcessor(testTask{ID: "t-1"})

	var calls atomic.Int32
	counting := func(next workers.WorkFunc) workers.WorkFunc {
		return func(ctx context.Context, workerID string) error {
			calls.Add(1)
			return next(ctx, workerID)
		}
	}

	pool, err := workers.NewWorkerPool("test", 1, processor,
		workers.WithLogger(quietLogger()),
		workers.WithPollInterval(5*time.Millisecond),
		workers.WithIdleInterval(10*time.Millisecond),
		workers.WithMiddleware(counting),
	)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}

	runPool(t, pool, 200*time.Millisecond)

	if calls.Load() == 0 {
		t.Error("middleware was never invoked")
	}
	if got := processor.completeCount.Load(); got != 1 {
		t.Errorf("completeCount = %d, want 1", got)
	}
}

func TestConsecutiveErrorShutdown(t *testing.T) {
	mw := workers.ConsecutiveErrorShutdown(2)

	fail := mw(func(ctx context.Context, workerID string) error {
		return errors.New("broken")
	})

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := fail(ctx, "w-1"); errors.Is(err, workers.ErrWorkerShutdown) {
			t.Fatalf("shutdown after %d errors, want tolerance of 2", i+1)
		}
	}

	if err := fail(ctx, "w-1"); !errors.Is(err, workers.ErrWorkerShutdown) {
		t.Errorf("err = %v, want ErrWorkerShutdown after exceeding threshold", err)
	}
}

func TestConsecutiveErrorShutdownIgnoresIdle(t *testing.T) {
	mw := workers.ConsecutiveErrorShutdown(1)

	idle := mw(func(ctx context.Context, workerID string) error {
		return workers.ErrNoWorkAvailable
	})

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := idle(ctx, "w-1"); !errors.Is(err, workers.ErrNoWorkAvailable) {
			t.Fatalf("err = %v, want ErrNoWorkAvailable", err)
		}
	}
}

func TestConsecutiveErrorShutdownResetsOnSuccess(t *testing.T) {
	mw := workers.ConsecutiveErrorShutdown(1)

	var fail bool
	flaky := mw(func(ctx context.Context, workerID string) error {
		if fail {
			return errors.New("broken")
		}
		return nil
	})

	ctx := context.Background()

	// error, success, error: the success resets the streak so no shutdown.
	fail = true
	if err := flaky(ctx, "w-1"); errors.Is(err, workers.ErrWorkerShutdown) {
		t.Fatal("shutdown on first error, want tolerance of 1")
	}

	fail = false
	if err := flaky(ctx, "w-1"); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	fail = true
	if err := flaky(ctx, "w-1"); errors.Is(err, workers.ErrWorkerShutdown) {
		t.Error("shutdown after reset, counter should have cleared")
	}
}
