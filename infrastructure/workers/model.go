package workers

import "context"

// Task is anything the pool can process. The ID is used for logging and
// bookkeeping only.
type Task interface {
	GetID() string
}

// Processor supplies the business logic behind a pool. Checkout must be
// atomic across concurrent workers.
type Processor[T Task] interface {
	// Checkout claims the next available task.
	Checkout(ctx context.Context, workerID string) (T, error)

	// Process executes the task and returns its result.
	Process(ctx context.Context, task T) (T, error)

	// Complete is called after a successful Process.
	Complete(ctx context.Context, task T, processingTimeMS int) error

	// Fail is called after Process gives up.
	Fail(ctx context.Context, task T, err error) error
}

// WorkFunc runs one checkout/process/complete cycle for a worker.
type WorkFunc func(ctx context.Context, workerID string) error

// Middleware wraps a WorkFunc with additional behavior.
type Middleware func(WorkFunc) WorkFunc

// PreProcessHook runs after Checkout, before Process.
type PreProcessHook[T Task] func(ctx context.Context, task T) error

// PostProcessHook runs after Process with the result or error.
type PostProcessHook[T Task] func(ctx context.Context, task T, err error) error
