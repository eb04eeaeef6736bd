package workers

// AddPreProcessHooks registers hooks to run between Checkout and Process.
// Hook errors are logged, not fatal.
func (wp *WorkerPool[T]) AddPreProcessHooks(hooks ...PreProcessHook[T]) {
	wp.preProcessHooks = append(wp.preProcessHooks, hooks...)
}

// AddPostProcessHooks registers hooks to run after Process, before
// Complete or Fail.
func (wp *WorkerPool[T]) AddPostProcessHooks(hooks ...PostProcessHook[T]) {
	wp.postProcessHooks = append(wp.postProcessHooks, hooks...)
}
