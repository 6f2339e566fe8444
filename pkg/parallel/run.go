package parallel

import "fmt"

// Run executes every task on a pool of workers and returns their errors by
// task index. A panicking task reports ErrTaskPanicked instead of crashing
// the caller.
func Run(workers int, tasks []func() error, opts ...Option) ([]error, error) {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs, nil
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	pool, err := NewWorkerPool(workers, opts...)
	if err != nil {
		return nil, err
	}
	for i, task := range tasks {
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
				}
			}()
			errs[i] = task()
		})
	}
	pool.Wait()
	return errs, nil
}
