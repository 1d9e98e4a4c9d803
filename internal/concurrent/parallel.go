// Package concurrent provides small fan-out helpers used to compute
// per-region and per-workload values in parallel.
package concurrent

import (
	"context"
	"sync"
)

// Result represents the result of a parallel operation
type Result[T any] struct {
	Value T
	Error error
	Index int // Original index in the input slice
}

// Task represents a function to be executed in parallel
type Task[T any] func(ctx context.Context) (T, error)

// ParallelExecute runs all tasks at once and waits for every task to finish,
// even when some fail.
func ParallelExecute[T any](ctx context.Context, tasks []Task[T]) []Result[T] {
	return ParallelExecuteWithLimit(ctx, tasks, len(tasks))
}

// ParallelExecuteWithLimit runs tasks with at most maxConcurrent in flight.
// A non-positive limit means no limit.
func ParallelExecuteWithLimit[T any](ctx context.Context, tasks []Task[T], maxConcurrent int) []Result[T] {
	if maxConcurrent <= 0 {
		maxConcurrent = len(tasks)
	}

	results := make([]Result[T], len(tasks))
	semaphore := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(index int, t Task[T]) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			value, err := t(ctx)
			results[index] = Result[T]{
				Value: value,
				Error: err,
				Index: index,
			}
		}(i, task)
	}

	wg.Wait()
	return results
}

// ParallelMap applies fn to every item in parallel, preserving input order in
// the returned results.
func ParallelMap[T any, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	return ParallelMapWithLimit(ctx, items, fn, len(items))
}

// ParallelMapWithLimit applies fn to every item with a concurrency bound.
func ParallelMapWithLimit[T any, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error), maxConcurrent int) []Result[R] {
	tasks := make([]Task[R], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		}
	}
	return ParallelExecuteWithLimit(ctx, tasks, maxConcurrent)
}

// OrderedValues unwraps results into a value slice in input order, failing on
// the first error encountered.
func OrderedValues[T any](results []Result[T]) ([]T, error) {
	values := make([]T, len(results))
	for _, result := range results {
		if result.Error != nil {
			return nil, result.Error
		}
		values[result.Index] = result.Value
	}
	return values, nil
}
