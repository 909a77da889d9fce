// Package worker runs volume slice generation on a fixed pool of goroutines.
package worker

import (
	"context"
	"sync"
	"time"
)

// SliceGenerator fills one depth slice of a volume. Implementations must
// only touch the voxels of the given slice so that slices can run in parallel
// without locking.
type SliceGenerator interface {
	GenerateSlice(ctx context.Context, depth int) error
}

// Task represents a single slice generation task.
type Task struct {
	Depth int
}

// Result represents the outcome of a slice generation task.
type Result struct {
	Err     error
	Task    Task
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Generator  SliceGenerator
	OnProgress ProgressFunc
	Workers    int
}

// Pool manages parallel slice generation.
type Pool struct {
	generator  SliceGenerator
	onProgress ProgressFunc
	workers    int
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// SliceTasks returns one task per depth slice, in depth order.
func SliceTasks(depth int) []Task {
	tasks := make([]Task, depth)
	for z := range tasks {
		tasks[z] = Task{Depth: z}
	}
	return tasks
}

// Run executes all tasks and returns their results in completion order.
// It blocks until every fed task has finished. Once ctx is cancelled no new
// tasks are started and queued ones report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		var completed, failed int
		for result := range resultCh {
			results = append(results, result)

			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tasks), failed)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- Result{Task: task, Err: err}
			continue
		}

		start := time.Now()
		err := p.generator.GenerateSlice(ctx, task.Depth)
		results <- Result{
			Task:    task,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
