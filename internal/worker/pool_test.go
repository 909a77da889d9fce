package worker

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

// mockGenerator records which slices it was asked for.
type mockGenerator struct {
	failSlices map[int]bool
	seen       []atomic.Bool
	delay      time.Duration
	callCount  atomic.Int32
}

func newMockGenerator(depth int, delay time.Duration) *mockGenerator {
	return &mockGenerator{delay: delay, seen: make([]atomic.Bool, depth)}
}

func (m *mockGenerator) GenerateSlice(ctx context.Context, depth int) error {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
	}

	m.seen[depth].Store(true)
	if m.failSlices[depth] {
		return errors.New("simulated failure")
	}
	return nil
}

func TestSliceTasks(t *testing.T) {
	tasks := SliceTasks(4)
	if len(tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.Depth != i {
			t.Errorf("Task %d has depth %d", i, task.Depth)
		}
	}
}

func TestPool_BasicExecution(t *testing.T) {
	gen := newMockGenerator(3, 5*time.Millisecond)

	pool := New(Config{
		Workers:   2,
		Generator: gen,
	})

	results := pool.Run(context.Background(), SliceTasks(3))

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	depths := make([]int, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Unexpected error for slice %d: %v", r.Task.Depth, r.Err)
		}
		depths = append(depths, r.Task.Depth)
	}
	sort.Ints(depths)
	for i, d := range depths {
		if d != i {
			t.Errorf("Expected slice %d in results, got %d", i, d)
		}
	}

	for i := range gen.seen {
		if !gen.seen[i].Load() {
			t.Errorf("Slice %d was never generated", i)
		}
	}
	if gen.callCount.Load() != 3 {
		t.Errorf("Expected 3 generator calls, got %d", gen.callCount.Load())
	}
}

func TestPool_Parallelism(t *testing.T) {
	gen := newMockGenerator(8, 50*time.Millisecond)

	pool := New(Config{
		Workers:   4,
		Generator: gen,
	})

	start := time.Now()
	results := pool.Run(context.Background(), SliceTasks(8))
	elapsed := time.Since(start)

	// 8 slices at 50ms on 4 workers is two rounds.
	maxExpected := 300 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Expected parallel execution in ~100ms, took %v", elapsed)
	}

	if len(results) != 8 {
		t.Errorf("Expected 8 results, got %d", len(results))
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	gen := newMockGenerator(3, time.Millisecond)
	gen.failSlices = map[int]bool{1: true}

	pool := New(Config{
		Workers:   2,
		Generator: gen,
	})

	results := pool.Run(context.Background(), SliceTasks(3))

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	var failCount int
	for _, r := range results {
		if r.Err != nil {
			failCount++
			if r.Task.Depth != 1 {
				t.Errorf("Unexpected failure for slice %d", r.Task.Depth)
			}
		}
	}
	if failCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failCount)
	}
}

func TestPool_Cancellation(t *testing.T) {
	gen := newMockGenerator(10, 100*time.Millisecond)

	pool := New(Config{
		Workers:   2,
		Generator: gen,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, SliceTasks(10))
	elapsed := time.Since(start)

	if elapsed > 300*time.Millisecond {
		t.Errorf("Expected early cancellation, took %v", elapsed)
	}

	var cancelled int
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Error("Expected at least one cancelled result")
	}
}

func TestPool_ProgressCallback(t *testing.T) {
	gen := newMockGenerator(3, time.Millisecond)

	var progressCalls atomic.Int32
	var lastCompleted, lastTotal int

	pool := New(Config{
		Workers:   2,
		Generator: gen,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
			lastCompleted = completed
			lastTotal = total
		},
	})

	pool.Run(context.Background(), SliceTasks(3))

	if progressCalls.Load() != 3 {
		t.Errorf("Expected 3 progress callbacks, got %d", progressCalls.Load())
	}
	if lastCompleted != 3 {
		t.Errorf("Expected lastCompleted=3, got %d", lastCompleted)
	}
	if lastTotal != 3 {
		t.Errorf("Expected lastTotal=3, got %d", lastTotal)
	}
}

func TestPool_EmptyTasks(t *testing.T) {
	gen := newMockGenerator(0, 0)

	pool := New(Config{
		Workers:   2,
		Generator: gen,
	})

	results := pool.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty tasks, got %d", len(results))
	}
	if gen.callCount.Load() != 0 {
		t.Errorf("Expected 0 generator calls for empty tasks, got %d", gen.callCount.Load())
	}
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	pool := New(Config{Generator: newMockGenerator(1, 0)})
	if pool.workers != 1 {
		t.Errorf("Expected 1 worker, got %d", pool.workers)
	}
}
