package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(jobs)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	// Must return immediately without blocking.
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}

func TestWorkerPool_ExecuteAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close, want 2", ran)
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs := make([]func(), 50)
			for i := range jobs {
				jobs[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(jobs)
		}()
	}
	wg.Wait()

	if got := counter.Load(); got != 400 {
		t.Errorf("counter = %d, want 400", got)
	}
}

func TestWorkerPool_UnevenJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 16)
	for i := range jobs {
		jobs[i] = func() {
			if i%4 == 0 {
				time.Sleep(5 * time.Millisecond)
			}
			counter.Add(1)
		}
	}
	pool.ExecuteAll(jobs)

	if got := counter.Load(); got != 16 {
		t.Errorf("counter = %d, want 16", got)
	}
}
