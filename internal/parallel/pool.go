// Package parallel runs independent rendering jobs on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel rendering.
//
// Each worker owns a queue. A worker whose queue is empty steals from the
// others before blocking, which keeps uneven jobs (rows near many points,
// rows far from all of them) from idling part of the pool.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)
	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case job := <-own:
			job()
			continue
		case <-p.done:
			p.drain(own)
			return
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case job := <-own:
			job()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			job()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin and blocks until all of them have
// finished. On a closed pool the jobs run on the calling goroutine, so the
// caller always observes completed work.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))
	for i, job := range jobs {
		wrapped := func() {
			defer pending.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	pending.Wait()
}

// Close stops the workers after the queued jobs have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
