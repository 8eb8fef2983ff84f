// Package parallel provides the data-parallel fan-out used by the drawing
// engine: a fixed pool of goroutines and a parallel-for over row bands.
//
// Every work item handed out by ForBands covers a disjoint range, so callers
// that map ranges to destination rows never share a destination pixel and
// need no locking.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel rendering.
//
// Each worker has its own queue and steals from the others when its queue
// is empty, which balances bands of uneven cost (for example glyph rows that
// are mostly empty).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all of it to
// complete. Once the pool is closed, the work runs on the calling goroutine
// instead, so callers never lose work to a shutdown race.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.IsRunning() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))

	for i, fn := range work {
		workFn := fn
		wrapped := func() {
			defer completionWG.Done()
			workFn()
		}

		select {
		case p.workQueues[i%p.Workers()] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	completionWG.Wait()
}

// ForBands splits the half-open range [0, n) into at most Workers()
// contiguous bands of at least minPerBand elements and calls fn once per
// band, in parallel. It returns when every band is done.
//
// A nil or closed pool, or a range too small to split, runs fn(0, n) on the
// calling goroutine.
func (p *WorkerPool) ForBands(n, minPerBand int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if minPerBand < 1 {
		minPerBand = 1
	}

	bands := (n + minPerBand - 1) / minPerBand
	if !p.IsRunning() {
		bands = 1
	} else if bands > p.Workers() {
		bands = p.Workers()
	}
	if bands <= 1 {
		fn(0, n)
		return
	}

	work := make([]func(), 0, bands)
	for _, r := range Split(n, bands) {
		lo, hi := r[0], r[1]
		work = append(work, func() { fn(lo, hi) })
	}
	p.ExecuteAll(work)
}

// Split divides [0, n) into k contiguous, non-empty, disjoint ranges whose
// sizes differ by at most one. k is clamped to [1, n].
func Split(n, k int) [][2]int {
	if n <= 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	out := make([][2]int, 0, k)
	base, extra := n/k, n%k
	lo := 0
	for i := range k {
		size := base
		if i < extra {
			size++
		}
		out = append(out, [2]int{lo, lo + size})
		lo += size
	}
	return out
}

// Close stops the workers after draining queued work.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if p == nil || !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p != nil && p.running.Load()
}
