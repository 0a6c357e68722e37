package render

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for offloaded stroke rendering.
//
// Jobs are distributed across per-worker queues; an idle worker steals
// from its neighbors, which balances load when some strokes are much
// slower to rasterize than others.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
	nextQueue  atomic.Uint64
}

// NewPool creates a render pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// Submit enqueues a job. Returns false if the pool is closed or every
// queue is full; callers degrade by skipping the render, not by blocking
// the UI thread.
func (p *Pool) Submit(job func()) bool {
	if !p.running.Load() {
		return false
	}
	// Round-robin placement; try each queue once without blocking.
	start := int(p.nextQueue.Add(1)) % p.workers
	for i := 0; i < p.workers; i++ {
		q := p.workQueues[(start+i)%p.workers]
		select {
		case q <- job:
			return true
		default:
		}
	}
	return false
}

// Close stops the pool and waits for in-flight jobs to finish.
// Pending queued jobs are drained and executed.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drain(myQueue)
			return
		case job := <-myQueue:
			if job != nil {
				job()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(myQueue)
				return
			case job := <-myQueue:
				if job != nil {
					job()
				}
			}
		}
	}
}

// steal attempts to take one job from another worker's queue.
func (p *Pool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case job := <-p.workQueues[(id+i)%p.workers]:
			return job
		default:
		}
	}
	return nil
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}
