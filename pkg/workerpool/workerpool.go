// Package workerpool runs tasks on a fixed set of goroutines with a bounded
// queue. When the queue is full, Submit fails fast instead of blocking the
// caller.
package workerpool

import (
	"errors"
	"sync"

	"github.com/hassanmehmood/medicart/pkg/logger"
)

var (
	// ErrPoolFull is returned by Submit when the task queue is at capacity.
	ErrPoolFull = errors.New("workerpool: queue full")
	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("workerpool: closed")
)

type Task func()

type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// New starts a pool with the given number of workers and queue capacity.
func New(workers, capacity int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if capacity < 1 {
		capacity = workers
	}

	p := &Pool{tasks: make(chan Task, capacity)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool task panicked", "panic", r)
		}
	}()
	task()
}

// Submit enqueues a task without blocking. Returns ErrPoolFull when the
// queue is at capacity so callers can degrade (run inline, drop, or retry).
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait enqueues a task and blocks until it has run.
func (p *Pool) SubmitWait(task Task) error {
	done := make(chan struct{})
	err := p.Submit(func() {
		defer close(done)
		task()
	})
	if err != nil {
		return err
	}
	<-done
	return nil
}

// Shutdown stops accepting tasks and waits for queued tasks to drain.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// Pending reports how many tasks are waiting in the queue.
func (p *Pool) Pending() int {
	return len(p.tasks)
}
