// Package queue provides an in-process task queue with a fixed worker pool
// for background report generation. Tasks are fire-and-forget: a failing
// task is logged and dropped, never retried.
package queue

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ErrQueueClosed indicates the pool has been stopped and accepts no new tasks.
var ErrQueueClosed = errors.New("queue is closed")

// ErrQueueFull indicates the task buffer is at capacity.
var ErrQueueFull = errors.New("queue is full")

// Task is the unit of work handed from the scheduler to a worker.
// It carries only the recruiter identity; everything else is resolved
// at execution time.
type Task struct {
	RecruiterID uuid.UUID
}

// Enqueuer accepts tasks for background execution.
type Enqueuer interface {
	Enqueue(ctx context.Context, task Task) error
}

// Handler executes one task.
type Handler func(ctx context.Context, task Task) error

// Pool is a buffered-channel task queue drained by a fixed set of workers.
type Pool struct {
	tasks   chan Task
	handler Handler
	workers int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates a pool with the given worker count and task buffer size.
func NewPool(workers, bufferSize int, handler Handler) *Pool {
	return &Pool{
		tasks:   make(chan Task, bufferSize),
		handler: handler,
		workers: workers,
	}
}

// Start launches the workers. They run until Stop is called and the
// buffer drains, or the context is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			if err := p.handler(ctx, task); err != nil {
				log.Printf("[queue] worker %d: task for recruiter %s failed: %v", id, task.RecruiterID, err)
			}
		}
	}
}

// Enqueue adds a task to the buffer without blocking.
func (p *Pool) Enqueue(_ context.Context, task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for the workers to drain the buffer.
func (p *Pool) Stop() {
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
