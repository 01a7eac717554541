// Package queue provides the single serialized task queue all history and
// group mutations run on.
package queue

import (
	"sync"
)

// Queue is an unbounded FIFO drained by one worker goroutine. Submit never
// blocks the caller, and each job runs to completion before the next starts.
type Queue struct {
	mu      sync.Mutex
	pending []job
	wake    chan struct{}
	closed  bool
	stopped chan struct{}
}

type job struct {
	fn   func()
	done chan struct{}
}

// New starts a queue worker
func New() *Queue {
	q := &Queue{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues fn and returns a channel closed once fn has returned.
// After Close the job is dropped and the returned channel is already closed.
func (q *Queue) Submit(fn func()) <-chan struct{} {
	done := make(chan struct{})

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(done)
		return done
	}
	q.pending = append(q.pending, job{fn: fn, done: done})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return done
}

// Close stops accepting jobs, lets queued jobs finish, and waits for the worker
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
	q.mu.Unlock()
	<-q.stopped
}

func (q *Queue) run() {
	defer close(q.stopped)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		next := q.pending[0]
		q.pending[0] = job{}
		q.pending = q.pending[1:]
		q.mu.Unlock()

		next.fn()
		close(next.done)
	}
}
