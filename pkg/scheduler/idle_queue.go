package scheduler

import (
	"time"

	"github.com/go-drift/lazyview/pkg/errors"
)

type idleRequest struct {
	callback func()
	deadline time.Time
}

// IdleQueue is an IdleHost driven by a frame loop. The loop calls RunIdle
// when a frame finishes with time to spare and RunExpired at the end of
// every frame so that no request waits past its deadline.
//
// IdleQueue is not thread-safe. It must only be used from the UI thread.
type IdleQueue struct {
	clock   Clock
	pending []idleRequest
}

// NewIdleQueue creates a queue. A nil clock uses system time.
func NewIdleQueue(clock Clock) *IdleQueue {
	if clock == nil {
		clock = SystemClock()
	}
	return &IdleQueue{clock: clock}
}

// RequestIdle enqueues callback with a deadline of now+timeout.
func (q *IdleQueue) RequestIdle(callback func(), timeout time.Duration) {
	if callback == nil {
		return
	}
	q.pending = append(q.pending, idleRequest{
		callback: callback,
		deadline: q.clock.Now().Add(timeout),
	})
}

// Pending returns the number of callbacks waiting to run.
func (q *IdleQueue) Pending() int {
	return len(q.pending)
}

// RunIdle runs every pending callback in request order. Callbacks enqueued
// while running wait for the next idle period. Returns the number run.
func (q *IdleQueue) RunIdle() int {
	batch := q.pending
	q.pending = nil
	for _, req := range batch {
		q.run(req)
	}
	return len(batch)
}

// RunExpired runs only the callbacks whose deadline has passed. Returns the
// number run.
func (q *IdleQueue) RunExpired() int {
	now := q.clock.Now()
	var due []idleRequest
	kept := q.pending[:0]
	for _, req := range q.pending {
		if !now.Before(req.deadline) {
			due = append(due, req)
		} else {
			kept = append(kept, req)
		}
	}
	q.pending = kept
	for _, req := range due {
		q.run(req)
	}
	return len(due)
}

func (q *IdleQueue) run(req idleRequest) {
	defer errors.Recover("scheduler.IdleQueue.run")
	req.callback()
}
