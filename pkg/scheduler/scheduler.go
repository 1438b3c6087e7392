package scheduler

import (
	"sync"
	"time"
)

// DefaultMaxDelay bounds how long an idle-deferred action may wait.
const DefaultMaxDelay = 100 * time.Millisecond

// Scheduler runs a setup action now or later. Implementations run each
// action exactly once and never before Schedule is called.
type Scheduler interface {
	Schedule(action func())
}

// Immediate runs every action synchronously inside Schedule.
type Immediate struct{}

// Schedule runs action before returning.
func (Immediate) Schedule(action func()) {
	if action != nil {
		action()
	}
}

// IdleHost is the host facility for idle callbacks. RequestIdle arranges for
// callback to run during a future idle period, or once timeout has elapsed
// without one.
type IdleHost interface {
	RequestIdle(callback func(), timeout time.Duration)
}

// Idle defers actions to the host's idle periods. Without a host it falls
// back to running actions immediately.
type Idle struct {
	host     IdleHost
	maxDelay time.Duration
}

// NewIdle returns an idle scheduler. A nil host yields the immediate
// fallback; a non-positive maxDelay selects DefaultMaxDelay.
func NewIdle(host IdleHost, maxDelay time.Duration) *Idle {
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	return &Idle{host: host, maxDelay: maxDelay}
}

// Deferred reports whether actions are handed to an idle host.
func (s *Idle) Deferred() bool {
	return s.host != nil
}

// Schedule hands action to the idle host, or runs it at once when there is
// none. Hosts that invoke the callback more than once still run it once.
func (s *Idle) Schedule(action func()) {
	if action == nil {
		return
	}
	if s.host == nil {
		action()
		return
	}
	var once sync.Once
	s.host.RequestIdle(func() { once.Do(action) }, s.maxDelay)
}
