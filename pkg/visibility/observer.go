package visibility

import (
	"fmt"

	"github.com/go-drift/lazyview/pkg/errors"
	"github.com/go-drift/lazyview/pkg/scheduler"
)

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// WithWatcherFactory sets the host visibility-watching capability.
func WithWatcherFactory(factory WatcherFactory) ObserverOption {
	return func(o *Observer) {
		o.factory = factory
	}
}

// WithScheduler sets the strategy used to run watcher setup.
// The default is scheduler.Immediate.
func WithScheduler(s scheduler.Scheduler) ObserverOption {
	return func(o *Observer) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithOnChange registers a listener at construction time.
func WithOnChange(fn func(intersecting bool)) ObserverOption {
	return func(o *Observer) {
		o.AddListener(fn)
	}
}

// Observer tracks whether one target at a time is near the viewport.
//
// It holds at most one watcher. Re-attaching releases the old watcher before
// a new one is requested. In trigger-once mode the first positive report is
// terminal: the watcher is released, IsIntersecting stays true and later
// attachments create nothing.
type Observer struct {
	config    Config
	options   WatcherOptions
	factory   WatcherFactory
	scheduler scheduler.Scheduler

	target       Target
	watcher      Watcher
	generation   uint64
	triggered    bool
	intersecting bool
	disposed     bool

	listeners      map[int]func(bool)
	nextListenerID int
}

// NewObserver creates an observer. Invalid configuration is reported to the
// global error handler and replaced with usable values rather than failing.
func NewObserver(cfg Config, opts ...ObserverOption) *Observer {
	o := &Observer{
		config:    cfg,
		options:   cfg.options(),
		scheduler: scheduler.Immediate{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns the configuration the observer was created with.
func (o *Observer) Config() Config {
	return o.config
}

// IsIntersecting reports the current visibility signal.
func (o *Observer) IsIntersecting() bool {
	return o.intersecting
}

// HasTriggered reports whether a trigger-once observer has fired.
func (o *Observer) HasTriggered() bool {
	return o.triggered
}

// Target returns the currently bound target, or nil.
func (o *Observer) Target() Target {
	return o.target
}

// Watching reports whether a watcher is currently held.
func (o *Observer) Watching() bool {
	return o.watcher != nil
}

// AddListener registers fn to be called whenever IsIntersecting changes.
// Returns a function that removes the listener.
func (o *Observer) AddListener(fn func(intersecting bool)) func() {
	if fn == nil {
		return func() {}
	}
	if o.listeners == nil {
		o.listeners = make(map[int]func(bool))
	}
	id := o.nextListenerID
	o.nextListenerID++
	o.listeners[id] = fn
	return func() {
		delete(o.listeners, id)
	}
}

// Attach binds the observer to target, replacing any previous binding.
// A nil target only releases. A target whose type is not comparable is
// reported as a config error and treated as nil. The returned func detaches
// this binding if it is still the current one; calling it again, or after a
// later Attach, does nothing.
func (o *Observer) Attach(target Target) (detach func()) {
	if o.disposed {
		return func() {}
	}
	if target != nil && !isComparable(target) {
		errors.Report(&errors.Error{
			Op:   "visibility.Observer.Attach",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("target type %T is not comparable", target),
		})
		target = nil
	}
	o.release()
	o.generation++
	o.target = nil

	if target == nil {
		return func() {}
	}
	if o.config.TriggerOnce && o.triggered {
		return func() {}
	}

	o.target = target
	gen := o.generation
	if o.factory == nil {
		o.setupWithoutWatcher(gen)
	} else {
		o.scheduler.Schedule(func() { o.setup(gen) })
	}
	return func() {
		if o.generation == gen {
			o.Attach(nil)
		}
	}
}

// Detach releases the current binding, if any.
func (o *Observer) Detach() {
	o.Attach(nil)
}

// Dispose releases any held watcher and stops all further processing.
// It is safe to call more than once.
func (o *Observer) Dispose() {
	if o.disposed {
		return
	}
	o.release()
	o.generation++
	o.target = nil
	o.disposed = true
	o.listeners = nil
}

// setup creates the watcher for the binding identified by gen. It is
// abandoned if the binding changed or was cleared after it was scheduled.
func (o *Observer) setup(gen uint64) {
	if o.disposed || gen != o.generation || o.target == nil || o.watcher != nil {
		return
	}
	target := o.target
	var w Watcher
	w = o.factory.NewWatcher(o.options, func(entries []Entry) {
		o.report(w, target, entries)
	})
	o.watcher = w
	w.Observe(target)
}

// setupWithoutWatcher is the path for hosts that cannot watch visibility:
// the target is treated as visible straight away.
func (o *Observer) setupWithoutWatcher(gen uint64) {
	if gen != o.generation || o.target == nil {
		return
	}
	if o.config.TriggerOnce {
		o.triggered = true
	}
	o.setIntersecting(true)
}

func (o *Observer) report(w Watcher, target Target, entries []Entry) {
	defer errors.RecoverWithCallback("visibility.Observer.report", func(any) {
		if o.watcher == w {
			o.release()
		}
	})
	if o.disposed || w != o.watcher || !SameTarget(target, o.target) {
		return
	}

	for _, entry := range entries {
		if !SameTarget(entry.Target, target) {
			continue
		}
		switch {
		case entry.IsIntersecting && !o.triggered:
			if o.config.TriggerOnce {
				o.triggered = true
				o.release()
			}
			o.setIntersecting(true)
		case !o.config.TriggerOnce && !entry.IsIntersecting:
			o.setIntersecting(false)
		}
		if o.watcher != w {
			return
		}
	}
}

func (o *Observer) setIntersecting(value bool) {
	if o.intersecting == value {
		return
	}
	o.intersecting = value
	for _, fn := range o.listeners {
		fn(value)
	}
}

// release disconnects the held watcher. It is a no-op when none is held.
func (o *Observer) release() {
	w := o.watcher
	if w == nil {
		return
	}
	o.watcher = nil
	w.Disconnect()
}
