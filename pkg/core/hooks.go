package core

import "github.com/go-drift/lazyview/pkg/errors"

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
//	func (s *detectorState) InitState() {
//	    s.observer = core.UseController(s, func() *visibility.Observer {
//	        return visibility.NewObserver(cfg)
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseSubscription registers the unsubscribe function returned by subscribe
// for automatic cleanup when the state is disposed.
func UseSubscription(s stateBase, subscribe func() (unsubscribe func())) {
	s.state().OnDispose(subscribe())
}

func runDisposer(fn func()) {
	defer errors.Recover("core.StateBase.RunDisposers")
	fn()
}

// Managed holds a value and triggers rebuilds when it changes.
//
// Managed is NOT thread-safe. It must only be accessed from the UI thread.
type Managed[T comparable] struct {
	base  *StateBase
	value T
}

// NewManaged creates a new managed state value.
func NewManaged[T comparable](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild if it changed.
func (m *Managed[T]) Set(value T) {
	if m.value == value {
		return
	}
	m.value = value
	m.base.SetState(nil)
}
