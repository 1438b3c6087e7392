package widgets

import (
	"github.com/go-drift/lazyview/pkg/core"
	"github.com/go-drift/lazyview/pkg/scheduler"
	"github.com/go-drift/lazyview/pkg/visibility"
)

// VisibilityDetector watches Target and rebuilds when it comes near the
// viewport.
//
// The detector owns one visibility.Observer for its whole mounted life.
// Config is read once at mount; changing it later has no effect. Changing
// Target re-attaches the observer, which releases the previous watcher
// first. The observer is disposed when the detector unmounts.
type VisibilityDetector struct {
	core.StatefulBase
	// Config controls margin, threshold and trigger-once mode. Use
	// visibility.DefaultConfig() for the standard behavior.
	Config visibility.Config
	// Target is the rendered node to watch. Nil watches nothing.
	Target visibility.Target
	// Watchers is the host visibility capability. When nil the target is
	// treated as visible immediately.
	Watchers visibility.WatcherFactory
	// Scheduler runs watcher setup. Nil runs it immediately.
	Scheduler scheduler.Scheduler
	// OnVisibilityChanged is called each time visibility flips.
	OnVisibilityChanged func(visible bool)
	// Builder builds the child from the current visibility. When nil,
	// Child is used as is.
	Builder func(ctx core.BuildContext, visible bool) core.Widget
	Child   core.Widget
}

func (VisibilityDetector) CreateState() core.State {
	return &visibilityDetectorState{}
}

type visibilityDetectorState struct {
	core.StateBase
	observer *visibility.Observer
	visible  *core.Managed[bool]
}

func (s *visibilityDetectorState) widget() VisibilityDetector {
	return s.Element().Widget().(VisibilityDetector)
}

func (s *visibilityDetectorState) InitState() {
	w := s.widget()
	s.visible = core.NewManaged(s, false)
	s.observer = core.UseController(s, func() *visibility.Observer {
		return visibility.NewObserver(w.Config,
			visibility.WithWatcherFactory(w.Watchers),
			visibility.WithScheduler(w.Scheduler),
		)
	})
	core.UseSubscription(s, func() func() {
		return s.observer.AddListener(s.onVisibilityChanged)
	})
	s.observer.Attach(w.Target)
}

func (s *visibilityDetectorState) DidUpdateWidget(old core.StatefulWidget) {
	next := s.widget().Target
	if !visibility.SameTarget(next, old.(VisibilityDetector).Target) {
		s.observer.Attach(next)
	}
}

func (s *visibilityDetectorState) onVisibilityChanged(visible bool) {
	s.visible.Set(visible)
	if cb := s.widget().OnVisibilityChanged; cb != nil {
		cb(visible)
	}
}

// Observer exposes the underlying observer.
func (s *visibilityDetectorState) Observer() *visibility.Observer {
	return s.observer
}

func (s *visibilityDetectorState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(VisibilityDetector)
	if w.Builder != nil {
		return w.Builder(ctx, s.visible.Value())
	}
	return w.Child
}
