// Package visibility reports when a rendered target comes near the viewport.
//
// An [Observer] owns at most one [Watcher] at a time. Attach binds it to a
// target and Detach (or the func returned by Attach) releases the binding:
//
//	obs := visibility.NewObserver(visibility.DefaultConfig(),
//	    visibility.WithWatcherFactory(viewport),
//	    visibility.WithScheduler(scheduler.NewIdle(idleQueue, 0)),
//	)
//	detach := obs.Attach(section)
//	defer obs.Dispose()
//
// Watchers come from a [WatcherFactory] supplied by the host. [Viewport] is a
// geometric implementation that tests target bounds against a scrollable
// root rectangle expanded by the configured root margin.
//
// Observers are not thread-safe; use them from the UI thread only.
package visibility
