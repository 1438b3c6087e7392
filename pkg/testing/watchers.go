package testing

import (
	"github.com/go-drift/lazyview/pkg/graphics"
	"github.com/go-drift/lazyview/pkg/visibility"
)

// FakeTarget is a visibility.Target with settable bounds.
type FakeTarget struct {
	Name string
	Rect graphics.Rect
}

// Bounds implements visibility.Target.
func (t *FakeTarget) Bounds() graphics.Rect {
	return t.Rect
}

func (t *FakeTarget) String() string {
	return t.Name
}

// FakeWatcher is a watcher created by RecordingWatcherFactory. Reports are
// injected with Report, Enter and Leave.
type FakeWatcher struct {
	factory  *RecordingWatcherFactory
	Options  visibility.WatcherOptions
	Observed []visibility.Target
	// Disconnects counts Disconnect calls, including redundant ones.
	Disconnects int
	report      visibility.ReportFunc
}

// Observe implements visibility.Watcher.
func (w *FakeWatcher) Observe(target visibility.Target) {
	w.Observed = append(w.Observed, target)
}

// Unobserve implements visibility.Watcher.
func (w *FakeWatcher) Unobserve(target visibility.Target) {
	for i, observed := range w.Observed {
		if visibility.SameTarget(observed, target) {
			w.Observed = append(w.Observed[:i], w.Observed[i+1:]...)
			return
		}
	}
}

// Disconnect implements visibility.Watcher.
func (w *FakeWatcher) Disconnect() {
	w.Disconnects++
	if w.Disconnects == 1 {
		w.factory.outstanding--
	}
}

// Live reports whether the watcher has not been disconnected.
func (w *FakeWatcher) Live() bool {
	return w.Disconnects == 0
}

// Report delivers entries to the observer as the host would. Reports are
// delivered even after Disconnect so tests can check they are ignored.
func (w *FakeWatcher) Report(entries ...visibility.Entry) {
	w.report(entries)
}

// Enter reports every observed target as intersecting.
func (w *FakeWatcher) Enter() {
	w.reportAll(true)
}

// Leave reports every observed target as not intersecting.
func (w *FakeWatcher) Leave() {
	w.reportAll(false)
}

func (w *FakeWatcher) reportAll(intersecting bool) {
	entries := make([]visibility.Entry, 0, len(w.Observed))
	ratio := 0.0
	if intersecting {
		ratio = 1
	}
	for _, target := range w.Observed {
		entries = append(entries, visibility.Entry{
			Target:         target,
			IsIntersecting: intersecting,
			Ratio:          ratio,
			Bounds:         target.Bounds(),
		})
	}
	w.report(entries)
}

// RecordingWatcherFactory is a visibility.WatcherFactory that records every
// watcher it creates and tracks how many are live at once.
type RecordingWatcherFactory struct {
	Watchers       []*FakeWatcher
	outstanding    int
	maxOutstanding int
}

// NewRecordingWatcherFactory returns an empty factory.
func NewRecordingWatcherFactory() *RecordingWatcherFactory {
	return &RecordingWatcherFactory{}
}

// NewWatcher implements visibility.WatcherFactory.
func (f *RecordingWatcherFactory) NewWatcher(opts visibility.WatcherOptions, report visibility.ReportFunc) visibility.Watcher {
	w := &FakeWatcher{factory: f, Options: opts, report: report}
	f.Watchers = append(f.Watchers, w)
	f.outstanding++
	f.maxOutstanding = max(f.maxOutstanding, f.outstanding)
	return w
}

// Created returns the number of watchers created.
func (f *RecordingWatcherFactory) Created() int {
	return len(f.Watchers)
}

// Outstanding returns the number of watchers not yet disconnected.
func (f *RecordingWatcherFactory) Outstanding() int {
	return f.outstanding
}

// MaxOutstanding returns the highest number of simultaneously live watchers.
func (f *RecordingWatcherFactory) MaxOutstanding() int {
	return f.maxOutstanding
}

// Last returns the most recently created watcher, or nil.
func (f *RecordingWatcherFactory) Last() *FakeWatcher {
	if len(f.Watchers) == 0 {
		return nil
	}
	return f.Watchers[len(f.Watchers)-1]
}
