package visibility

import (
	"slices"

	"github.com/go-drift/lazyview/pkg/graphics"
)

// Viewport is a WatcherFactory that computes visibility geometrically.
// The root is the visible rectangle in content coordinates; scrolling moves
// it. Reports are delivered from Update, which the host calls after each
// scroll or layout change, never from Observe itself.
//
// Viewport is not thread-safe. It must only be used from the UI thread.
type Viewport struct {
	root     graphics.Rect
	watchers []*viewportWatcher
}

// NewViewport creates a viewport with the given root rectangle.
func NewViewport(root graphics.Rect) *Viewport {
	return &Viewport{root: root}
}

// Root returns the current root rectangle.
func (v *Viewport) Root() graphics.Rect {
	return v.root
}

// SetRoot replaces the root rectangle.
func (v *Viewport) SetRoot(root graphics.Rect) {
	v.root = root
}

// ScrollTo moves the root so its top edge sits at offset, keeping its size.
func (v *Viewport) ScrollTo(offset float64) {
	v.root = v.root.Translate(0, offset-v.root.Top)
}

// ActiveWatchers returns the number of watchers not yet disconnected.
func (v *Viewport) ActiveWatchers() int {
	return len(v.watchers)
}

// NewWatcher implements WatcherFactory.
func (v *Viewport) NewWatcher(opts WatcherOptions, report ReportFunc) Watcher {
	w := &viewportWatcher{viewport: v, opts: opts, report: report}
	v.watchers = append(v.watchers, w)
	return w
}

// Update evaluates every observed target and delivers an entry for each one
// seen for the first time or whose intersecting state flipped.
func (v *Viewport) Update() {
	for _, w := range slices.Clone(v.watchers) {
		if w.closed {
			continue
		}
		w.update(v.root)
	}
}

func (v *Viewport) remove(w *viewportWatcher) {
	v.watchers = slices.DeleteFunc(v.watchers, func(other *viewportWatcher) bool {
		return other == w
	})
}

type observation struct {
	target       Target
	reported     bool
	intersecting bool
}

type viewportWatcher struct {
	viewport     *Viewport
	opts         WatcherOptions
	report       ReportFunc
	observations []*observation
	closed       bool
}

func (w *viewportWatcher) Observe(target Target) {
	if w.closed || target == nil {
		return
	}
	for _, obs := range w.observations {
		if SameTarget(obs.target, target) {
			return
		}
	}
	w.observations = append(w.observations, &observation{target: target})
}

func (w *viewportWatcher) Unobserve(target Target) {
	w.observations = slices.DeleteFunc(w.observations, func(obs *observation) bool {
		return SameTarget(obs.target, target)
	})
}

func (w *viewportWatcher) Disconnect() {
	if w.closed {
		return
	}
	w.closed = true
	w.observations = nil
	w.viewport.remove(w)
}

func (w *viewportWatcher) update(root graphics.Rect) {
	expanded := root.Inflate(w.opts.RootMargin.Resolve(root))
	var entries []Entry
	for _, obs := range w.observations {
		entry := Measure(obs.target.Bounds(), expanded, w.opts.Threshold)
		entry.Target = obs.target
		if obs.reported && obs.intersecting == entry.IsIntersecting {
			continue
		}
		obs.reported = true
		obs.intersecting = entry.IsIntersecting
		entries = append(entries, entry)
	}
	if len(entries) > 0 && w.report != nil {
		w.report(entries)
	}
}

// Measure computes an entry for bounds against an already expanded root.
// A target counts as intersecting when it overlaps or touches the root and
// its visible ratio reaches threshold. Zero-area targets that touch the root
// have ratio 1.
func Measure(bounds, root graphics.Rect, threshold float64) Entry {
	touching := root.Touches(bounds)
	var ratio float64
	if area := bounds.Area(); area > 0 {
		ratio = bounds.Intersect(root).Area() / area
	} else if touching {
		ratio = 1
	}
	return Entry{
		IsIntersecting: touching && ratio >= threshold,
		Ratio:          ratio,
		Bounds:         bounds,
		RootBounds:     root,
	}
}
